package api

import (
	"bytes"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/httprate"

	"github.com/bitmark-inc/huddle-api/external/slack"
)

func (s *Server) apikeyAuthentication(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiToken := c.GetHeader("Api-Token")
		if apiToken == "" || apiToken != key {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

// slackSignatureVerification rejects webhooks not signed with the signing
// secret. The body is put back for the handlers.
func (s *Server) slackSignatureVerification() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := ioutil.ReadAll(c.Request.Body)
		if err != nil {
			abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
			return
		}
		c.Request.Body = ioutil.NopCloser(bytes.NewReader(body))

		if err := slack.Verify(c.Request.Header, body, s.options.SigningSecret); err != nil {
			abortWithEncoding(c, http.StatusUnauthorized, errorInvalidSignature, err)
			return
		}
		c.Next()
	}
}

// commandUser keys the slash command limiter by the invoking user
func commandUser(r *http.Request) (string, error) {
	return r.PostFormValue("user_id"), nil
}

// commandRateLimiter limits slash commands per user. A limited user gets an
// ephemeral reply instead of a 429, which Slack would show as a failure.
func (s *Server) commandRateLimiter(requests int, window time.Duration) gin.HandlerFunc {
	limited := func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(ephemeralJSON(s.text("command.rate_limited", nil)))
	}

	limit := httprate.Limit(requests, window,
		httprate.WithKeyFuncs(commandUser),
		httprate.WithLimitHandler(limited),
	)

	return func(c *gin.Context) {
		passed := false
		limit(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
		})).ServeHTTP(c.Writer, c.Request)

		if !passed {
			c.Abort()
			return
		}
		c.Next()
	}
}
