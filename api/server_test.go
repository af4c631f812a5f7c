package api

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"

	"github.com/bitmark-inc/huddle-api/mocks"
	"github.com/bitmark-inc/huddle-api/utils"
)

const (
	testSigningSecret = "8f742231b10e8888abcd99yyyzzz85a5"
	testAPIKey        = "admin-key"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	runAsync = func(f func()) {
		f()
	}
	os.Exit(m.Run())
}

type testServer struct {
	*Server
	store     *mocks.MockRequestStore
	lifecycle *mocks.MockLifecycle
	actions   *mocks.MockActionHandler
	gateway   *mocks.MockNotificationGateway
}

func newTestServer(ctl *gomock.Controller) *testServer {
	ts := &testServer{
		store:     mocks.NewMockRequestStore(ctl),
		lifecycle: mocks.NewMockLifecycle(ctl),
		actions:   mocks.NewMockActionHandler(ctl),
		gateway:   mocks.NewMockNotificationGateway(ctl),
	}
	ts.Server = NewServer(ts.store, ts.lifecycle, ts.actions, ts.gateway, Options{
		SigningSecret:     testSigningSecret,
		AdminAPIKey:       testAPIKey,
		Language:          "en",
		RateLimitRequests: 5,
		RateLimitWindow:   time.Minute,
	})
	return ts
}

// serve runs one request through a fresh router
func (ts *testServer) serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// signedRequest builds a webhook request signed the way Slack signs them
func signedRequest(path, body string) *http.Request {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	mac := hmac.New(sha256.New, []byte(testSigningSecret))
	_, _ = io.WriteString(mac, "v0:"+timestamp+":"+body)

	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Slack-Request-Timestamp", timestamp)
	req.Header.Set("X-Slack-Signature", "v0="+hex.EncodeToString(mac.Sum(nil)))
	return req
}

func text(id string, data map[string]interface{}) string {
	return utils.Localize("en", id, data)
}
