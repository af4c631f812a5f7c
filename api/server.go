package api

import (
	"context"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/bitmark-inc/huddle-api/consts"
	"github.com/bitmark-inc/huddle-api/huddle"
	"github.com/bitmark-inc/huddle-api/logmodule"
	"github.com/bitmark-inc/huddle-api/store"
	"github.com/bitmark-inc/huddle-api/utils"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

// runAsync runs the work a Slack request triggers after the request has
// been acknowledged. Slack gives up on a webhook after three seconds.
var runAsync = func(f func()) {
	go f()
}

// Options are the server settings that do not come from collaborators
type Options struct {
	SigningSecret string
	AdminAPIKey   string
	Language      string

	// per user limit of slash commands
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// NewOptionsFromViper reads `slack.signing_secret`, `server.apikey.admin`,
// `huddle.language` and `ratelimit.*`
func NewOptionsFromViper() Options {
	o := Options{
		SigningSecret:     viper.GetString("slack.signing_secret"),
		AdminAPIKey:       viper.GetString("server.apikey.admin"),
		Language:          viper.GetString("huddle.language"),
		RateLimitRequests: viper.GetInt("ratelimit.requests"),
		RateLimitWindow:   viper.GetDuration("ratelimit.window"),
	}
	if o.Language == "" {
		o.Language = consts.DefaultLanguage
	}
	if o.RateLimitRequests <= 0 {
		o.RateLimitRequests = consts.DefaultRateLimitRequests
	}
	if o.RateLimitWindow <= 0 {
		o.RateLimitWindow = consts.DefaultRateLimitWindow
	}
	return o
}

// Server to run a http server instance
type Server struct {
	// Server instance
	server *http.Server

	// Stores
	store store.RequestStore

	// Request lifecycle
	lifecycle huddle.Lifecycle
	actions   huddle.ActionHandler

	// Replies to slack users
	gateway huddle.NotificationGateway

	options Options
}

// NewServer new instance of server
func NewServer(
	s store.RequestStore,
	lifecycle huddle.Lifecycle,
	actions huddle.ActionHandler,
	gateway huddle.NotificationGateway,
	options Options) *Server {
	return &Server{
		store:     s,
		lifecycle: lifecycle,
		actions:   actions,
		gateway:   gateway,
		options:   options,
	}
}

// Run to run the server
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.setupRouter(),
	}

	return s.server.ListenAndServe()
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))

	webhookRoute := r.Group("/webhook/slack")
	webhookRoute.Use(logmodule.Ginrus("Webhook"))
	webhookRoute.Use(s.slackSignatureVerification())
	{
		webhookRoute.POST("/commands",
			s.commandRateLimiter(s.options.RateLimitRequests, s.options.RateLimitWindow),
			s.slashCommand)
		webhookRoute.POST("/actions", s.blockAction)
	}

	apiRoute := r.Group("/api")
	apiRoute.Use(logmodule.Ginrus("API"))
	apiRoute.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Api-Token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		AllowAllOrigins:  true,
		MaxAge:           12 * time.Hour,
	}))
	apiRoute.Use(s.apikeyAuthentication(s.options.AdminAPIKey))

	requestRoute := apiRoute.Group("/requests")
	{
		requestRoute.GET("", s.listRequests)
		requestRoute.GET("/:requestID", s.getRequest)
		requestRoute.POST("/:requestID/expire", s.expireRequest)
	}

	r.GET("/healthz", s.healthz)

	return r
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// shouldInterupt sends error message and determine if it should interupt the current flow
func shouldInterupt(err error, c *gin.Context) bool {
	if err == nil {
		return false
	}

	log.Error(err)
	abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
	return true
}

func (s *Server) healthz(c *gin.Context) {
	// Ping db
	err := s.store.Ping()
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"version": viper.GetString("server.version"),
	})
}

func (s *Server) text(messageID string, data map[string]interface{}) string {
	return utils.Localize(s.options.Language, messageID, data)
}

func responseWithEncoding(c *gin.Context, code int, obj ErrorResponse) {
	acceptEncoding := c.GetHeader("Accept-Encoding")
	switch acceptEncoding {
	default:
		c.JSON(code, obj)
	}
}

func abortWithEncoding(c *gin.Context, code int, obj ErrorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
	}
	responseWithEncoding(c, code, obj)
	c.Abort()
}
