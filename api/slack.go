package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bitmark-inc/huddle-api/external/slack"
	"github.com/bitmark-inc/huddle-api/huddle"
	"github.com/bitmark-inc/huddle-api/schema"
)

const webhookTaskTimeout = time.Minute

var commandKinds = map[string]schema.Kind{
	"/iletisim-kur": schema.KindCommunication,
	"/talk":         schema.KindCommunication,
	"/yardim-iste":  schema.KindHelp,
	"/help-me":      schema.KindHelp,
}

// parseCommandText splits `topic | description`. Without a separator the
// topic doubles as the description.
func parseCommandText(text string) (string, string) {
	parts := strings.SplitN(text, "|", 2)
	topic := strings.TrimSpace(parts[0])
	if len(parts) == 1 {
		return topic, topic
	}

	description := strings.TrimSpace(parts[1])
	if description == "" {
		description = topic
	}
	return topic, description
}

func ephemeralJSON(text string) []byte {
	b, _ := json.Marshal(gin.H{
		"response_type": "ephemeral",
		"text":          text,
	})
	return b
}

func (s *Server) ephemeral(c *gin.Context, text string) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", ephemeralJSON(text))
}

// slashCommand acknowledges a request command right away and creates the
// request in the background. The outcome reaches the user as an ephemeral
// message.
func (s *Server) slashCommand(c *gin.Context) {
	var params struct {
		Command   string `form:"command" binding:"required"`
		Text      string `form:"text"`
		UserID    string `form:"user_id" binding:"required"`
		ChannelID string `form:"channel_id" binding:"required"`
	}

	if err := c.ShouldBind(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	kind, ok := commandKinds[params.Command]
	if !ok {
		s.ephemeral(c, s.text("command.unknown", nil))
		return
	}

	topic, description := parseCommandText(params.Text)
	if topic == "" {
		s.ephemeral(c, s.text("command.usage", map[string]interface{}{"Command": params.Command}))
		return
	}

	runAsync(func() {
		ctx, cancel := context.WithTimeout(context.Background(), webhookTaskTimeout)
		defer cancel()

		logger := log.WithFields(logrus.Fields{
			"kind": kind,
			"user": params.UserID,
		})

		var reply string
		id, err := s.lifecycle.CreateRequest(ctx, kind, params.UserID, params.ChannelID, topic, description)
		if err != nil {
			var invalid *huddle.ValidationError
			if errors.As(err, &invalid) {
				logger.WithError(err).Info("request rejected")
				reply = s.text("command.usage", map[string]interface{}{"Command": params.Command})
			} else {
				logger.WithError(err).Error("request creation failed")
				reply = s.text("command.failed", nil)
			}
		} else {
			logger.WithField("request_id", id).Info("request created")
			reply = s.text("command.created."+string(kind), nil)
		}

		if err := s.gateway.PostEphemeral(ctx, params.ChannelID, params.UserID, reply); err != nil {
			logger.WithError(err).Warn("command reply not delivered")
		}
	})

	s.ephemeral(c, s.text("command.received", nil))
}

// blockAction routes a button press to the action handler and replies to
// the actor with the result
func (s *Server) blockAction(c *gin.Context) {
	interaction, err := slack.ParseInteraction(c.PostForm("payload"))
	if err != nil {
		if errors.Is(err, slack.ErrUnsupportedInteraction) || errors.Is(err, slack.ErrNoAction) {
			c.Status(http.StatusOK)
			return
		}
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	runAsync(func() {
		ctx, cancel := context.WithTimeout(context.Background(), webhookTaskTimeout)
		defer cancel()

		result := s.actions.Handle(ctx, interaction.Action, interaction.RequestID, interaction.UserID)
		log.WithFields(logrus.Fields{
			"action":     interaction.Action,
			"request_id": interaction.RequestID,
			"user":       interaction.UserID,
			"success":    result.Success,
		}).Info("action handled")

		if err := s.gateway.PostEphemeral(ctx, interaction.ChannelID, interaction.UserID, result.Message); err != nil {
			log.WithError(err).WithField("request_id", interaction.RequestID).Warn("action reply not delivered")
		}
	})

	c.Status(http.StatusOK)
}
