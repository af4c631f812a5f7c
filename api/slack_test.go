package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/huddle-api/huddle"
	"github.com/bitmark-inc/huddle-api/schema"
)

func commandBody(command, text, user string) string {
	return url.Values{
		"command":    {command},
		"text":       {text},
		"user_id":    {user},
		"channel_id": {"CORIGIN"},
	}.Encode()
}

func replyText(t *testing.T, body []byte) string {
	var reply struct {
		ResponseType string `json:"response_type"`
		Text         string `json:"text"`
	}
	assert.NoError(t, json.Unmarshal(body, &reply))
	assert.Equal(t, "ephemeral", reply.ResponseType)
	return reply.Text
}

func TestParseCommandText(t *testing.T) {
	cases := []struct {
		text, topic, description string
	}{
		{"VPN | cannot connect from home", "VPN", "cannot connect from home"},
		{"  Project plan  ", "Project plan", "Project plan"},
		{"Lunch |", "Lunch", "Lunch"},
		{"a | b | c", "a", "b | c"},
		{"", "", ""},
	}

	for _, tc := range cases {
		topic, description := parseCommandText(tc.text)
		assert.Equal(t, tc.topic, topic, tc.text)
		assert.Equal(t, tc.description, description, tc.text)
	}
}

func TestSlashCommandCreatesRequest(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	ts := newTestServer(ctl)

	ts.lifecycle.EXPECT().
		CreateRequest(gomock.Any(), schema.KindHelp, "U1", "CORIGIN", "VPN", "cannot connect").
		Return("r1", nil).Times(1)
	ts.gateway.EXPECT().
		PostEphemeral(gomock.Any(), "CORIGIN", "U1", text("command.created.help", nil)).
		Return(nil).Times(1)

	w := ts.serve(ts.setupRouter(), signedRequest("/webhook/slack/commands",
		commandBody("/yardim-iste", "VPN | cannot connect", "U1")))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, text("command.received", nil), replyText(t, w.Body.Bytes()))
}

func TestSlashCommandEnglishAlias(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	ts := newTestServer(ctl)

	ts.lifecycle.EXPECT().
		CreateRequest(gomock.Any(), schema.KindCommunication, "U1", "CORIGIN", "Roadmap", "Roadmap").
		Return("r1", nil).Times(1)
	ts.gateway.EXPECT().
		PostEphemeral(gomock.Any(), "CORIGIN", "U1", text("command.created.communication", nil)).
		Return(nil).Times(1)

	w := ts.serve(ts.setupRouter(), signedRequest("/webhook/slack/commands",
		commandBody("/talk", "Roadmap", "U1")))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSlashCommandWithoutTopic(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	ts := newTestServer(ctl)

	w := ts.serve(ts.setupRouter(), signedRequest("/webhook/slack/commands",
		commandBody("/iletisim-kur", "   ", "U1")))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		text("command.usage", map[string]interface{}{"Command": "/iletisim-kur"}),
		replyText(t, w.Body.Bytes()))
}

func TestSlashCommandUnknown(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	ts := newTestServer(ctl)

	w := ts.serve(ts.setupRouter(), signedRequest("/webhook/slack/commands",
		commandBody("/weather", "today", "U1")))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, text("command.unknown", nil), replyText(t, w.Body.Bytes()))
}

func TestSlashCommandFailures(t *testing.T) {
	cases := []struct {
		err   error
		reply string
	}{
		{errors.New("db down"), text("command.failed", nil)},
		{&huddle.ValidationError{Field: "topic", Reason: "required"},
			text("command.usage", map[string]interface{}{"Command": "/yardim-iste"})},
	}

	for _, tc := range cases {
		ctl := gomock.NewController(t)
		ts := newTestServer(ctl)

		ts.lifecycle.EXPECT().
			CreateRequest(gomock.Any(), schema.KindHelp, "U1", "CORIGIN", "VPN", "VPN").
			Return("", tc.err).Times(1)
		ts.gateway.EXPECT().
			PostEphemeral(gomock.Any(), "CORIGIN", "U1", tc.reply).
			Return(nil).Times(1)

		w := ts.serve(ts.setupRouter(), signedRequest("/webhook/slack/commands",
			commandBody("/yardim-iste", "VPN", "U1")))
		assert.Equal(t, http.StatusOK, w.Code)
		ctl.Finish()
	}
}

func TestSlashCommandInvalidSignature(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	ts := newTestServer(ctl)

	req := signedRequest("/webhook/slack/commands", commandBody("/yardim-iste", "VPN", "U1"))
	req.Header.Set("X-Slack-Signature", "v0=deadbeef")

	w := ts.serve(ts.setupRouter(), req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSlashCommandRateLimited(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	ts := newTestServer(ctl)
	ts.options.RateLimitRequests = 1

	ts.lifecycle.EXPECT().
		CreateRequest(gomock.Any(), schema.KindHelp, "U1", "CORIGIN", "VPN", "VPN").
		Return("r1", nil).Times(1)
	ts.lifecycle.EXPECT().
		CreateRequest(gomock.Any(), schema.KindHelp, "U2", "CORIGIN", "VPN", "VPN").
		Return("r2", nil).Times(1)
	ts.gateway.EXPECT().PostEphemeral(gomock.Any(), "CORIGIN", gomock.Any(), gomock.Any()).Return(nil).Times(2)

	r := ts.setupRouter()

	w := ts.serve(r, signedRequest("/webhook/slack/commands", commandBody("/yardim-iste", "VPN", "U1")))
	assert.Equal(t, text("command.received", nil), replyText(t, w.Body.Bytes()))

	w = ts.serve(r, signedRequest("/webhook/slack/commands", commandBody("/yardim-iste", "VPN", "U1")))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, text("command.rate_limited", nil), replyText(t, w.Body.Bytes()))

	// the limit is per user
	w = ts.serve(r, signedRequest("/webhook/slack/commands", commandBody("/yardim-iste", "VPN", "U2")))
	assert.Equal(t, text("command.received", nil), replyText(t, w.Body.Bytes()))
}

func TestBlockAction(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	ts := newTestServer(ctl)

	payload := `{
		"type": "block_actions",
		"user": {"id": "U2"},
		"channel": {"id": "CORIGIN"},
		"actions": [{"type": "button", "action_id": "huddle_claim", "block_id": "huddle_actions", "value": "r1"}]
	}`

	ts.actions.EXPECT().
		Handle(gomock.Any(), huddle.ActionClaim, "r1", "U2").
		Return(huddle.Result{Success: true, Message: "connected", ChannelID: "G1"}).Times(1)
	ts.gateway.EXPECT().
		PostEphemeral(gomock.Any(), "CORIGIN", "U2", "connected").
		Return(nil).Times(1)

	w := ts.serve(ts.setupRouter(), signedRequest("/webhook/slack/actions",
		url.Values{"payload": {payload}}.Encode()))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBlockActionIgnoresOtherInteractions(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	ts := newTestServer(ctl)

	r := ts.setupRouter()

	w := ts.serve(r, signedRequest("/webhook/slack/actions",
		url.Values{"payload": {`{"type": "view_submission"}`}}.Encode()))
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.serve(r, signedRequest("/webhook/slack/actions",
		url.Values{"payload": {`not json`}}.Encode()))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
