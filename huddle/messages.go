package huddle

import (
	"strings"
	"time"

	"github.com/bitmark-inc/huddle-api/schema"
	"github.com/bitmark-inc/huddle-api/utils"
)

// texts renders localised content for one language and timezone
type texts struct {
	lang       string
	timezone   string
	closeAfter time.Duration
}

func newTexts(c Config) texts {
	return texts{lang: c.Language, timezone: c.Timezone, closeAfter: c.CloseAfter}
}

func (t texts) get(id string, data map[string]interface{}) string {
	return utils.Localize(t.lang, id, data)
}

func (t texts) requestData(r *schema.Request) map[string]interface{} {
	return map[string]interface{}{
		"Requester":   r.RequesterID,
		"Topic":       r.Topic,
		"Description": r.Description,
		"ShortID":     r.ShortID(),
		"Created":     utils.FormatDateTime(r.CreatedAt, t.timezone),
		"Deadline":    utils.FormatClock(r.CreatedAt.Add(t.closeAfter), t.timezone),
		"Minutes":     int(t.closeAfter.Minutes()),
		"Helper":      r.Helper(),
	}
}

func (t texts) kindID(r *schema.Request, suffix string) string {
	return string(r.Kind) + "." + suffix
}

func (t texts) buttonLabel(action Action) string {
	return t.get("button."+string(action), nil)
}

// advertisement is posted in the origin channel with the kind's primary
// action and a details button
func (t texts) advertisement(r *schema.Request, spec KindSpec) Message {
	data := t.requestData(r)
	return Message{
		Text:   t.get(t.kindID(r, "title"), data),
		Header: t.get(t.kindID(r, "title"), data),
		Body:   t.get(t.kindID(r, "advertisement.body"), data),
		Footer: t.get("request.footer", data),
		Buttons: []Button{
			{Action: spec.Primary, Label: t.buttonLabel(spec.Primary), Value: r.ID, Primary: true},
			{Action: ActionDetails, Label: t.buttonLabel(ActionDetails), Value: r.ID},
		},
	}
}

// claimedAdvertisement replaces the advertisement once a helper won the claim
func (t texts) claimedAdvertisement(r *schema.Request) Message {
	data := t.requestData(r)
	return Message{
		Text:   t.get("help.in_progress.title", data),
		Header: t.get("help.in_progress.title", data),
		Body:   t.get(t.kindID(r, "advertisement.body"), data),
		Notes:  []string{t.get("help.in_progress.helper", data)},
		Footer: t.get("request.footer.in_progress", data),
		Buttons: []Button{
			{Action: ActionDetails, Label: t.buttonLabel(ActionDetails), Value: r.ID},
		},
	}
}

// closedAdvertisement replaces the advertisement after expiry
func (t texts) closedAdvertisement(r *schema.Request) Message {
	data := t.requestData(r)
	msg := Message{
		Text:   t.get(t.kindID(r, "closed.title"), data),
		Header: t.get(t.kindID(r, "closed.title"), data),
		Body:   t.get(t.kindID(r, "advertisement.body"), data),
		Footer: t.get("request.footer.closed", data),
		Buttons: []Button{
			{Action: ActionDetails, Label: t.buttonLabel(ActionDetails), Value: r.ID},
		},
	}
	if r.Helper() != "" {
		msg.Notes = []string{t.get("help.in_progress.helper", data)}
	}
	return msg
}

// welcome opens the session channel
func (t texts) welcome(r *schema.Request) Message {
	data := t.requestData(r)
	return Message{
		Text:   t.get(t.kindID(r, "title"), data),
		Header: t.get(t.kindID(r, "title"), data),
		Body:   t.get(t.kindID(r, "welcome.body"), data),
		Footer: t.get("request.footer", data),
	}
}

func (t texts) closureNotice(r *schema.Request) Message {
	text := t.get(t.kindID(r, "closure_notice"), t.requestData(r))
	return Message{Text: text, Body: text}
}

func (t texts) joinNotice(userID string) Message {
	text := t.get("join.notice", map[string]interface{}{"User": userID})
	return Message{Text: text, Body: text}
}

func (t texts) claimChannelNotice(helperID string) Message {
	text := t.get("claim.channel_notice", map[string]interface{}{"Helper": helperID})
	return Message{Text: text, Body: text}
}

func (t texts) claimDirectMessage(r *schema.Request) Message {
	text := t.get("claim.dm", t.requestData(r))
	return Message{Text: text, Body: text}
}

func (t texts) requesterNotice(r *schema.Request) Message {
	text := t.get("claim.requester_notice", t.requestData(r))
	return Message{Text: text, Body: text}
}

func (t texts) status(s schema.Status) string {
	return t.get("status."+string(s), nil)
}

func (t texts) details(r *schema.Request) string {
	data := t.requestData(r)
	data["Status"] = t.status(r.Status)

	lines := []string{t.get("details.body", data)}
	if r.Helper() != "" {
		lines = append(lines, t.get("details.helper", data))
	}
	if r.ClosedAt != nil {
		lines = append(lines, t.get("details.closed", map[string]interface{}{
			"Closed": utils.FormatDateTime(*r.ClosedAt, t.timezone),
		}))
	}
	return strings.Join(lines, "\n")
}
