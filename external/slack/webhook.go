package slack

import (
	"encoding/json"
	"fmt"
	"net/http"

	slackgo "github.com/slack-go/slack"

	"github.com/bitmark-inc/huddle-api/huddle"
)

var (
	ErrUnsupportedInteraction = fmt.Errorf("unsupported interaction")
	ErrNoAction               = fmt.Errorf("interaction carries no huddle action")
)

// Interaction is a button press on a huddle message
type Interaction struct {
	Action      huddle.Action
	RequestID   string
	UserID      string
	ChannelID   string
	ResponseURL string
}

// Verify checks the request signature against the signing secret
func Verify(header http.Header, body []byte, signingSecret string) error {
	verifier, err := slackgo.NewSecretsVerifier(header, signingSecret)
	if err != nil {
		return err
	}
	if _, err := verifier.Write(body); err != nil {
		return err
	}
	return verifier.Ensure()
}

// ParseInteraction decodes the `payload` form value of an interactivity
// request and picks the first huddle action in it.
func ParseInteraction(payload string) (*Interaction, error) {
	var callback slackgo.InteractionCallback
	if err := json.Unmarshal([]byte(payload), &callback); err != nil {
		return nil, err
	}

	if callback.Type != slackgo.InteractionTypeBlockActions {
		return nil, ErrUnsupportedInteraction
	}

	for _, a := range callback.ActionCallback.BlockActions {
		action, ok := ParseActionID(a.ActionID)
		if !ok {
			continue
		}
		return &Interaction{
			Action:      action,
			RequestID:   a.Value,
			UserID:      callback.User.ID,
			ChannelID:   callback.Channel.ID,
			ResponseURL: callback.ResponseURL,
		}, nil
	}

	return nil, ErrNoAction
}
