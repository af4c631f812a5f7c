package slack

import (
	"strings"

	slackgo "github.com/slack-go/slack"

	"github.com/bitmark-inc/huddle-api/huddle"
)

const (
	actionBlockID  = "huddle_actions"
	actionIDPrefix = "huddle_"

	maxHeaderLength = 150
)

// ActionID is the Block Kit action_id of a huddle action
func ActionID(action huddle.Action) string {
	return actionIDPrefix + string(action)
}

// ParseActionID reverses ActionID. Controls not rendered by this service are
// reported as not ok.
func ParseActionID(actionID string) (huddle.Action, bool) {
	if !strings.HasPrefix(actionID, actionIDPrefix) {
		return "", false
	}
	return huddle.Action(strings.TrimPrefix(actionID, actionIDPrefix)), true
}

func messageOptions(msg huddle.Message) []slackgo.MsgOption {
	options := []slackgo.MsgOption{slackgo.MsgOptionText(msg.Text, false)}
	if b := blocks(msg); len(b) > 0 {
		options = append(options, slackgo.MsgOptionBlocks(b...))
	}
	return options
}

// blocks renders a message as header, body, notes, footer and buttons
func blocks(msg huddle.Message) []slackgo.Block {
	result := make([]slackgo.Block, 0, 5)

	if msg.Header != "" {
		result = append(result, slackgo.NewHeaderBlock(
			slackgo.NewTextBlockObject(slackgo.PlainTextType, truncate(msg.Header, maxHeaderLength), true, false),
		))
	}

	if msg.Body != "" {
		result = append(result, markdownSection(msg.Body))
	}

	for _, note := range msg.Notes {
		result = append(result, markdownSection(note))
	}

	if msg.Footer != "" {
		result = append(result, slackgo.NewContextBlock("",
			slackgo.NewTextBlockObject(slackgo.MarkdownType, msg.Footer, false, false),
		))
	}

	if len(msg.Buttons) > 0 {
		elements := make([]slackgo.BlockElement, 0, len(msg.Buttons))
		for _, b := range msg.Buttons {
			button := slackgo.NewButtonBlockElement(
				ActionID(b.Action),
				b.Value,
				slackgo.NewTextBlockObject(slackgo.PlainTextType, b.Label, true, false),
			)
			if b.Primary {
				button = button.WithStyle(slackgo.StylePrimary)
			}
			elements = append(elements, button)
		}
		result = append(result, slackgo.NewActionBlock(actionBlockID, elements...))
	}

	return result
}

func markdownSection(text string) *slackgo.SectionBlock {
	return slackgo.NewSectionBlock(slackgo.NewTextBlockObject(slackgo.MarkdownType, text, false, false), nil, nil)
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}
