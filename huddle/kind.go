package huddle

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bitmark-inc/huddle-api/consts"
	"github.com/bitmark-inc/huddle-api/schema"
)

// Action is the id carried by an interactive control
type Action string

const (
	ActionJoin    Action = "join"
	ActionClaim   Action = "claim"
	ActionDetails Action = "details"
)

// KindSpec is what differs between request kinds. Everything else in the
// lifecycle is shared.
type KindSpec struct {
	Kind schema.Kind

	// Primary is the action offered on the advertisement next to details
	Primary Action

	// transitions lists the statuses reachable from each status
	transitions map[schema.Status][]schema.Status
}

var kindSpecs = map[schema.Kind]KindSpec{
	schema.KindCommunication: {
		Kind:    schema.KindCommunication,
		Primary: ActionJoin,
		transitions: map[schema.Status][]schema.Status{
			schema.StatusOpen: {schema.StatusClosed},
		},
	},
	schema.KindHelp: {
		Kind:    schema.KindHelp,
		Primary: ActionClaim,
		transitions: map[schema.Status][]schema.Status{
			schema.StatusOpen:       {schema.StatusInProgress, schema.StatusClosed},
			schema.StatusInProgress: {schema.StatusClosed},
		},
	},
}

// SpecFor returns the spec of a known kind
func SpecFor(kind schema.Kind) (KindSpec, bool) {
	spec, ok := kindSpecs[kind]
	return spec, ok
}

// Allows reports whether action is available on requests of this kind
func (k KindSpec) Allows(action Action) bool {
	return action == ActionDetails || action == k.Primary
}

// CanTransition reports whether from -> to is legal for this kind
func (k KindSpec) CanTransition(from, to schema.Status) bool {
	for _, s := range k.transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// PriorStatuses lists every status from which to is reachable. It is the
// expected-status guard of a conditional update into to.
func (k KindSpec) PriorStatuses(to schema.Status) []schema.Status {
	prior := make([]schema.Status, 0, len(k.transitions))
	for _, from := range []schema.Status{schema.StatusOpen, schema.StatusInProgress} {
		if k.CanTransition(from, to) {
			prior = append(prior, from)
		}
	}
	return prior
}

// ExpiryJobID is unique per request and kind
func ExpiryJobID(kind schema.Kind, requestID string) string {
	return fmt.Sprintf("close-%s-%s", kind, requestID)
}

var channelNameCleaner = regexp.MustCompile(`[^a-z0-9_-]+`)

// ChannelName derives the session channel name from a prefix and the
// request id fragment.
func ChannelName(prefix, requestID string) string {
	fragment := requestID
	if len(fragment) > 8 {
		fragment = fragment[:8]
	}

	name := strings.ToLower(prefix + "-" + fragment)
	name = channelNameCleaner.ReplaceAllString(name, "-")
	if len(name) > consts.MaxChannelNameLength {
		name = name[len(name)-consts.MaxChannelNameLength:]
	}
	return name
}
