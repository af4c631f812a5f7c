package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalize(t *testing.T) {
	msg := Localize("en", "claim.success", map[string]interface{}{"Requester": "U1"})
	assert.Equal(t, "✅ Help connection established! Your DM with <@U1> is open.", msg)

	msg = Localize("tr", "join.closed", nil)
	assert.Equal(t, "❌ Bu kanal kapatılmış.", msg)
}

func TestLocalizeFallback(t *testing.T) {
	// unknown languages fall back to the bundle default
	assert.Equal(t, "📋 Details", Localize("de", "button.details", nil))

	// unknown ids render as the id
	assert.Equal(t, "no.such.message", Localize("en", "no.such.message", nil))
}
