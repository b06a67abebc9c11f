package telephony

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatherPromptSpeaksThenListens(t *testing.T) {
	doc, err := GatherPrompt("What can I help you with today?", "Are you still there?", "/twilio/voice")
	require.NoError(t, err)

	assert.Contains(t, doc, "<Response>")
	assert.Contains(t, doc, "<Gather")
	assert.Contains(t, doc, `input="speech"`)
	assert.Contains(t, doc, `action="/twilio/voice"`)
	assert.Contains(t, doc, `method="POST"`)
	assert.Contains(t, doc, `timeout="5"`)
	assert.Contains(t, doc, "What can I help you with today?")
	assert.Contains(t, doc, "Are you still there?")
	assert.Contains(t, doc, "<Redirect")
	assert.NotContains(t, doc, "<Hangup")
}

func TestGatherPromptRepromptComesAfterGather(t *testing.T) {
	doc, err := GatherPrompt("prompt line", "reprompt line", "/twilio/voice")
	require.NoError(t, err)

	gatherEnd := strings.Index(doc, "</Gather>")
	reprompt := strings.Index(doc, "reprompt line")
	require.Greater(t, gatherEnd, 0)
	assert.Greater(t, reprompt, gatherEnd, "reprompt must be the on-silence fallback, outside the Gather")
}

func TestGatherPromptWithoutReprompt(t *testing.T) {
	doc, err := GatherPrompt("prompt line", "", "/twilio/voice")
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(doc, "<Say>"))
	assert.Contains(t, doc, "<Redirect")
}

func TestSayHangupTerminates(t *testing.T) {
	doc, err := SayHangup("Sorry, we missed that. Goodbye.")
	require.NoError(t, err)

	assert.Contains(t, doc, "Sorry, we missed that. Goodbye.")
	assert.Contains(t, doc, "<Hangup/>")
	assert.NotContains(t, doc, "<Gather")
}

func TestSayHangupSkipsEmptyLines(t *testing.T) {
	doc, err := SayHangup("", "only line")
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(doc, "<Say>"))
}

func TestSayPauseHangupShape(t *testing.T) {
	doc, err := SayPauseHangup("You're all set.", "Thanks for calling Grooming Company. Talk to you soon.")
	require.NoError(t, err)

	pause := strings.Index(doc, "<Pause")
	closing := strings.Index(doc, "Thanks for calling")
	require.Greater(t, pause, 0)
	assert.Contains(t, doc, `length="1"`)
	assert.Greater(t, closing, pause, "closing line follows the pause")
	assert.Contains(t, doc, "<Hangup/>")
}

func TestCallerTextIsEscaped(t *testing.T) {
	doc, err := GatherPrompt("a <cut> & shave", "", "/twilio/voice")
	require.NoError(t, err)

	assert.Contains(t, doc, "&lt;cut&gt;")
	assert.Contains(t, doc, "&amp;")
	assert.NotContains(t, doc, "<cut>")
}
