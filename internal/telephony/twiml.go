// Package telephony renders the TwiML control responses returned to
// Twilio. The builder is handed rendered strings and flags only; it never
// touches session state, so rendering stays valid even after the session
// has been torn down.
package telephony

import (
	"github.com/twilio/twilio-go/twiml"
)

const (
	// listenTimeout bounds how long Twilio waits for the caller to start
	// speaking before falling through to the reprompt.
	listenTimeout = "5"

	speechTimeout = "auto"
)

// GatherPrompt renders speak-then-listen: the prompt inside a speech
// <Gather> posting back to action, then a reprompt line and a <Redirect>
// so silence re-enters the webhook without a speech result.
func GatherPrompt(text, reprompt, action string) (string, error) {
	gather := &twiml.VoiceGather{
		Input:         "speech",
		Action:        action,
		Method:        "POST",
		Timeout:       listenTimeout,
		SpeechTimeout: speechTimeout,
		InnerElements: []twiml.Element{
			&twiml.VoiceSay{Message: text},
		},
	}

	verbs := []twiml.Element{gather}
	if reprompt != "" {
		verbs = append(verbs, &twiml.VoiceSay{Message: reprompt})
	}
	verbs = append(verbs, &twiml.VoiceRedirect{Url: action, Method: "POST"})

	return twiml.Voice(verbs)
}

// SayHangup renders speak-then-terminate: each line as its own <Say>,
// then <Hangup/>.
func SayHangup(lines ...string) (string, error) {
	verbs := make([]twiml.Element, 0, len(lines)+1)
	for _, line := range lines {
		if line == "" {
			continue
		}
		verbs = append(verbs, &twiml.VoiceSay{Message: line})
	}
	verbs = append(verbs, &twiml.VoiceHangup{})
	return twiml.Voice(verbs)
}

// SayPauseHangup renders the successful-completion shape: the generated
// reply, a short beat, the fixed closing line, then <Hangup/>.
func SayPauseHangup(text, closing string) (string, error) {
	verbs := []twiml.Element{
		&twiml.VoiceSay{Message: text},
		&twiml.VoicePause{Length: "1"},
		&twiml.VoiceSay{Message: closing},
		&twiml.VoiceHangup{},
	}
	return twiml.Voice(verbs)
}

// Fallback is the last-resort control response should TwiML rendering
// itself fail; it hangs the call up cleanly.
const Fallback = `<?xml version="1.0" encoding="UTF-8"?><Response><Hangup/></Response>`
