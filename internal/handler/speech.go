package handler

import (
	"net/url"
	"strings"
)

const speechField = "SpeechResult"

// ExtractSpeech pulls the recognized utterance out of the webhook form.
// The second result distinguishes "field absent" (no recognition attempt
// has happened yet, i.e. the call's very first hit) from "field present
// but blank" (the caller was silent or recognition produced nothing).
func ExtractSpeech(form url.Values) (speech string, present bool) {
	vals, ok := form[speechField]
	if !ok {
		return "", false
	}
	if len(vals) == 0 {
		return "", true
	}
	return strings.TrimSpace(vals[0]), true
}
