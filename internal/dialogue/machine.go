// Package dialogue implements the three-question booking script as a pure
// state machine. Given the current step and the caller's recognized speech
// it decides which slot to fill, where the call goes next, and what the
// reply generator should be instructed to say. It performs no I/O and
// cannot fail.
package dialogue

import "strings"

// Step is the caller's position in the fixed script.
type Step int

const (
	StepService Step = iota // waiting for the requested service
	StepName                // waiting for the caller's first name
	StepTime                // waiting for the preferred day/time
	StepComplete            // all slots filled, call wrapping up
)

func (s Step) String() string {
	switch s {
	case StepService:
		return "awaiting_service"
	case StepName:
		return "awaiting_name"
	case StepTime:
		return "awaiting_time"
	case StepComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Slot names one of the three collected values.
type Slot string

const (
	SlotNone    Slot = ""
	SlotService Slot = "service"
	SlotName    Slot = "name"
	SlotTime    Slot = "time_preference"
)

// Outcome classifies what a turn does to the call.
type Outcome int

const (
	// OutcomeGreet is the opening prompt, issued only before any
	// recognition attempt has happened.
	OutcomeGreet Outcome = iota

	// OutcomeAdvance fills one slot and asks the next question.
	OutcomeAdvance

	// OutcomeFinish fills the last slot; the call says its closing line,
	// triggers the booking handoff and hangs up.
	OutcomeFinish

	// OutcomeAbandon ends the call with an apology after caller silence.
	OutcomeAbandon
)

// Turn is the decision for one webhook invocation.
type Turn struct {
	Outcome     Outcome
	Slot        Slot   // slot to fill, SlotNone for greet/abandon
	Value       string // value for Slot
	Next        Step
	Instruction string // per-turn instruction handed to reply generation
	Terminal    bool   // tear the session down after responding
	Listen      bool   // prompt-and-listen vs say-and-hang-up
}

// Per-step reply instructions. Whatever the caller said is accepted
// verbatim as that step's value; the instruction only shapes the
// acknowledgement and the next question.
var stepInstructions = map[Step]string{
	StepService: "Acknowledge their service in your own words. Then ask: 'What's your first name?'",
	StepName:    "Acknowledge their name. Then ask: 'What day and roughly what time works best for you?'",
	StepTime:    "Acknowledge their time preference. Then say you'll text them the booking link.",
}

const wrapUpInstruction = "Wrap up politely."

// Advance decides the turn for the current step and extracted speech.
// speechSeen reports whether the webhook carried a recognition field at
// all; its absence before the greeting means this is the call's first hit.
// Advance is total: every (step, speech) pair yields a valid Turn.
func Advance(step Step, speech string, speechSeen, greeted bool) Turn {
	speech = strings.TrimSpace(speech)

	// First contact: no recognition attempt has happened yet.
	if !speechSeen && !greeted {
		return Turn{
			Outcome: OutcomeGreet,
			Next:    step,
			Listen:  true,
		}
	}

	// Silence after the greeting, at any step, is caller abandonment.
	// The session is torn down exactly as on the successful terminal
	// path so abandoned calls do not leak sessions.
	if speech == "" {
		return Turn{
			Outcome:  OutcomeAbandon,
			Next:     step,
			Terminal: true,
		}
	}

	switch step {
	case StepService:
		return Turn{
			Outcome:     OutcomeAdvance,
			Slot:        SlotService,
			Value:       speech,
			Next:        StepName,
			Instruction: stepInstructions[StepService],
			Listen:      true,
		}
	case StepName:
		return Turn{
			Outcome:     OutcomeAdvance,
			Slot:        SlotName,
			Value:       speech,
			Next:        StepTime,
			Instruction: stepInstructions[StepName],
			Listen:      true,
		}
	case StepTime:
		return Turn{
			Outcome:     OutcomeFinish,
			Slot:        SlotTime,
			Value:       speech,
			Next:        StepComplete,
			Instruction: stepInstructions[StepTime],
			Terminal:    true,
		}
	default:
		// A completed session is torn down before its terminal response
		// is even written, so this only happens when a duplicate delivery
		// races teardown. Close out without re-firing anything.
		return Turn{
			Outcome:     OutcomeAbandon,
			Next:        StepComplete,
			Instruction: wrapUpInstruction,
			Terminal:    true,
		}
	}
}
