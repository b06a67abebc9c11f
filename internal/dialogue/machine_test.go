package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceFirstContactGreets(t *testing.T) {
	turn := Advance(StepService, "", false, false)

	assert.Equal(t, OutcomeGreet, turn.Outcome)
	assert.Equal(t, SlotNone, turn.Slot)
	assert.Equal(t, StepService, turn.Next)
	assert.True(t, turn.Listen)
	assert.False(t, turn.Terminal)
}

func TestAdvanceFillsOneSlotPerStep(t *testing.T) {
	tests := []struct {
		name     string
		step     Step
		speech   string
		wantSlot Slot
		wantNext Step
		wantEnd  bool
	}{
		{"service", StepService, "taper and line up", SlotService, StepName, false},
		{"name", StepName, "Marcus", SlotName, StepTime, false},
		{"time", StepTime, "Saturday at 2", SlotTime, StepComplete, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			turn := Advance(tt.step, tt.speech, true, true)

			assert.Equal(t, tt.wantSlot, turn.Slot)
			assert.Equal(t, tt.speech, turn.Value)
			assert.Equal(t, tt.wantNext, turn.Next)
			assert.Equal(t, tt.wantEnd, turn.Terminal)
			assert.NotEmpty(t, turn.Instruction)
			if tt.wantEnd {
				assert.Equal(t, OutcomeFinish, turn.Outcome)
				assert.False(t, turn.Listen)
			} else {
				assert.Equal(t, OutcomeAdvance, turn.Outcome)
				assert.True(t, turn.Listen)
			}
		})
	}
}

func TestAdvanceTrimsSpeech(t *testing.T) {
	turn := Advance(StepName, "  Marcus \n", true, true)

	require.Equal(t, OutcomeAdvance, turn.Outcome)
	assert.Equal(t, "Marcus", turn.Value)
}

func TestAdvanceSilenceAfterGreetingAbandons(t *testing.T) {
	for _, step := range []Step{StepService, StepName, StepTime} {
		t.Run(step.String(), func(t *testing.T) {
			turn := Advance(step, "", true, true)

			assert.Equal(t, OutcomeAbandon, turn.Outcome)
			assert.Equal(t, SlotNone, turn.Slot)
			assert.True(t, turn.Terminal)
			assert.False(t, turn.Listen)
		})
	}
}

func TestAdvanceAbsentFieldAfterGreetingAbandons(t *testing.T) {
	// The reprompt redirect re-enters the webhook without a speech field;
	// once the greeting is out, that is caller silence, not first contact.
	turn := Advance(StepService, "", false, true)

	assert.Equal(t, OutcomeAbandon, turn.Outcome)
	assert.True(t, turn.Terminal)
}

func TestAdvanceBlankSpeechIsNotAValue(t *testing.T) {
	turn := Advance(StepName, "   ", true, true)

	assert.Equal(t, OutcomeAbandon, turn.Outcome)
	assert.Empty(t, turn.Value)
}

func TestAdvanceCompletedStepClosesOut(t *testing.T) {
	turn := Advance(StepComplete, "anything else", true, true)

	assert.Equal(t, OutcomeAbandon, turn.Outcome)
	assert.Equal(t, SlotNone, turn.Slot)
	assert.True(t, turn.Terminal)
}

func TestAdvanceIsDeterministic(t *testing.T) {
	first := Advance(StepService, "beard trim", true, true)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Advance(StepService, "beard trim", true, true))
	}
}

func TestStepString(t *testing.T) {
	assert.Equal(t, "awaiting_service", StepService.String())
	assert.Equal(t, "awaiting_name", StepName.String())
	assert.Equal(t, "awaiting_time", StepTime.String())
	assert.Equal(t, "complete", StepComplete.String())
}
