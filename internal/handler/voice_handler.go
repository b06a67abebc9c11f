package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/groomingco/edge-voice-service/internal/dialogue"
	"github.com/groomingco/edge-voice-service/internal/messaging"
	"github.com/groomingco/edge-voice-service/internal/prompts"
	"github.com/groomingco/edge-voice-service/internal/reply"
	"github.com/groomingco/edge-voice-service/internal/session"
	"github.com/groomingco/edge-voice-service/internal/telephony"
	"github.com/groomingco/edge-voice-service/pkg/logger"
	"go.uber.org/zap"
)

// VoicePath is the webhook route Twilio posts every turn to. Gather and
// Redirect verbs point back at it so the whole call loops through one
// handler.
const VoicePath = "/twilio/voice"

// VoiceHandler drives one webhook turn: look up the call, run the state
// machine, produce the utterance, render the control response, and fire
// the booking handoff on the terminal turn.
type VoiceHandler struct {
	store      session.Store
	monitor    *session.Monitor
	replies    *reply.Adapter
	notifier   messaging.Notifier
	smsTimeout time.Duration
}

// NewVoiceHandler wires the turn pipeline.
func NewVoiceHandler(store session.Store, monitor *session.Monitor, replies *reply.Adapter, notifier messaging.Notifier, smsTimeout time.Duration) *VoiceHandler {
	return &VoiceHandler{
		store:      store,
		monitor:    monitor,
		replies:    replies,
		notifier:   notifier,
		smsTimeout: smsTimeout,
	}
}

// SetupVoiceRoutes registers the webhook route.
func (h *VoiceHandler) SetupVoiceRoutes(router *mux.Router) {
	router.HandleFunc(VoicePath, h.HandleVoice).Methods("POST")
}

// HandleVoice serves one turn of the call. Twilio posts form-encoded
// fields; the response is always 200 with a TwiML document — an error
// status would only make Twilio drop or retry the call.
func (h *VoiceHandler) HandleVoice(w http.ResponseWriter, r *http.Request) {
	turnID := uuid.NewString()

	if err := r.ParseForm(); err != nil {
		logger.Base().Warn("unparseable voice webhook",
			zap.String("turn_id", turnID), zap.Error(err))
		doc, renderErr := telephony.SayHangup(prompts.NoIdentity)
		h.writeTwiML(w, doc, renderErr)
		return
	}

	callSID := r.PostForm.Get("CallSid")
	from := r.PostForm.Get("From")
	speech, speechSeen := ExtractSpeech(r.PostForm)

	// No call identifier means the turn cannot be tracked: say a generic
	// line and end the call without ever creating a session.
	if callSID == "" {
		logger.Base().Warn("voice webhook without CallSid", zap.String("turn_id", turnID))
		doc, renderErr := telephony.SayHangup(prompts.NoIdentity)
		h.writeTwiML(w, doc, renderErr)
		return
	}

	sess, existed := h.store.GetOrCreate(callSID)

	// One logical turn owns the session for its whole read-modify-write.
	// A duplicate delivery of the same turn waits here and then runs
	// against the already-advanced step instead of double-advancing it.
	sess.Lock()
	defer sess.Unlock()

	if !existed {
		h.monitor.Register(r.Context(), sess)
	}

	turn := dialogue.Advance(sess.Step, speech, speechSeen, sess.Greeted)
	callerText := speech
	stepSpoken := sess.Step
	sess.Apply(turn)

	logger.Base().Info("voice turn",
		zap.String("turn_id", turnID),
		zap.String("call_sid", callSID),
		zap.String("step", stepSpoken.String()),
		zap.Int("outcome", int(turn.Outcome)),
		zap.Bool("terminal", turn.Terminal),
	)

	switch turn.Outcome {
	case dialogue.OutcomeGreet:
		doc, err := telephony.GatherPrompt(prompts.Greeting, prompts.Reprompt, VoicePath)
		h.writeTwiML(w, doc, err)

	case dialogue.OutcomeAbandon:
		// Tear down exactly as the successful terminal path does, so
		// abandoned calls do not leak sessions.
		doc, err := telephony.SayHangup(prompts.Apology)
		h.teardown(r.Context(), callSID)
		h.writeTwiML(w, doc, err)

	case dialogue.OutcomeAdvance:
		utterance := h.replies.Reply(r.Context(), reply.Request{
			CallerText:   callerText,
			KnownSummary: sess.Summary(),
			Step:         stepSpoken,
			Instruction:  turn.Instruction,
		})
		h.monitor.Register(r.Context(), sess)
		doc, err := telephony.GatherPrompt(utterance, prompts.Reprompt, VoicePath)
		h.writeTwiML(w, doc, err)

	case dialogue.OutcomeFinish:
		utterance := h.replies.Reply(r.Context(), reply.Request{
			CallerText:   callerText,
			KnownSummary: sess.Summary(),
			Step:         stepSpoken,
			Instruction:  turn.Instruction,
		})

		// The response to render is fixed before the handoff and the
		// teardown, so neither can change what the caller hears.
		doc, err := telephony.SayPauseHangup(utterance, prompts.Closing)

		h.handoff(r.Context(), turnID, from, sess)
		h.teardown(r.Context(), callSID)
		h.writeTwiML(w, doc, err)
	}
}

// handoff dispatches the booking SMS. Failure is logged and swallowed: the
// caller has already been told the link is coming, and the voice response
// for this turn is long since decided.
func (h *VoiceHandler) handoff(ctx context.Context, turnID, from string, sess *session.Session) {
	smsCtx, cancel := context.WithTimeout(ctx, h.smsTimeout)
	defer cancel()

	if err := h.notifier.SendBookingLink(smsCtx, from, sess.Name, sess.Service); err != nil {
		logger.Base().Error("booking handoff failed",
			zap.String("turn_id", turnID),
			zap.String("call_sid", sess.CallSID),
			zap.Error(err))
		return
	}
	logger.Base().Info("booking link sent",
		zap.String("turn_id", turnID),
		zap.String("call_sid", sess.CallSID))
}

// teardown removes the session; the registry entry goes with it.
func (h *VoiceHandler) teardown(ctx context.Context, callSID string) {
	h.store.Remove(callSID)
	h.monitor.Unregister(ctx, callSID)
}

// writeTwiML writes the control response. Twilio reads the body as TwiML
// regardless; rendering errors fall back to a bare hangup document.
func (h *VoiceHandler) writeTwiML(w http.ResponseWriter, doc string, errs ...error) {
	for _, err := range errs {
		if err != nil {
			logger.Base().Error("twiml rendering failed", zap.Error(err))
			doc = telephony.Fallback
		}
	}
	if doc == "" {
		doc = telephony.Fallback
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}
