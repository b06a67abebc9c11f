package session

import (
	"sync"
	"time"

	"github.com/groomingco/edge-voice-service/internal/dialogue"
)

// Session is the per-call conversation state. It lives exactly as long as
// the call: created on the first webhook for a CallSid, removed when the
// terminal turn (successful or abandoned) completes.
type Session struct {
	CallSID        string
	Step           dialogue.Step
	Service        string
	Name           string
	TimePreference string

	// Greeted records that the opening prompt was already issued, so a
	// later turn without speech is caller silence rather than first contact.
	Greeted bool

	CreatedAt time.Time

	mu sync.Mutex
}

// Lock acquires the session for one webhook turn. Twilio may deliver the
// same turn twice; the lock serializes the read-modify-write so only one
// delivery advances the step.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session after the turn's state is final.
func (s *Session) Unlock() { s.mu.Unlock() }

// Apply commits one turn's decision to the session. Exactly one slot is
// filled per usable turn, so the number of filled slots always equals the
// step. The caller must hold the session lock.
func (s *Session) Apply(t dialogue.Turn) {
	switch t.Slot {
	case dialogue.SlotService:
		s.Service = t.Value
	case dialogue.SlotName:
		s.Name = t.Value
	case dialogue.SlotTime:
		s.TimePreference = t.Value
	}
	s.Step = t.Next
	if t.Outcome == dialogue.OutcomeGreet {
		s.Greeted = true
	}
}

// Summary renders the known slots for inclusion in the generation prompt.
func (s *Session) Summary() string {
	return "Known: service=" + orNone(s.Service) +
		", name=" + orNone(s.Name) +
		", time_pref=" + orNone(s.TimePreference) + "."
}

func orNone(v string) string {
	if v == "" {
		return "None"
	}
	return v
}

// Store tracks active call sessions by CallSid.
type Store interface {
	// GetOrCreate returns the session for the call, creating a
	// default-initialized one on first use. The second result reports
	// whether this call was seen before.
	GetOrCreate(callSID string) (*Session, bool)

	// Remove tears down the session. No-op if the call is unknown.
	Remove(callSID string)

	// Len reports the number of active sessions.
	Len() int
}

// MemoryStore is the in-process Store. Call state does not need to outlive
// the process: the call itself does not survive a restart either.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

func (st *MemoryStore) GetOrCreate(callSID string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if s, ok := st.sessions[callSID]; ok {
		return s, true
	}
	s := &Session{
		CallSID:   callSID,
		Step:      dialogue.StepService,
		CreatedAt: time.Now(),
	}
	st.sessions[callSID] = s
	return s, false
}

func (st *MemoryStore) Remove(callSID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, callSID)
}

func (st *MemoryStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
