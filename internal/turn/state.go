// Package turn holds the per-turn conversation state and the pipeline that
// fills it.
//
// State is the sole channel between pipeline stages within one turn. It is
// an explicit struct passed by pointer into each stage, never an ambient
// global; one State belongs to exactly one turn of one conversation and is
// discarded when the turn ends. The only datum that outlives a turn is the
// last resolved expertise level, carried on Conversation.
package turn

import (
	"strings"

	"github.com/google/uuid"

	"github.com/arlerug/wesafe-assistant/internal/expertise"
	"github.com/arlerug/wesafe-assistant/internal/intent"
	"github.com/arlerug/wesafe-assistant/internal/recall"
)

// BootstrapMessage is the reserved control message that opens a session.
// It triggers the greeting-only prompt override and suppresses both
// classification and recall.
const BootstrapMessage = "/start"

// State is the mutable bag for one turn. Stages write disjoint fields:
// the classifier writes Intent, the estimator writes Level/Judgement/
// Instructions, recall writes Passages/Context. The composer only reads.
type State struct {
	ConversationID uuid.UUID
	Query          string
	Bootstrap      bool

	Intent intent.Intent

	Level        expertise.Level
	Judgement    expertise.Judgement
	Instructions []string

	Passages []recall.Passage
	Context  string
}

// Conversation identifies one dialogue and carries the little state that
// survives turn boundaries.
type Conversation struct {
	ID uuid.UUID

	// LastLevel is the most recently resolved expertise level, used to seed
	// the next turn before its own estimate lands.
	LastLevel expertise.Level
}

// NewConversation starts a conversation with an uncertain expertise level.
func NewConversation() *Conversation {
	return &Conversation{
		ID:        uuid.New(),
		LastLevel: expertise.LevelUncertain,
	}
}

// NewTurn creates the state for one inbound message. The bootstrap marker is
// recognized here, once, so every downstream stage can rely on the flag.
func (c *Conversation) NewTurn(message string) *State {
	trimmed := strings.TrimSpace(message)
	return &State{
		ConversationID: c.ID,
		Query:          trimmed,
		Bootstrap:      trimmed == BootstrapMessage,
		Intent:         intent.Informational,
		Level:          c.LastLevel,
	}
}

// Finish folds the turn's outcome back into the conversation and releases
// the state. Partial writes from a cancelled turn are simply dropped with it.
func (c *Conversation) Finish(st *State) {
	if st == nil {
		return
	}
	if st.Level != "" {
		c.LastLevel = st.Level
	}
}
