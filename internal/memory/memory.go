// Package memory holds the session-scoped conversation state: message
// history, accumulated slots, and named context flags. Every mutation is
// flushed synchronously to the backing store (write-through, no batching),
// so a crash between turns never loses an acknowledged message.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"finmitra-backend/internal/extract"
	"finmitra-backend/internal/models"
)

// Memory is the single-writer view of one conversation session. The core
// assumes one turn is fully processed before the next is accepted; callers
// deploying multiple processes must serialize access per session externally.
type Memory struct {
	store     Store
	sessionID string
	sess      *models.ConversationSession
}

func New(store Store, sessionID string) *Memory {
	return &Memory{store: store, sessionID: sessionID}
}

// Load fetches the persisted session, allocating a fresh one lazily when the
// key has never been written.
func (m *Memory) Load(ctx context.Context) error {
	blob, err := m.store.Get(ctx, m.sessionID)
	if errors.Is(err, ErrNotFound) {
		m.sess = models.NewConversationSession(m.sessionID)
		return nil
	}
	if err != nil {
		return err
	}
	sess := &models.ConversationSession{}
	if err := json.Unmarshal(blob, sess); err != nil {
		return fmt.Errorf("decode session %s: %w", m.sessionID, err)
	}
	if sess.Slots == nil {
		sess.Slots = models.SlotSet{}
	}
	if sess.Context == nil {
		sess.Context = map[string]string{}
	}
	m.sess = sess
	return nil
}

func (m *Memory) SessionID() string { return m.sessionID }

func (m *Memory) flush(ctx context.Context) error {
	m.sess.UpdatedAt = time.Now().UTC()
	blob, err := json.Marshal(m.sess)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", m.sessionID, err)
	}
	return m.store.Put(ctx, m.sessionID, blob)
}

// AddMessage appends an immutable message and flushes.
func (m *Memory) AddMessage(ctx context.Context, role, content string) error {
	m.sess.Messages = append(m.sess.Messages, models.Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	})
	return m.flush(ctx)
}

// UpdateSlots merges validated values into the slot set. A stored value is
// only ever replaced by a value that itself passes validation; anything
// invalid is silently skipped rather than weakening the record.
func (m *Memory) UpdateSlots(ctx context.Context, values models.SlotSet) error {
	changed := false
	for id, v := range values {
		if extract.Validate(id, v) != nil {
			continue
		}
		m.sess.Slots[id] = v
		changed = true
	}
	if !changed {
		return nil
	}
	return m.flush(ctx)
}

func (m *Memory) Slots() models.SlotSet { return m.sess.Slots }

func (m *Memory) Messages() []models.Message { return m.sess.Messages }

// SetContext stores a named string flag and flushes.
func (m *Memory) SetContext(ctx context.Context, key, val string) error {
	if val == "" {
		delete(m.sess.Context, key)
	} else {
		m.sess.Context[key] = val
	}
	return m.flush(ctx)
}

func (m *Memory) Context(key string) string { return m.sess.Context[key] }

func (m *Memory) ContextBool(key string) bool { return m.sess.Context[key] == "true" }

// History returns up to maxPairs*2 recent messages in wire form, for the
// remote model's context window.
func (m *Memory) History(maxPairs int) []models.ChatMessage {
	msgs := m.sess.Messages
	if limit := maxPairs * 2; len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]models.ChatMessage, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, models.ChatMessage{Role: msg.Role, Content: msg.Content})
	}
	return out
}

// Reset clears messages, slots, and context atomically: the stored blob is
// deleted and a fresh session allocated in one step.
func (m *Memory) Reset(ctx context.Context) error {
	if err := m.store.Delete(ctx, m.sessionID); err != nil {
		return err
	}
	m.sess = models.NewConversationSession(m.sessionID)
	return nil
}
