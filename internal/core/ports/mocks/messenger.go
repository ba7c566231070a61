package mocks

import (
	"context"
	"sync"

	"github.com/lueurxax/content-gate-bot/internal/core/domain"
	"github.com/lueurxax/content-gate-bot/internal/core/ports"
)

// Forwarded records one Forward call.
type Forwarded struct {
	ChatID    int64
	Source    string
	MessageID int
}

// Edited records one EditText call.
type Edited struct {
	ChatID    int64
	MessageID int
	Text      string
	Inline    [][]ports.Button
}

// Messenger is a thread-safe recording implementation of ports.Messenger.
type Messenger struct {
	mu        sync.Mutex
	sent      []ports.Message
	forwarded []Forwarded
	edited    []Edited
	deleted   []int
	answered  []string
	nextID    int

	// SendFn allows overriding Send behavior. Returning an error records nothing.
	SendFn func(ctx context.Context, msg ports.Message) (int, error)

	// ForwardFn allows overriding Forward behavior. Returning an error records nothing.
	ForwardFn func(ctx context.Context, chatID int64, source string, messageID int) error

	// EditTextFn allows overriding EditText behavior.
	EditTextFn func(ctx context.Context, chatID int64, messageID int, text string, inline [][]ports.Button) error
}

// NewMessenger creates a new recording messenger.
func NewMessenger() *Messenger {
	return &Messenger{}
}

// Send records the message.
func (m *Messenger) Send(ctx context.Context, msg ports.Message) (int, error) {
	if m.SendFn != nil {
		if _, err := m.SendFn(ctx, msg); err != nil {
			return 0, err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.sent = append(m.sent, msg)

	return m.nextID, nil
}

// EditText records the edit.
func (m *Messenger) EditText(ctx context.Context, chatID int64, messageID int, text string, inline [][]ports.Button) error {
	if m.EditTextFn != nil {
		if err := m.EditTextFn(ctx, chatID, messageID, text, inline); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.edited = append(m.edited, Edited{ChatID: chatID, MessageID: messageID, Text: text, Inline: inline})

	return nil
}

// Delete records the deleted message id.
func (m *Messenger) Delete(_ context.Context, _ int64, messageID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deleted = append(m.deleted, messageID)

	return nil
}

// AnswerCallback records the callback id.
func (m *Messenger) AnswerCallback(_ context.Context, callbackID, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.answered = append(m.answered, callbackID)

	return nil
}

// Forward records the forward.
func (m *Messenger) Forward(ctx context.Context, chatID int64, source string, messageID int) error {
	if m.ForwardFn != nil {
		if err := m.ForwardFn(ctx, chatID, source, messageID); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.forwarded = append(m.forwarded, Forwarded{ChatID: chatID, Source: source, MessageID: messageID})

	return nil
}

// Sent returns a copy of all successfully sent messages.
func (m *Messenger) Sent() []ports.Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]ports.Message(nil), m.sent...)
}

// Last returns the most recent sent message, or the zero value.
func (m *Messenger) Last() ports.Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sent) == 0 {
		return ports.Message{}
	}

	return m.sent[len(m.sent)-1]
}

// Forwarded returns a copy of all successful forwards.
func (m *Messenger) Forwarded() []Forwarded {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]Forwarded(nil), m.forwarded...)
}

// Edited returns a copy of all edits.
func (m *Messenger) Edited() []Edited {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]Edited(nil), m.edited...)
}

// Deleted returns the ids of deleted messages.
func (m *Messenger) Deleted() []int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]int(nil), m.deleted...)
}

// Reset drops everything recorded so far.
func (m *Messenger) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = nil
	m.forwarded = nil
	m.edited = nil
	m.deleted = nil
	m.answered = nil
}

// Membership is a configurable implementation of ports.MembershipChecker.
type Membership struct {
	mu       sync.RWMutex
	statuses map[int64]map[int64]domain.MemberStatus
	errs     map[int64]error
	titles   map[int64]string
}

// NewMembership creates a checker where every user has left every channel.
func NewMembership() *Membership {
	return &Membership{
		statuses: make(map[int64]map[int64]domain.MemberStatus),
		errs:     make(map[int64]error),
		titles:   make(map[int64]string),
	}
}

// SetStatus sets the user's status in a channel.
func (m *Membership) SetStatus(channelID, userID int64, status domain.MemberStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.statuses[channelID] == nil {
		m.statuses[channelID] = make(map[int64]domain.MemberStatus)
	}

	m.statuses[channelID][userID] = status
}

// FailChannel makes every query against the channel return err.
func (m *Membership) FailChannel(channelID int64, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.errs[channelID] = err
}

// SetTitle sets a channel display name.
func (m *Membership) SetTitle(channelID int64, title string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.titles[channelID] = title
}

// MemberStatus returns the configured status, defaulting to left.
func (m *Membership) MemberStatus(_ context.Context, channelID, userID int64) (domain.MemberStatus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.errs[channelID]; err != nil {
		return "", err
	}

	if st, ok := m.statuses[channelID][userID]; ok {
		return st, nil
	}

	return domain.MemberLeft, nil
}

// ChatTitle returns the configured title or ErrInjected.
func (m *Membership) ChatTitle(_ context.Context, channelID int64) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if title, ok := m.titles[channelID]; ok {
		return title, nil
	}

	return "", ErrInjected
}
