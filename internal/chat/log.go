// Package chat holds the conversation transcript: an append-only sequence of
// entries written by the session dispatcher and the poll reconciler, read by
// the UI.
package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Role identifies who authored an entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Entry is one transcript line. Entries are immutable once appended.
type Entry struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Log is an append-only conversation log. Appends may come from any
// goroutine; entries keep the order in which appends were processed.
type Log struct {
	mu       sync.Mutex
	entries  []Entry
	onAppend func(Entry)
}

// NewLog creates an empty log. onAppend, if non-nil, is invoked after each
// append with the new entry; it runs on the appender's goroutine.
func NewLog(onAppend func(Entry)) *Log {
	return &Log{onAppend: onAppend}
}

// Append adds an entry and returns it with its assigned id and timestamp.
func (l *Log) Append(role Role, text string) Entry {
	e := Entry{
		ID:        uuid.New().String(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now(),
	}

	l.mu.Lock()
	l.entries = append(l.entries, e)
	notify := l.onAppend
	l.mu.Unlock()

	if notify != nil {
		notify(e)
	}
	return e
}

// Entries returns a copy of the transcript in append order.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
