// Package store keeps current presentation settings and a bounded undo log.
// Every mutation appends a snapshot after the cursor; undo and redo move the cursor.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/umputun/overlay/pkg/domain"
)

// DefaultHistorySize is the max number of snapshots kept in the log
const DefaultHistorySize = 10

// ParseError is returned when a persisted record can't be decoded
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse settings record: %s: %v", e.Reason, e.Err)
	}
	return "parse settings record: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsParseError checks if err is or wraps a ParseError
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// SettingsStore owns current settings and the snapshot log.
// Methods are safe for concurrent use.
type SettingsStore struct {
	mu          sync.Mutex
	log         []domain.Settings
	cursor      int
	historySize int
	now         func() time.Time
}

// Option configures SettingsStore
type Option func(*SettingsStore)

// WithHistorySize sets the max log size, values below 1 are ignored
func WithHistorySize(n int) Option {
	return func(s *SettingsStore) {
		if n > 0 {
			s.historySize = n
		}
	}
}

// WithClock sets the time source used for record timestamps
func WithClock(now func() time.Time) Option {
	return func(s *SettingsStore) { s.now = now }
}

// WithInitial sets initial settings instead of defaults
func WithInitial(settings domain.Settings) Option {
	return func(s *SettingsStore) { s.log = []domain.Settings{settings.Normalize()} }
}

// New makes a store with the initial snapshot already recorded
func New(opts ...Option) *SettingsStore {
	s := &SettingsStore{
		log:         []domain.Settings{domain.Defaults()},
		historySize: DefaultHistorySize,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current returns a copy of current settings
func (s *SettingsStore) Current() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log[s.cursor]
}

// Update merges patch into current settings and records the result
func (s *SettingsStore) Update(p domain.Patch) domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record(p.Apply(s.log[s.cursor]))
}

// ApplyAll returns the render view of current settings
func (s *SettingsStore) ApplyAll() domain.View {
	return domain.Render(s.Current())
}

// Reset records canonical defaults as the new current settings
func (s *SettingsStore) Reset() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record(domain.Defaults())
}

// Undo restores the previous snapshot. Returns false if there is nothing to undo.
func (s *SettingsStore) Undo() (domain.Settings, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor == 0 {
		return domain.Settings{}, false
	}
	s.cursor--
	return s.log[s.cursor], true
}

// Redo moves forward to the snapshot undone last. Returns false if there is nothing to redo.
func (s *SettingsStore) Redo() (domain.Settings, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor >= len(s.log)-1 {
		return domain.Settings{}, false
	}
	s.cursor++
	return s.log[s.cursor], true
}

// CanUndo reports whether Undo would change current settings
func (s *SettingsStore) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor > 0
}

// CanRedo reports whether Redo would change current settings
func (s *SettingsStore) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor < len(s.log)-1
}

// State is a consistent view of the store taken under a single lock
type State struct {
	Settings domain.Settings
	View     domain.View
	CanUndo  bool
	CanRedo  bool
}

// Snapshot returns current settings, their render view and undo/redo availability at once
func (s *SettingsStore) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.log[s.cursor]
	return State{
		Settings: cur,
		View:     domain.Render(cur),
		CanUndo:  s.cursor > 0,
		CanRedo:  s.cursor < len(s.log)-1,
	}
}

// Len returns number of snapshots in the log, including undone ones
func (s *SettingsStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.log)
}

// History returns a copy of the log and the cursor position
func (s *SettingsStore) History() (snapshots []domain.Settings, cursor int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]domain.Settings, len(s.log))
	copy(res, s.log)
	return res, s.cursor
}

// Serialize makes a persistence record of current settings
func (s *SettingsStore) Serialize() domain.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Record{Settings: s.log[s.cursor], Timestamp: s.now().UTC()}
}

// Marshal encodes Serialize result as JSON
func (s *SettingsStore) Marshal() ([]byte, error) {
	data, err := json.Marshal(s.Serialize())
	if err != nil {
		return nil, fmt.Errorf("marshal settings record: %w", err)
	}
	return data, nil
}

// Deserialize parses a persisted record and records its settings as current.
// On failure current settings stay unchanged and *ParseError is returned.
func (s *SettingsStore) Deserialize(data []byte) (domain.Settings, error) {
	rec, err := ParseRecord(data)
	if err != nil {
		log.Printf("[WARN] failed to load saved configuration: %v", err)
		return domain.Settings{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record(rec.Settings), nil
}

// ContentFor returns preview content for the writing style
func (s *SettingsStore) ContentFor(style string) domain.Content {
	return domain.ContentFor(style)
}

// record appends settings after the cursor, dropping the redo tail and the oldest entries
// beyond history size. Must be called under lock.
func (s *SettingsStore) record(settings domain.Settings) domain.Settings {
	s.log = append(s.log[:s.cursor+1], settings)
	if over := len(s.log) - s.historySize; over > 0 {
		s.log = append([]domain.Settings(nil), s.log[over:]...)
	}
	s.cursor = len(s.log) - 1
	return settings
}

// ParseRecord decodes a persistence record. Settings missing from the record are filled
// with defaults and the result is normalized.
func ParseRecord(data []byte) (domain.Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return domain.Record{}, &ParseError{Reason: "empty record"}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.Record{}, &ParseError{Reason: "malformed json", Err: err}
	}
	rawSettings, ok := raw["settings"]
	if !ok || bytes.Equal(bytes.TrimSpace(rawSettings), []byte("null")) {
		return domain.Record{}, &ParseError{Reason: "missing settings"}
	}

	rec := domain.Record{Settings: domain.Defaults()}
	if err := json.Unmarshal(rawSettings, &rec.Settings); err != nil {
		return domain.Record{}, &ParseError{Reason: "invalid settings", Err: err}
	}
	// timestamp is informational, records without it are accepted
	if ts, ok := raw["timestamp"]; ok {
		if err := json.Unmarshal(ts, &rec.Timestamp); err != nil {
			return domain.Record{}, &ParseError{Reason: "invalid timestamp", Err: err}
		}
	}
	rec.Settings = rec.Settings.Normalize()
	return rec, nil
}
