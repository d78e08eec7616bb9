// Package recents persists a capped, most-recent-first list of search
// queries. The list lives in a JSON file guarded by a cross-process file
// lock, so concurrent CLI invocations never corrupt it.
package recents

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// DefaultMaxEntries caps the list when no explicit limit is configured.
const DefaultMaxEntries = 50

// Entry is one remembered search.
type Entry struct {
	Query string    `json:"query"`
	At    time.Time `json:"at"`
}

// List manages the recents file.
type List struct {
	path       string
	maxEntries int
	lock       *flock.Flock
}

// New creates a recents list stored at path. maxEntries <= 0 uses the
// default cap.
func New(path string, maxEntries int) *List {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &List{
		path:       path,
		maxEntries: maxEntries,
		lock:       flock.New(path + ".lock"),
	}
}

// Path returns the backing file path.
func (l *List) Path() string {
	return l.path
}

// Record moves query to the front of the list, deduplicating any earlier
// occurrence, and trims the list to the cap. Blank queries are ignored.
func (l *List) Record(query string) error {
	if query == "" {
		return nil
	}

	unlock, err := l.acquire()
	if err != nil {
		return err
	}
	defer unlock()

	entries, err := l.read()
	if err != nil {
		return err
	}

	updated := make([]Entry, 0, len(entries)+1)
	updated = append(updated, Entry{Query: query, At: time.Now().UTC()})
	for _, e := range entries {
		if e.Query == query {
			continue
		}
		updated = append(updated, e)
	}
	if len(updated) > l.maxEntries {
		updated = updated[:l.maxEntries]
	}

	return l.write(updated)
}

// Entries returns the remembered searches, most recent first.
func (l *List) Entries() ([]Entry, error) {
	unlock, err := l.acquire()
	if err != nil {
		return nil, err
	}
	defer unlock()

	return l.read()
}

// Clear removes every remembered search.
func (l *List) Clear() error {
	unlock, err := l.acquire()
	if err != nil {
		return err
	}
	defer unlock()

	err = os.Remove(l.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear recents: %w", err)
	}
	return nil
}

// acquire takes the exclusive cross-process lock and returns its release
// function.
func (l *List) acquire() (func(), error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return nil, fmt.Errorf("create recents directory: %w", err)
	}
	if err := l.lock.Lock(); err != nil {
		return nil, fmt.Errorf("lock recents file: %w", err)
	}
	return func() { _ = l.lock.Unlock() }, nil
}

// read loads the list; a missing file is an empty list.
func (l *List) read() ([]Entry, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read recents file: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		// A corrupt file is recoverable: start over rather than wedging
		// every future search.
		return nil, nil
	}
	return entries, nil
}

// write replaces the file atomically via a temp-file rename.
func (l *List) write(entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode recents: %w", err)
	}

	tmp := l.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write recents file: %w", err)
	}
	if err := os.Rename(tmp, l.path); err != nil {
		return fmt.Errorf("replace recents file: %w", err)
	}
	return nil
}
