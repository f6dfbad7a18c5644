package ledger

import (
	"sync"

	"github.com/google/uuid"
)

// Ledger is the append-only audit trail contract. Implementations must
// guarantee that Append is atomic with respect to LatestHash: no caller may
// observe a hash that does not correspond to an already-appended entry.
type Ledger interface {
	Append(entry *Entry) error
	Get(id uuid.UUID) (*Entry, bool)
	LatestHash() *string
	QueryBySubject(subjectID uuid.UUID) []*Entry
	QueryByKind(kind EntryKind) []*Entry
	AllEntries() []*Entry
	VerifyIntegrity() bool
}

// InMemoryLedger is the default, non-persistent ledger. It keeps the
// append-ordered entry slice plus two indices for O(1) subject/id lookups,
// all behind a single RWMutex since the index maps and entry slice must
// stay consistent with one another.
type InMemoryLedger struct {
	mu            sync.RWMutex
	entries       []*Entry
	indexByID     map[uuid.UUID]int
	indexBySubject map[uuid.UUID][]int
}

func NewInMemoryLedger() *InMemoryLedger {
	return &InMemoryLedger{
		entries:        make([]*Entry, 0),
		indexByID:      make(map[uuid.UUID]int),
		indexBySubject: make(map[uuid.UUID][]int),
	}
}

func (l *InMemoryLedger) Append(entry *Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := len(l.entries)
	l.entries = append(l.entries, entry)
	l.indexByID[entry.ID] = idx
	l.indexBySubject[entry.SubjectID] = append(l.indexBySubject[entry.SubjectID], idx)
	return nil
}

func (l *InMemoryLedger) Get(id uuid.UUID) (*Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	idx, ok := l.indexByID[id]
	if !ok {
		return nil, false
	}
	return l.entries[idx], true
}

func (l *InMemoryLedger) LatestHash() *string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.entries) == 0 {
		return nil
	}
	h := l.entries[len(l.entries)-1].Hash
	return &h
}

func (l *InMemoryLedger) QueryBySubject(subjectID uuid.UUID) []*Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	indices := l.indexBySubject[subjectID]
	out := make([]*Entry, 0, len(indices))
	for _, idx := range indices {
		out = append(out, l.entries[idx])
	}
	return out
}

func (l *InMemoryLedger) QueryByKind(kind EntryKind) []*Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*Entry, 0)
	for _, e := range l.entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func (l *InMemoryLedger) AllEntries() []*Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// VerifyIntegrity walks the chain checking that entry 0 carries no
// previous hash and that every subsequent entry's previous hash matches
// its predecessor's hash exactly.
func (l *InMemoryLedger) VerifyIntegrity() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.entries) == 0 {
		return true
	}
	if l.entries[0].PreviousHash != nil {
		return false
	}
	for i := 1; i < len(l.entries); i++ {
		prev := l.entries[i].PreviousHash
		if prev == nil || *prev != l.entries[i-1].Hash {
			return false
		}
	}
	return true
}
