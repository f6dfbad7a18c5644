package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MerkleLedger is the tamper-evident variant: alongside the same hash-chain
// guarantees as InMemoryLedger, it maintains a binary Merkle tree over
// "{id}:{hash}" leaves so that any single entry's membership can be proven
// without replaying the whole ledger.
type MerkleLedger struct {
	mu      sync.RWMutex
	entries []*Entry
	leaves  [][]byte
	layers  [][][]byte

	indexByID      map[uuid.UUID]int
	indexBySubject map[uuid.UUID][]int
}

func NewMerkleLedger() *MerkleLedger {
	return &MerkleLedger{
		entries:        make([]*Entry, 0),
		leaves:         make([][]byte, 0),
		indexByID:      make(map[uuid.UUID]int),
		indexBySubject: make(map[uuid.UUID][]int),
	}
}

func leafHash(e *Entry) []byte {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%s", e.ID, e.Hash)))
	return sum[:]
}

func pairHash(a, b []byte) []byte {
	sum := sha256.Sum256(append(append([]byte{}, a...), b...))
	return sum[:]
}

// rebuildTree recomputes every layer of the tree bottom-up. Called with the
// write lock already held.
func (l *MerkleLedger) rebuildTree() {
	if len(l.leaves) == 0 {
		l.layers = nil
		return
	}
	layer := make([][]byte, len(l.leaves))
	copy(layer, l.leaves)
	layers := [][][]byte{layer}

	for len(layer) > 1 {
		next := make([][]byte, 0, (len(layer)+1)/2)
		for i := 0; i < len(layer); i += 2 {
			if i+1 < len(layer) {
				next = append(next, pairHash(layer[i], layer[i+1]))
			} else {
				// Odd node out is promoted unchanged to the next layer.
				next = append(next, layer[i])
			}
		}
		layers = append(layers, next)
		layer = next
	}
	l.layers = layers
}

// LeafHash computes the Merkle leaf hash for an entry, for callers that want
// to independently verify an inclusion proof returned by Proof.
func LeafHash(e *Entry) []byte {
	return leafHash(e)
}

// RootHex returns the current Merkle root as lowercase hex, or "" if empty.
func (l *MerkleLedger) RootHex() string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.layers) == 0 {
		return ""
	}
	top := l.layers[len(l.layers)-1]
	return hex.EncodeToString(top[0])
}

// ProofStep is one sibling hash encountered walking from a leaf to the root.
type ProofStep struct {
	Hash     []byte
	OnRight  bool
}

// Proof returns the inclusion proof for the entry at the given index.
func (l *MerkleLedger) Proof(index int) ([]ProofStep, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if index < 0 || index >= len(l.leaves) {
		return nil, false
	}
	steps := make([]ProofStep, 0)
	idx := index
	for layer := 0; layer < len(l.layers)-1; layer++ {
		cur := l.layers[layer]
		if idx%2 == 0 {
			if idx+1 < len(cur) {
				steps = append(steps, ProofStep{Hash: cur[idx+1], OnRight: true})
			}
		} else {
			steps = append(steps, ProofStep{Hash: cur[idx-1], OnRight: false})
		}
		idx /= 2
	}
	return steps, true
}

// VerifyProof recomputes the root from a leaf and its proof and compares it
// against the current root.
func (l *MerkleLedger) VerifyProof(leaf []byte, steps []ProofStep) bool {
	cur := leaf
	for _, s := range steps {
		if s.OnRight {
			cur = pairHash(cur, s.Hash)
		} else {
			cur = pairHash(s.Hash, cur)
		}
	}
	return hex.EncodeToString(cur) == l.RootHex()
}

func (l *MerkleLedger) Append(entry *Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := len(l.entries)
	l.entries = append(l.entries, entry)
	l.leaves = append(l.leaves, leafHash(entry))
	l.indexByID[entry.ID] = idx
	l.indexBySubject[entry.SubjectID] = append(l.indexBySubject[entry.SubjectID], idx)
	l.rebuildTree()
	return nil
}

func (l *MerkleLedger) Get(id uuid.UUID) (*Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	idx, ok := l.indexByID[id]
	if !ok {
		return nil, false
	}
	return l.entries[idx], true
}

func (l *MerkleLedger) LatestHash() *string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.entries) == 0 {
		return nil
	}
	h := l.entries[len(l.entries)-1].Hash
	return &h
}

func (l *MerkleLedger) QueryBySubject(subjectID uuid.UUID) []*Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	indices := l.indexBySubject[subjectID]
	out := make([]*Entry, 0, len(indices))
	for _, idx := range indices {
		out = append(out, l.entries[idx])
	}
	return out
}

func (l *MerkleLedger) QueryByKind(kind EntryKind) []*Entry {
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

func (l *MerkleLedger) AllEntries() []*Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// VerifyIntegrity checks both the hash chain and, for every entry, that its
// Merkle proof reconstructs the current root.
func (l *MerkleLedger) VerifyIntegrity() bool {
	l.mu.RLock()
	if len(l.entries) == 0 {
		l.mu.RUnlock()
		return true
	}
	if l.entries[0].PreviousHash != nil {
		l.mu.RUnlock()
		return false
	}
	for i := 1; i < len(l.entries); i++ {
		prev := l.entries[i].PreviousHash
		if prev == nil || *prev != l.entries[i-1].Hash {
			l.mu.RUnlock()
			return false
		}
	}
	n := len(l.entries)
	l.mu.RUnlock()

	for i := 0; i < n; i++ {
		l.mu.RLock()
		leaf := leafHash(l.entries[i])
		l.mu.RUnlock()
		steps, ok := l.Proof(i)
		if !ok || !l.VerifyProof(leaf, steps) {
			return false
		}
	}
	return true
}
