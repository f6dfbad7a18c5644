// Package ledger implements the append-only, hash-chained audit trail that
// every consequential action in the control plane is recorded against.
package ledger

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EntryKind enumerates the kinds of consequential actions the ledger records.
type EntryKind int

const (
	TaskCreated EntryKind = iota
	TaskStateChanged
	AgentRegistered
	DelegationRequested
	BidSubmitted
	ContractCreated
	ContractSigned
	CheckpointRecorded
	VerificationResult
	DisputeOpened
	DisputeResolved
	ReputationUpdated
	PermissionGranted
	PermissionRevoked
	SecurityAlert
	PaymentProcessed
)

func (k EntryKind) String() string {
	switch k {
	case TaskCreated:
		return "TaskCreated"
	case TaskStateChanged:
		return "TaskStateChanged"
	case AgentRegistered:
		return "AgentRegistered"
	case DelegationRequested:
		return "DelegationRequested"
	case BidSubmitted:
		return "BidSubmitted"
	case ContractCreated:
		return "ContractCreated"
	case ContractSigned:
		return "ContractSigned"
	case CheckpointRecorded:
		return "CheckpointRecorded"
	case VerificationResult:
		return "VerificationResult"
	case DisputeOpened:
		return "DisputeOpened"
	case DisputeResolved:
		return "DisputeResolved"
	case ReputationUpdated:
		return "ReputationUpdated"
	case PermissionGranted:
		return "PermissionGranted"
	case PermissionRevoked:
		return "PermissionRevoked"
	case SecurityAlert:
		return "SecurityAlert"
	case PaymentProcessed:
		return "PaymentProcessed"
	default:
		return "Unknown"
	}
}

// Entry is a single immutable record in the ledger. Hash covers every
// other field, including PreviousHash.
type Entry struct {
	ID           uuid.UUID   `json:"id"`
	Kind         EntryKind   `json:"kind"`
	Timestamp    time.Time   `json:"timestamp"`
	ActorID      uuid.UUID   `json:"actor_id"`
	SubjectID    uuid.UUID   `json:"subject_id"`
	Payload      interface{} `json:"payload"`
	PreviousHash *string     `json:"previous_hash,omitempty"`
	Hash         string      `json:"hash"`
}

// NewEntry constructs and hashes a new ledger entry. previousHash should be
// the value most recently observed from Ledger.LatestHash.
func NewEntry(kind EntryKind, actorID, subjectID uuid.UUID, payload interface{}, previousHash *string) *Entry {
	id := uuid.New()
	ts := time.Now().UTC()

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		payloadJSON = []byte("null")
	}

	prev := "genesis"
	if previousHash != nil {
		prev = *previousHash
	}

	hashInput := fmt.Sprintf("%s:%d:%s:%s:%s:%s:%s",
		id, ts.UnixNano(), kind, actorID, subjectID, payloadJSON, prev)

	return &Entry{
		ID:           id,
		Kind:         kind,
		Timestamp:    ts,
		ActorID:      actorID,
		SubjectID:    subjectID,
		Payload:      payload,
		PreviousHash: previousHash,
		Hash:         fnv128([]byte(hashInput)),
	}
}
