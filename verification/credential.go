package verification

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/ed25519"

	"github.com/kaito2/panopticon/types"
)

// VerifiableCredential is a credential issued by one agent about another,
// signed by the issuer and verifiable by any holder of the issuer's public
// key.
type VerifiableCredential struct {
	IssuerID  uuid.UUID
	SubjectID uuid.UUID
	Claims    map[string]string
	IssuedAt  time.Time
	ExpiresAt *time.Time
	Signature []byte
}

// signingPayload builds the canonical byte sequence signed by the issuer:
// issuer id, subject id, sorted claim key/value pairs, then the RFC3339
// issued-at (and expires-at, if present) timestamps.
func signingPayload(issuerID, subjectID uuid.UUID, claims map[string]string, issuedAt time.Time, expiresAt *time.Time) []byte {
	var payload []byte
	issuerBytes := issuerID
	subjectBytes := subjectID
	payload = append(payload, issuerBytes[:]...)
	payload = append(payload, subjectBytes[:]...)

	keys := make([]string, 0, len(claims))
	for k := range claims {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		payload = append(payload, []byte(k)...)
		payload = append(payload, []byte(claims[k])...)
	}

	payload = append(payload, []byte(issuedAt.UTC().Format(time.RFC3339Nano))...)
	if expiresAt != nil {
		payload = append(payload, []byte(expiresAt.UTC().Format(time.RFC3339Nano))...)
	}
	return payload
}

// IssueCredential signs a new credential with the issuer's private key.
func IssueCredential(issuerID, subjectID uuid.UUID, claims map[string]string, expiresAt *time.Time, signingKey ed25519.PrivateKey) VerifiableCredential {
	issuedAt := time.Now().UTC()
	payload := signingPayload(issuerID, subjectID, claims, issuedAt, expiresAt)
	signature := ed25519.Sign(signingKey, payload)

	return VerifiableCredential{
		IssuerID:  issuerID,
		SubjectID: subjectID,
		Claims:    claims,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
		Signature: signature,
	}
}

// VerifySignature checks the credential's signature against the issuer's
// public key.
func (c VerifiableCredential) VerifySignature(verifyingKey ed25519.PublicKey) error {
	payload := signingPayload(c.IssuerID, c.SubjectID, c.Claims, c.IssuedAt, c.ExpiresAt)
	if len(c.Signature) != ed25519.SignatureSize {
		return types.NewVerificationFailed("invalid signature length")
	}
	if !ed25519.Verify(verifyingKey, payload, c.Signature) {
		return types.NewVerificationFailed("signature invalid")
	}
	return nil
}

// VerifyCredentialChain verifies a delegation chain of credentials
// A->B->C: every credential's signature must verify against its
// corresponding public key, and the chain must be contiguous
// (credential[i].SubjectID == credential[i+1].IssuerID).
func VerifyCredentialChain(credentials []VerifiableCredential, publicKeys []ed25519.PublicKey) error {
	if len(credentials) != len(publicKeys) {
		return types.NewVerificationFailed("number of credentials and public keys must match")
	}
	if len(credentials) == 0 {
		return nil
	}

	for i, cred := range credentials {
		if err := cred.VerifySignature(publicKeys[i]); err != nil {
			return types.NewVerificationFailed(fmt.Sprintf("credential %d signature verification failed: %v", i, err))
		}
	}

	for i := 0; i < len(credentials)-1; i++ {
		if credentials[i].SubjectID != credentials[i+1].IssuerID {
			return types.NewVerificationFailed(fmt.Sprintf(
				"chain break at index %d: subject %s != next issuer %s",
				i, credentials[i].SubjectID, credentials[i+1].IssuerID))
		}
	}

	return nil
}
