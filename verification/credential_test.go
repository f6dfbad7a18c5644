package verification

import (
	"crypto/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ed25519"
)

func genKeypair(t *testing.T) (ed25519.PublicKey, ed25519.PrivateKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return pub, priv
}

func TestIssueAndVerifyCredential(t *testing.T) {
	pub, priv := genKeypair(t)
	issuer := uuid.New()
	subject := uuid.New()

	cred := IssueCredential(issuer, subject, map[string]string{"role": "auditor"}, nil, priv)

	assert.Equal(t, issuer, cred.IssuerID)
	assert.Equal(t, subject, cred.SubjectID)
	assert.NoError(t, cred.VerifySignature(pub))
}

func TestTamperedCredentialFails(t *testing.T) {
	pub, priv := genKeypair(t)
	issuer := uuid.New()
	subject := uuid.New()

	cred := IssueCredential(issuer, subject, map[string]string{"role": "auditor"}, nil, priv)
	cred.Claims["role"] = "admin"

	assert.Error(t, cred.VerifySignature(pub))
}

func TestWrongKeyFails(t *testing.T) {
	_, priv := genKeypair(t)
	wrongPub, _ := genKeypair(t)
	issuer := uuid.New()
	subject := uuid.New()

	cred := IssueCredential(issuer, subject, map[string]string{}, nil, priv)

	assert.Error(t, cred.VerifySignature(wrongPub))
}

func TestCredentialChainVerification(t *testing.T) {
	pubA, keyA := genKeypair(t)
	pubB, keyB := genKeypair(t)

	agentA := uuid.New()
	agentB := uuid.New()
	agentC := uuid.New()

	credAB := IssueCredential(agentA, agentB, map[string]string{"delegation": "task-x"}, nil, keyA)
	credBC := IssueCredential(agentB, agentC, map[string]string{"delegation": "task-x-sub"}, nil, keyB)

	err := VerifyCredentialChain(
		[]VerifiableCredential{credAB, credBC},
		[]ed25519.PublicKey{pubA, pubB},
	)
	assert.NoError(t, err)
}

func TestCredentialChainBroken(t *testing.T) {
	pubA, keyA := genKeypair(t)
	pubB, keyB := genKeypair(t)

	agentA := uuid.New()
	agentB := uuid.New()
	agentC := uuid.New()
	agentD := uuid.New()

	credAB := IssueCredential(agentA, agentB, map[string]string{}, nil, keyA)
	credCD := IssueCredential(agentC, agentD, map[string]string{}, nil, keyB)

	err := VerifyCredentialChain(
		[]VerifiableCredential{credAB, credCD},
		[]ed25519.PublicKey{pubA, pubB},
	)
	assert.Error(t, err)
}

func TestEmptyChainOK(t *testing.T) {
	err := VerifyCredentialChain(nil, nil)
	assert.NoError(t, err)
}
