package contract_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/domain/aggregates/contract"
)

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	c := contract.New(ownerID, "Consulting agreement")

	assert.NotEqual(t, uuid.Nil, c.ID())
	assert.Equal(t, ownerID, c.OwnerID())
	assert.Equal(t, "Consulting agreement", c.Title())
	assert.Equal(t, contract.StatusDraft, c.Status())
	assert.Equal(t, contract.PayloadSchemaVersion, c.Payload().SchemaVersion)
	assert.Empty(t, c.SecretKey())
	assert.Nil(t, c.SignedAt())
	assert.False(t, c.CreatedAt().IsZero())
}

func TestNew_Options(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	c := contract.New(
		uuid.New(),
		"NDA",
		contract.WithID(id),
		contract.WithStatus(contract.StatusSentForSignature),
		contract.WithClient("Acme Ltd", "legal@acme.example", "+1-555-0101"),
		contract.WithSecretKey("k1"),
	)

	assert.Equal(t, id, c.ID())
	assert.Equal(t, contract.StatusSentForSignature, c.Status())
	assert.Equal(t, "Acme Ltd", c.ClientName())
	assert.Equal(t, "legal@acme.example", c.ClientEmail())
	assert.Equal(t, "+1-555-0101", c.ClientPhone())
	assert.Equal(t, "k1", c.SecretKey())
}

func TestNew_InvalidStatusOptionIgnored(t *testing.T) {
	t.Parallel()

	c := contract.New(uuid.New(), "NDA", contract.WithStatus(contract.Status("bogus")))
	assert.Equal(t, contract.StatusDraft, c.Status())
}

func TestSetters_ReturnCopies(t *testing.T) {
	t.Parallel()

	original := contract.New(uuid.New(), "Draft v1")
	updated := original.SetTitle("Draft v2")

	assert.Equal(t, "Draft v1", original.Title())
	assert.Equal(t, "Draft v2", updated.Title())
	assert.Equal(t, original.ID(), updated.ID())

	payload := contract.Payload{
		SchemaVersion: contract.PayloadSchemaVersion,
		Data:          json.RawMessage(`{"clauses":[]}`),
	}
	withPayload := original.SetPayload(payload)
	require.JSONEq(t, `{"clauses":[]}`, string(withPayload.Payload().Data))
	assert.JSONEq(t, `{}`, string(original.Payload().Data))

	keyed := original.SetSecretKey("secret")
	assert.Empty(t, original.SecretKey())
	assert.Equal(t, "secret", keyed.SecretKey())
}
