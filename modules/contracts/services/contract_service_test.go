package services_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/domain/aggregates/contract"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/services"
)

func TestContractService_Create(t *testing.T) {
	t.Parallel()
	f := setupTest(t)
	ownerID := uuid.New()

	created, err := f.contractSvc.Create(f.ctx, ownerID, services.CreateContractDTO{
		Title:       "Consulting agreement",
		ClientName:  "Acme Ltd",
		ClientEmail: "legal@acme.example",
	})
	require.NoError(t, err)

	assert.Equal(t, contract.StatusDraft, created.Status())
	assert.Equal(t, ownerID, created.OwnerID())
	assert.Empty(t, created.SecretKey())

	listed, err := f.contractSvc.List(f.ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID(), listed[0].ID())
}

func TestContractService_GenerateShareLink(t *testing.T) {
	t.Parallel()
	f := setupTest(t)
	ownerID := uuid.New()

	created, err := f.contractSvc.Create(f.ctx, ownerID, services.CreateContractDTO{Title: "NDA"})
	require.NoError(t, err)

	shared, key, err := f.contractSvc.GenerateShareLink(f.ctx, ownerID, created.ID())
	require.NoError(t, err)
	assert.Equal(t, contract.StatusSentForSignature, shared.Status())
	assert.Len(t, key, 64)
	assert.Equal(t, key, shared.SecretKey())
}

func TestContractService_GenerateShareLink_RotatesKey(t *testing.T) {
	t.Parallel()
	f := setupTest(t)
	ownerID := uuid.New()

	created, err := f.contractSvc.Create(f.ctx, ownerID, services.CreateContractDTO{Title: "NDA"})
	require.NoError(t, err)

	_, firstKey, err := f.contractSvc.GenerateShareLink(f.ctx, ownerID, created.ID())
	require.NoError(t, err)

	// Move back to revision_requested so a re-share is legal.
	_, err = f.clientSvc.SubmitRevisionRequest(f.ctx, created.ID(), firstKey, "Acme Ltd", "", "clause 4 is wrong")
	require.NoError(t, err)

	_, secondKey, err := f.contractSvc.GenerateShareLink(f.ctx, ownerID, created.ID())
	require.NoError(t, err)
	assert.NotEqual(t, firstKey, secondKey)

	// The old key is dead.
	_, err = f.clientSvc.Access(f.ctx, created.ID(), firstKey)
	require.ErrorIs(t, err, contract.ErrAccessDenied)

	_, err = f.clientSvc.Access(f.ctx, created.ID(), secondKey)
	require.NoError(t, err)
}

func TestContractService_GenerateShareLink_InvalidFromShared(t *testing.T) {
	t.Parallel()
	f := setupTest(t)
	ownerID := uuid.New()

	created, err := f.contractSvc.Create(f.ctx, ownerID, services.CreateContractDTO{Title: "NDA"})
	require.NoError(t, err)
	_, _, err = f.contractSvc.GenerateShareLink(f.ctx, ownerID, created.ID())
	require.NoError(t, err)

	_, _, err = f.contractSvc.GenerateShareLink(f.ctx, ownerID, created.ID())
	require.ErrorIs(t, err, contract.ErrInvalidTransition)
}

func TestContractService_UpdateDraft(t *testing.T) {
	t.Parallel()
	f := setupTest(t)
	ownerID := uuid.New()

	created, err := f.contractSvc.Create(f.ctx, ownerID, services.CreateContractDTO{Title: "Draft v1"})
	require.NoError(t, err)

	updated, err := f.contractSvc.UpdateDraft(f.ctx, ownerID, created.ID(), services.UpdateContractDTO{
		Title:      "Draft v2",
		ClientName: "Acme Ltd",
		Payload: contract.Payload{
			SchemaVersion: contract.PayloadSchemaVersion,
			Data:          json.RawMessage(`{"clauses":["a"]}`),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Draft v2", updated.Title())
	assert.JSONEq(t, `{"clauses":["a"]}`, string(updated.Payload().Data))
}

func TestContractService_UpdateDraft_RejectedWhileShared(t *testing.T) {
	t.Parallel()
	f := setupTest(t)
	ownerID := uuid.New()

	created, err := f.contractSvc.Create(f.ctx, ownerID, services.CreateContractDTO{Title: "NDA"})
	require.NoError(t, err)
	_, _, err = f.contractSvc.GenerateShareLink(f.ctx, ownerID, created.ID())
	require.NoError(t, err)

	_, err = f.contractSvc.UpdateDraft(f.ctx, ownerID, created.ID(), services.UpdateContractDTO{Title: "sneaky edit"})
	require.ErrorIs(t, err, contract.ErrInvalidTransition)
}

func TestContractService_Cancel(t *testing.T) {
	t.Parallel()
	f := setupTest(t)
	ownerID := uuid.New()

	created, err := f.contractSvc.Create(f.ctx, ownerID, services.CreateContractDTO{Title: "NDA"})
	require.NoError(t, err)

	cancelled, err := f.contractSvc.Cancel(f.ctx, ownerID, created.ID())
	require.NoError(t, err)
	assert.Equal(t, contract.StatusCancelled, cancelled.Status())

	// Terminal: no further transitions.
	_, err = f.contractSvc.Cancel(f.ctx, ownerID, created.ID())
	require.ErrorIs(t, err, contract.ErrInvalidTransition)
	_, _, err = f.contractSvc.GenerateShareLink(f.ctx, ownerID, created.ID())
	require.ErrorIs(t, err, contract.ErrInvalidTransition)
}

func TestContractService_OtherOwnerSeesNotFound(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	created, err := f.contractSvc.Create(f.ctx, uuid.New(), services.CreateContractDTO{Title: "NDA"})
	require.NoError(t, err)

	stranger := uuid.New()
	_, err = f.contractSvc.GetByID(f.ctx, stranger, created.ID())
	require.ErrorIs(t, err, contract.ErrNotFound)
	_, err = f.contractSvc.Cancel(f.ctx, stranger, created.ID())
	require.ErrorIs(t, err, contract.ErrNotFound)
}

func TestContractService_RevealKey_Throttled(t *testing.T) {
	t.Parallel()
	f := setupTest(t)
	ownerID := uuid.New()

	created, err := f.contractSvc.Create(f.ctx, ownerID, services.CreateContractDTO{Title: "NDA"})
	require.NoError(t, err)
	_, key, err := f.contractSvc.GenerateShareLink(f.ctx, ownerID, created.ID())
	require.NoError(t, err)

	const device = "browser-profile-1"
	for i := 0; i < services.MaxKeyReveals; i++ {
		revealed, err := f.contractSvc.RevealKey(f.ctx, ownerID, created.ID(), device)
		require.NoError(t, err)
		assert.Equal(t, key, revealed)
	}

	_, err = f.contractSvc.RevealKey(f.ctx, ownerID, created.ID(), device)
	require.ErrorIs(t, err, services.ErrRevealLimitReached)

	// Another client instance has its own budget.
	_, err = f.contractSvc.RevealKey(f.ctx, ownerID, created.ID(), "browser-profile-2")
	require.NoError(t, err)

	// Explicit reset restores the budget.
	require.NoError(t, f.contractSvc.ResetKeyReveals(f.ctx, ownerID, created.ID(), device))
	revealed, err := f.contractSvc.RevealKey(f.ctx, ownerID, created.ID(), device)
	require.NoError(t, err)
	assert.Equal(t, key, revealed)
}

func TestContractService_RevealKey_NoKeyYet(t *testing.T) {
	t.Parallel()
	f := setupTest(t)
	ownerID := uuid.New()

	created, err := f.contractSvc.Create(f.ctx, ownerID, services.CreateContractDTO{Title: "NDA"})
	require.NoError(t, err)

	_, err = f.contractSvc.RevealKey(f.ctx, ownerID, created.ID(), "device")
	require.ErrorIs(t, err, contract.ErrNotFound)
}
