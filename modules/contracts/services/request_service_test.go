package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/domain/entities/revisionrequest"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/domain/entities/terminationrequest"
)

func TestRequestService_ResolveRevision_Idempotent(t *testing.T) {
	t.Parallel()
	f := setupTest(t)
	ownerID := uuid.New()
	id, key := shareContract(t, f, ownerID)

	req, err := f.clientSvc.SubmitRevisionRequest(f.ctx, id, key, "Acme Ltd", "", "clause 4")
	require.NoError(t, err)

	require.NoError(t, f.requestSvc.ResolveRevision(f.ctx, ownerID, req.ID))
	require.NoError(t, f.requestSvc.ResolveRevision(f.ctx, ownerID, req.ID))

	open, err := f.requestSvc.ListUnresolvedRevisions(f.ctx, ownerID)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestRequestService_ResolveRevision_WrongOwner(t *testing.T) {
	t.Parallel()
	f := setupTest(t)
	ownerID := uuid.New()
	id, key := shareContract(t, f, ownerID)

	req, err := f.clientSvc.SubmitRevisionRequest(f.ctx, id, key, "Acme Ltd", "", "clause 4")
	require.NoError(t, err)

	err = f.requestSvc.ResolveRevision(f.ctx, uuid.New(), req.ID)
	require.ErrorIs(t, err, revisionrequest.ErrNotFound)
}

func TestRequestService_ResolveTermination(t *testing.T) {
	t.Parallel()
	f := setupTest(t)
	ownerID := uuid.New()
	id, key := shareContract(t, f, ownerID)

	req, err := f.clientSvc.SubmitTerminationRequest(f.ctx, id, key, terminationrequest.TypeRevision, "Acme Ltd", "", "no longer needed")
	require.NoError(t, err)

	require.NoError(t, f.requestSvc.ResolveTermination(f.ctx, ownerID, req.ID))

	open, err := f.requestSvc.ListUnresolvedTerminations(f.ctx, ownerID)
	require.NoError(t, err)
	assert.Empty(t, open)

	err = f.requestSvc.ResolveTermination(f.ctx, ownerID, uuid.New())
	require.ErrorIs(t, err, terminationrequest.ErrNotFound)
}

func TestRequestService_ListByContract_OwnershipChecked(t *testing.T) {
	t.Parallel()
	f := setupTest(t)
	ownerID := uuid.New()
	id, key := shareContract(t, f, ownerID)

	_, err := f.clientSvc.SubmitRevisionRequest(f.ctx, id, key, "Acme Ltd", "", "clause 4")
	require.NoError(t, err)

	reqs, err := f.requestSvc.ListRevisionsByContract(f.ctx, ownerID, id)
	require.NoError(t, err)
	assert.Len(t, reqs, 1)

	_, err = f.requestSvc.ListRevisionsByContract(f.ctx, uuid.New(), id)
	require.Error(t, err)
}
