package contract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/domain/aggregates/contract"
)

func TestNextStatus_AllowedTransitions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		from    contract.Status
		trigger contract.Trigger
		want    contract.Status
	}{
		{"share draft", contract.StatusDraft, contract.TriggerShare, contract.StatusSentForSignature},
		{"re-share after revision", contract.StatusRevisionRequested, contract.TriggerShare, contract.StatusSentForSignature},
		{"sign shared", contract.StatusSentForSignature, contract.TriggerSign, contract.StatusSigned},
		{"request revision on shared", contract.StatusSentForSignature, contract.TriggerRequestRevision, contract.StatusRevisionRequested},
		{"repeat revision request", contract.StatusRevisionRequested, contract.TriggerRequestRevision, contract.StatusRevisionRequested},
		{"cancel draft", contract.StatusDraft, contract.TriggerCancel, contract.StatusCancelled},
		{"cancel shared", contract.StatusSentForSignature, contract.TriggerCancel, contract.StatusCancelled},
		{"cancel under revision", contract.StatusRevisionRequested, contract.TriggerCancel, contract.StatusCancelled},
		{"cancel legacy sent", contract.StatusSent, contract.TriggerCancel, contract.StatusCancelled},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := contract.NextStatus(tc.from, tc.trigger)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNextStatus_RejectedTransitions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		from    contract.Status
		trigger contract.Trigger
	}{
		{"sign draft", contract.StatusDraft, contract.TriggerSign},
		{"sign twice", contract.StatusSigned, contract.TriggerSign},
		{"sign cancelled", contract.StatusCancelled, contract.TriggerSign},
		{"sign under revision", contract.StatusRevisionRequested, contract.TriggerSign},
		{"share signed", contract.StatusSigned, contract.TriggerShare},
		{"share cancelled", contract.StatusCancelled, contract.TriggerShare},
		{"share already shared", contract.StatusSentForSignature, contract.TriggerShare},
		{"revision on draft", contract.StatusDraft, contract.TriggerRequestRevision},
		{"revision on signed", contract.StatusSigned, contract.TriggerRequestRevision},
		{"cancel signed", contract.StatusSigned, contract.TriggerCancel},
		{"cancel cancelled", contract.StatusCancelled, contract.TriggerCancel},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := contract.NextStatus(tc.from, tc.trigger)
			require.ErrorIs(t, err, contract.ErrInvalidTransition)
		})
	}
}

func TestNextStatus_UnknownTrigger(t *testing.T) {
	t.Parallel()
	_, err := contract.NextStatus(contract.StatusDraft, contract.Trigger("archive"))
	require.ErrorIs(t, err, contract.ErrInvalidTransition)
}

func TestStatus_IsTerminal(t *testing.T) {
	t.Parallel()

	assert.True(t, contract.StatusSigned.IsTerminal())
	assert.True(t, contract.StatusCancelled.IsTerminal())
	assert.False(t, contract.StatusDraft.IsTerminal())
	assert.False(t, contract.StatusSent.IsTerminal())
	assert.False(t, contract.StatusSentForSignature.IsTerminal())
	assert.False(t, contract.StatusRevisionRequested.IsTerminal())
}

func TestTriggerActor(t *testing.T) {
	t.Parallel()

	actor, ok := contract.TriggerActor(contract.TriggerShare)
	require.True(t, ok)
	assert.Equal(t, contract.ActorOwner, actor)

	actor, ok = contract.TriggerActor(contract.TriggerCancel)
	require.True(t, ok)
	assert.Equal(t, contract.ActorOwner, actor)

	actor, ok = contract.TriggerActor(contract.TriggerSign)
	require.True(t, ok)
	assert.Equal(t, contract.ActorCounterparty, actor)

	actor, ok = contract.TriggerActor(contract.TriggerRequestRevision)
	require.True(t, ok)
	assert.Equal(t, contract.ActorCounterparty, actor)

	_, ok = contract.TriggerActor(contract.Trigger("archive"))
	assert.False(t, ok)
}
