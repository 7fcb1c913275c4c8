package contract

import "fmt"

// Status is the lifecycle state of a contract document.
type Status string

const (
	StatusDraft Status = "draft"
	// StatusSent survives in rows written before the share flow moved
	// documents straight to sent_for_signature. Never produced by a
	// transition.
	StatusSent              Status = "sent"
	StatusSentForSignature  Status = "sent_for_signature"
	StatusRevisionRequested Status = "revision_requested"
	StatusSigned            Status = "signed"
	StatusCancelled         Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusSentForSignature, StatusRevisionRequested, StatusSigned, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusSigned || s == StatusCancelled
}

// Actor identifies which side of the contract performs a transition.
type Actor string

const (
	ActorOwner        Actor = "owner"
	ActorCounterparty Actor = "counterparty"
)

// Trigger names a lifecycle action on a contract.
type Trigger string

const (
	// TriggerShare issues (or re-issues) a signing link to the counterparty.
	TriggerShare Trigger = "share"
	// TriggerSign records the counterparty's acceptance.
	TriggerSign Trigger = "sign"
	// TriggerRequestRevision flags the document as needing changes.
	TriggerRequestRevision Trigger = "request_revision"
	// TriggerCancel withdraws the document from circulation.
	TriggerCancel Trigger = "cancel"
)

type transition struct {
	from           map[Status]struct{}
	to             Status
	actor          Actor
	anyNonTerminal bool
}

var transitions = map[Trigger]transition{
	TriggerShare: {
		from:  statusSet(StatusDraft, StatusRevisionRequested),
		to:    StatusSentForSignature,
		actor: ActorOwner,
	},
	TriggerSign: {
		from:  statusSet(StatusSentForSignature),
		to:    StatusSigned,
		actor: ActorCounterparty,
	},
	TriggerRequestRevision: {
		from:  statusSet(StatusSentForSignature, StatusRevisionRequested),
		to:    StatusRevisionRequested,
		actor: ActorCounterparty,
	},
	TriggerCancel: {
		to:             StatusCancelled,
		actor:          ActorOwner,
		anyNonTerminal: true,
	},
}

func statusSet(statuses ...Status) map[Status]struct{} {
	set := make(map[Status]struct{}, len(statuses))
	for _, s := range statuses {
		set[s] = struct{}{}
	}
	return set
}

// NextStatus resolves the target status for applying trigger from the given
// status. Returns ErrInvalidTransition when the trigger is not allowed.
func NextStatus(from Status, trigger Trigger) (Status, error) {
	t, ok := transitions[trigger]
	if !ok {
		return "", fmt.Errorf("%w: unknown trigger %q", ErrInvalidTransition, trigger)
	}
	if t.anyNonTerminal {
		if from.IsTerminal() {
			return "", fmt.Errorf("%w: cannot %s a %s contract", ErrInvalidTransition, trigger, from)
		}
		return t.to, nil
	}
	if _, allowed := t.from[from]; !allowed {
		return "", fmt.Errorf("%w: cannot %s a %s contract", ErrInvalidTransition, trigger, from)
	}
	return t.to, nil
}

// TriggerActor returns the side allowed to fire the trigger.
func TriggerActor(trigger Trigger) (Actor, bool) {
	t, ok := transitions[trigger]
	if !ok {
		return "", false
	}
	return t.actor, true
}
