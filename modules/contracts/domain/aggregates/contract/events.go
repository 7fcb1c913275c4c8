package contract

import "github.com/google/uuid"

type CreatedEvent struct {
	Result Contract
}

type UpdatedEvent struct {
	Result Contract
}

// StatusChangedEvent fires on every successful lifecycle transition.
type StatusChangedEvent struct {
	ContractID uuid.UUID
	From       Status
	To         Status
	Trigger    Trigger
}

// SharedEvent fires when a signing link is generated; Key is the newly
// issued secret so a notification channel can build the link.
type SharedEvent struct {
	ContractID uuid.UUID
	Key        string
}

type SignedEvent struct {
	ContractID uuid.UUID
	ClientName string
}
