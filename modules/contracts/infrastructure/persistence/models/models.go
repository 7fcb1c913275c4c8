package models

import "time"

type Contract struct {
	ID          string
	OwnerID     string
	Title       string
	Status      string
	ClientName  string
	ClientEmail string
	ClientPhone string
	Payload     []byte
	SecretKey   string
	SignedAt    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type RevisionRequest struct {
	ID          string
	ContractID  string
	AuthorName  string
	AuthorEmail string
	Message     string
	Resolved    bool
	ResolvedAt  *time.Time
	CreatedAt   time.Time
}

type TerminationRequest struct {
	ID          string
	ContractID  string
	Type        string
	AuthorName  string
	AuthorEmail string
	Reason      string
	Resolved    bool
	ResolvedAt  *time.Time
	CreatedAt   time.Time
}
