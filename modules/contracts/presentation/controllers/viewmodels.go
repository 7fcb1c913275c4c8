package controllers

import (
	"encoding/json"
	"time"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/domain/aggregates/contract"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/domain/entities/revisionrequest"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/domain/entities/terminationrequest"
)

type contractViewModel struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Status      string          `json:"status"`
	ClientName  string          `json:"client_name"`
	ClientEmail string          `json:"client_email"`
	ClientPhone string          `json:"client_phone"`
	Payload     json.RawMessage `json:"payload"`
	SignedAt    *time.Time      `json:"signed_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// The secret key is never part of a contract view model; it only leaves the
// server through the share and reveal endpoints.
func toContractViewModel(c contract.Contract) contractViewModel {
	payload, err := json.Marshal(c.Payload())
	if err != nil {
		payload = json.RawMessage("{}")
	}
	return contractViewModel{
		ID:          c.ID().String(),
		Title:       c.Title(),
		Status:      string(c.Status()),
		ClientName:  c.ClientName(),
		ClientEmail: c.ClientEmail(),
		ClientPhone: c.ClientPhone(),
		Payload:     payload,
		SignedAt:    c.SignedAt(),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
}

type revisionRequestViewModel struct {
	ID          string     `json:"id"`
	ContractID  string     `json:"contract_id"`
	AuthorName  string     `json:"author_name"`
	AuthorEmail string     `json:"author_email,omitempty"`
	Message     string     `json:"message"`
	Resolved    bool       `json:"resolved"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toRevisionRequestViewModel(req *revisionrequest.RevisionRequest) revisionRequestViewModel {
	return revisionRequestViewModel{
		ID:          req.ID.String(),
		ContractID:  req.ContractID.String(),
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		Message:     req.Message,
		Resolved:    req.Resolved,
		ResolvedAt:  req.ResolvedAt,
		CreatedAt:   req.CreatedAt,
	}
}

type terminationRequestViewModel struct {
	ID          string     `json:"id"`
	ContractID  string     `json:"contract_id"`
	Type        string     `json:"type"`
	AuthorName  string     `json:"author_name"`
	AuthorEmail string     `json:"author_email,omitempty"`
	Reason      string     `json:"reason"`
	Resolved    bool       `json:"resolved"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toTerminationRequestViewModel(req *terminationrequest.TerminationRequest) terminationRequestViewModel {
	return terminationRequestViewModel{
		ID:          req.ID.String(),
		ContractID:  req.ContractID.String(),
		Type:        string(req.Type),
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		Reason:      req.Reason,
		Resolved:    req.Resolved,
		ResolvedAt:  req.ResolvedAt,
		CreatedAt:   req.CreatedAt,
	}
}
