package dtos

import (
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/constants"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/serrors"
)

type CreateContractDTO struct {
	Title       string          `json:"title" validate:"required,max=255"`
	ClientName  string          `json:"client_name" validate:"max=255"`
	ClientEmail string          `json:"client_email" validate:"omitempty,email,max=255"`
	ClientPhone string          `json:"client_phone" validate:"max=64"`
	Payload     json.RawMessage `json:"payload"`
}

func (d *CreateContractDTO) Normalize() {
	d.Title = strings.TrimSpace(d.Title)
	d.ClientName = strings.TrimSpace(d.ClientName)
	d.ClientEmail = strings.TrimSpace(d.ClientEmail)
	d.ClientPhone = strings.TrimSpace(d.ClientPhone)
}

func (d *CreateContractDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	if err := constants.Validate.Struct(d); err != nil {
		return serrors.Process(err.(validator.ValidationErrors)), false
	}
	return serrors.ValidationErrors{}, true
}

type UpdateContractDTO struct {
	Title       string          `json:"title" validate:"required,max=255"`
	ClientName  string          `json:"client_name" validate:"max=255"`
	ClientEmail string          `json:"client_email" validate:"omitempty,email,max=255"`
	ClientPhone string          `json:"client_phone" validate:"max=64"`
	Payload     json.RawMessage `json:"payload"`
}

func (d *UpdateContractDTO) Normalize() {
	d.Title = strings.TrimSpace(d.Title)
	d.ClientName = strings.TrimSpace(d.ClientName)
	d.ClientEmail = strings.TrimSpace(d.ClientEmail)
	d.ClientPhone = strings.TrimSpace(d.ClientPhone)
}

func (d *UpdateContractDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	if err := constants.Validate.Struct(d); err != nil {
		return serrors.Process(err.(validator.ValidationErrors)), false
	}
	return serrors.ValidationErrors{}, true
}

// ClientAccessDTO is the key submission on every public endpoint.
type ClientAccessDTO struct {
	SecretKey string `json:"secret_key" validate:"required,max=128"`
}

func (d *ClientAccessDTO) Ok() (serrors.ValidationErrors, bool) {
	d.SecretKey = strings.TrimSpace(d.SecretKey)
	if err := constants.Validate.Struct(d); err != nil {
		return serrors.Process(err.(validator.ValidationErrors)), false
	}
	return serrors.ValidationErrors{}, true
}

type SubmitRevisionRequestDTO struct {
	SecretKey   string `json:"secret_key" validate:"required,max=128"`
	AuthorName  string `json:"author_name" validate:"required,max=255"`
	AuthorEmail string `json:"author_email" validate:"omitempty,email,max=255"`
	Message     string `json:"message" validate:"required,max=4096"`
}

func (d *SubmitRevisionRequestDTO) Normalize() {
	d.SecretKey = strings.TrimSpace(d.SecretKey)
	d.AuthorName = strings.TrimSpace(d.AuthorName)
	d.AuthorEmail = strings.TrimSpace(d.AuthorEmail)
	d.Message = strings.TrimSpace(d.Message)
}

func (d *SubmitRevisionRequestDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	if err := constants.Validate.Struct(d); err != nil {
		return serrors.Process(err.(validator.ValidationErrors)), false
	}
	return serrors.ValidationErrors{}, true
}

type SubmitTerminationRequestDTO struct {
	SecretKey   string `json:"secret_key" validate:"required,max=128"`
	Type        string `json:"type" validate:"required,oneof=document revision"`
	AuthorName  string `json:"author_name" validate:"required,max=255"`
	AuthorEmail string `json:"author_email" validate:"omitempty,email,max=255"`
	Reason      string `json:"reason" validate:"required,max=4096"`
}

func (d *SubmitTerminationRequestDTO) Normalize() {
	d.SecretKey = strings.TrimSpace(d.SecretKey)
	d.Type = strings.TrimSpace(d.Type)
	d.AuthorName = strings.TrimSpace(d.AuthorName)
	d.AuthorEmail = strings.TrimSpace(d.AuthorEmail)
	d.Reason = strings.TrimSpace(d.Reason)
}

func (d *SubmitTerminationRequestDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	if err := constants.Validate.Struct(d); err != nil {
		return serrors.Process(err.(validator.ValidationErrors)), false
	}
	return serrors.ValidationErrors{}, true
}

type RevealKeyDTO struct {
	ClientInstanceID string `json:"client_instance_id" validate:"required,max=128"`
}

func (d *RevealKeyDTO) Ok() (serrors.ValidationErrors, bool) {
	d.ClientInstanceID = strings.TrimSpace(d.ClientInstanceID)
	if err := constants.Validate.Struct(d); err != nil {
		return serrors.Process(err.(validator.ValidationErrors)), false
	}
	return serrors.ValidationErrors{}, true
}
