package dtos

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/constants"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/serrors"
)

type RegisterDTO struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Name     string `json:"name" validate:"max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

func (d *RegisterDTO) Normalize() {
	d.Email = strings.TrimSpace(d.Email)
	d.Name = strings.TrimSpace(d.Name)
}

func (d *RegisterDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	if err := constants.Validate.Struct(d); err != nil {
		return serrors.Process(err.(validator.ValidationErrors)), false
	}
	return serrors.ValidationErrors{}, true
}

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

func (d *LoginDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Email = strings.TrimSpace(d.Email)
	if err := constants.Validate.Struct(d); err != nil {
		return serrors.Process(err.(validator.ValidationErrors)), false
	}
	return serrors.ValidationErrors{}, true
}
