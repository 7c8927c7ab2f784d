package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/habitflow/internal/app"
	"github.com/terraincognita07/habitflow/internal/security"
)

type Handler struct {
	services  *app.Services
	secretKey []byte
	location  *time.Location
}

func NewHandler(bundle *app.Services, secret string) (*Handler, error) {
	if bundle == nil {
		return nil, errors.New("services are required")
	}
	if err := security.ValidateSecretKey(secret); err != nil {
		return nil, err
	}
	location := bundle.Location
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		services:  bundle,
		secretKey: []byte(secret),
		location:  location,
	}, nil
}
