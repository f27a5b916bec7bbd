// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package accounts

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/tomtom215/nutriplan/internal/apperr"
	"github.com/tomtom215/nutriplan/internal/metrics"
	"github.com/tomtom215/nutriplan/internal/store"
)

// Field names with meaning to the service. Every other field is stored
// as sent.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
)

// Public messages.
const (
	msgCredentialsRequired = "Email and password are required"
	msgEmailRequired       = "Email is required"
	msgUserExists          = "User with this email already exists"
	msgInvalidCredentials  = "Invalid credentials"
)

// Service manages user records in the users collection.
type Service struct {
	users  store.Collection
	logger zerolog.Logger
}

// NewService creates the service over users.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(users store.Collection, logger zerolog.Logger) *Service {
	return &Service{
		users:  users,
		logger: logger.With().Str("component", "accounts").Logger(),
	}
}

// Register stores a new user. The email must not already be registered.
// It returns the stored record.
func (s *Service) Register(ctx context.Context, user store.Document) (store.Document, error) {
	const op = "accounts.register"

	email, _ := user.String(FieldEmail)
	password, _ := user.String(FieldPassword)
	if email == "" || password == "" {
		metrics.RecordAccountOperation("register", "invalid")
		return nil, apperr.Validation(op, msgCredentialsRequired)
	}

	_, err := s.users.FindOne(ctx, store.Filter{FieldEmail: email})
	switch {
	case err == nil:
		metrics.RecordAccountOperation("register", "conflict")
		return nil, apperr.Conflict(op, msgUserExists)
	case !errors.Is(err, store.ErrNotFound):
		metrics.RecordAccountOperation("register", "error")
		return nil, apperr.Internal(op, err)
	}

	record := user.WithoutID()
	if _, err := s.users.InsertOne(ctx, record); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			metrics.RecordAccountOperation("register", "conflict")
			return nil, apperr.Conflict(op, msgUserExists)
		}
		metrics.RecordAccountOperation("register", "error")
		return nil, apperr.Internal(op, err)
	}

	metrics.RecordAccountOperation("register", "success")
	s.logger.Info().Str("email", email).Msg("New user registered")
	return record, nil
}

// Login returns the user whose email and password both match.
func (s *Service) Login(ctx context.Context, email, password string) (store.Document, error) {
	const op = "accounts.login"

	if email == "" || password == "" {
		metrics.RecordAccountOperation("login", "invalid")
		return nil, apperr.Validation(op, msgCredentialsRequired)
	}

	user, err := s.users.FindOne(ctx, store.Filter{FieldEmail: email, FieldPassword: password})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			metrics.RecordAccountOperation("login", "rejected")
			return nil, apperr.NotFound(op, msgInvalidCredentials)
		}
		metrics.RecordAccountOperation("login", "error")
		return nil, apperr.Internal(op, err)
	}

	metrics.RecordAccountOperation("login", "success")
	s.logger.Info().Str("email", email).Msg("User logged in")
	return user, nil
}

// UpdateProfile merges fields into the user with the same email, or
// inserts the profile when no such user exists.
func (s *Service) UpdateProfile(ctx context.Context, profile store.Document) error {
	const op = "accounts.update_profile"

	email, _ := profile.String(FieldEmail)
	if email == "" {
		metrics.RecordAccountOperation("update_profile", "invalid")
		return apperr.Validation(op, msgEmailRequired)
	}

	filter := store.Filter{FieldEmail: email}
	_, err := s.users.FindOne(ctx, filter)
	switch {
	case err == nil:
		modified, err := s.users.UpdateOne(ctx, filter, profile.WithoutID())
		if err != nil {
			metrics.RecordAccountOperation("update_profile", "error")
			return apperr.Internal(op, err)
		}
		metrics.RecordAccountOperation("update_profile", "updated")
		s.logger.Debug().Str("email", email).Int64("modified", modified).Msg("Profile updated")

	case errors.Is(err, store.ErrNotFound):
		if _, err := s.users.InsertOne(ctx, profile.WithoutID()); err != nil {
			metrics.RecordAccountOperation("update_profile", "error")
			return apperr.Internal(op, err)
		}
		metrics.RecordAccountOperation("update_profile", "inserted")
		s.logger.Debug().Str("email", email).Msg("Profile created")

	default:
		metrics.RecordAccountOperation("update_profile", "error")
		return apperr.Internal(op, err)
	}
	return nil
}

// List returns every user record.
func (s *Service) List(ctx context.Context) ([]store.Document, error) {
	users, err := s.users.Find(ctx, store.Filter{})
	if err != nil {
		return nil, apperr.Internal("accounts.list", err)
	}
	return users, nil
}
