// Package service reads and writes the operator identity
package service

import (
	"context"

	"cobrify/internal/platform/logger"
	"cobrify/internal/services/identity/domain"
	"cobrify/internal/services/identity/repo"

	perr "cobrify/internal/platform/errors"
)

// Svc implements domain.Port over a repo
type Svc struct {
	repo repo.Repo
	log  logger.Logger
}

var _ domain.Port = (*Svc)(nil)

// New constructs the identity service
func New(r repo.Repo) *Svc {
	if r == nil {
		panic("identity.Service requires a non nil Repo")
	}
	return &Svc{repo: r, log: *logger.Named("identity")}
}

// Current returns the stored identity; an empty Identity when nobody is signed in
func (s *Svc) Current(ctx context.Context) (domain.Identity, error) {
	kv, err := s.repo.Load(ctx, domain.Keys())
	if err != nil {
		return domain.Identity{}, err
	}
	return domain.FromValues(kv), nil
}

// Set replaces the stored identity; BusinessID is required
func (s *Svc) Set(ctx context.Context, id domain.Identity) error {
	if !id.Present() {
		return perr.WithField(perr.New(perr.ErrorCodeValidation, "businessId is required"), domain.KeyBusinessID)
	}
	if err := s.repo.Replace(ctx, domain.Keys(), id.Values()); err != nil {
		return err
	}
	s.log.Info().Str("business_id", id.BusinessID).Bool("has_user", id.UserID != "").Msg("operator identity stored")
	return nil
}

// Clear forgets the operator
func (s *Svc) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, domain.Keys()); err != nil {
		return err
	}
	s.log.Info().Msg("operator identity cleared")
	return nil
}
