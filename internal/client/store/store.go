// Package store persists the session credential and the identity snapshot
// returned at login, and exposes convenience projections over the snapshot.
//
// Reads never fail from the caller's point of view: a missing, unreadable or
// corrupted record is reported as "nothing stored" and logged, because a
// broken session record is equivalent to being signed out.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/bankclient/internal/client/models"
	"github.com/dmitrijs2005/bankclient/internal/client/repositories/kv"
	"github.com/dmitrijs2005/bankclient/internal/logging"
)

// Default storage keys.
const (
	DefaultTokenKey = "albaraka_token"
	DefaultUserKey  = "albaraka_user"
)

type CredentialStore struct {
	repo     kv.Repository
	log      logging.Logger
	tokenKey string
	userKey  string
}

type Option func(*CredentialStore)

// WithKeys overrides the storage keys. Empty values keep the defaults.
func WithKeys(tokenKey, userKey string) Option {
	return func(s *CredentialStore) {
		if tokenKey != "" {
			s.tokenKey = tokenKey
		}
		if userKey != "" {
			s.userKey = userKey
		}
	}
}

func New(repo kv.Repository, log logging.Logger, opts ...Option) *CredentialStore {
	s := &CredentialStore{
		repo:     repo,
		log:      log.With("component", "credential_store"),
		tokenKey: DefaultTokenKey,
		userKey:  DefaultUserKey,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Save writes the identity snapshot and its credential in one transaction.
func (s *CredentialStore) Save(ctx context.Context, id models.Identity) error {
	b, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	return s.repo.Put(ctx, map[string]string{
		s.tokenKey: id.Token,
		s.userKey:  string(b),
	})
}

// SaveToken replaces the raw credential only.
func (s *CredentialStore) SaveToken(ctx context.Context, token string) error {
	return s.repo.Put(ctx, map[string]string{s.tokenKey: token})
}

// Token returns the raw credential, or "" when none is stored.
func (s *CredentialStore) Token(ctx context.Context) string {
	v, ok, err := s.repo.Get(ctx, s.tokenKey)
	if err != nil {
		s.log.Error(ctx, "read credential", "err", err)
		return ""
	}
	if !ok {
		return ""
	}
	return v
}

// Get returns the stored identity snapshot, or nil.
func (s *CredentialStore) Get(ctx context.Context) *models.Identity {
	v, ok, err := s.repo.Get(ctx, s.userKey)
	if err != nil {
		s.log.Error(ctx, "read identity", "err", err)
		return nil
	}
	if !ok || v == "" {
		return nil
	}
	var id models.Identity
	if err := json.Unmarshal([]byte(v), &id); err != nil {
		s.log.Warn(ctx, "discarding corrupted identity record", "err", err)
		return nil
	}
	return &id
}

// Remove deletes the credential and the identity snapshot.
func (s *CredentialStore) Remove(ctx context.Context) error {
	return s.repo.Delete(ctx, s.tokenKey, s.userKey)
}

// Clear wipes everything in the underlying storage.
func (s *CredentialStore) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}

func (s *CredentialStore) Role(ctx context.Context) models.Role {
	if id := s.Get(ctx); id != nil {
		return id.Role
	}
	return models.RoleNone
}

func (s *CredentialStore) Email(ctx context.Context) string {
	if id := s.Get(ctx); id != nil {
		return id.Email
	}
	return ""
}

func (s *CredentialStore) FullName(ctx context.Context) string {
	if id := s.Get(ctx); id != nil {
		return id.FullName
	}
	return ""
}

func (s *CredentialStore) AccountNumber(ctx context.Context) string {
	if id := s.Get(ctx); id != nil {
		return id.AccountNumber
	}
	return ""
}

// HasRole reports whether the stored identity carries role. RoleNone never
// matches.
func (s *CredentialStore) HasRole(ctx context.Context, role models.Role) bool {
	return role != models.RoleNone && s.Role(ctx) == role
}
