package bootstrap

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/medplant/plantgate/adapters/upstream"
	"github.com/medplant/plantgate/domain/session"
	"github.com/medplant/plantgate/ports"
)

// swappableUpstream lets a config reload replace the upstream client
// while handlers keep a stable reference. Requests already running on
// the old client finish on it.
type swappableUpstream struct {
	mu     sync.RWMutex
	client *upstream.Client
}

func (s *swappableUpstream) swap(c *upstream.Client) {
	s.mu.Lock()
	s.client = c
	s.mu.Unlock()
}

func (s *swappableUpstream) get() *upstream.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client
}

func (s *swappableUpstream) Login(ctx context.Context, email, password string) (*ports.AuthSession, error) {
	return s.get().Login(ctx, email, password)
}

func (s *swappableUpstream) Signup(ctx context.Context, req session.SignupRequest) (*ports.AuthSession, error) {
	return s.get().Signup(ctx, req)
}

func (s *swappableUpstream) Logout(ctx context.Context, token session.Token) error {
	return s.get().Logout(ctx, token)
}

func (s *swappableUpstream) ValidateSession(ctx context.Context, token session.Token) (json.RawMessage, error) {
	return s.get().ValidateSession(ctx, token)
}

func (s *swappableUpstream) Identify(ctx context.Context, token session.Token, contentType string, body io.Reader) (json.RawMessage, error) {
	return s.get().Identify(ctx, token, contentType, body)
}

func (s *swappableUpstream) Identifications(ctx context.Context, token session.Token) (json.RawMessage, error) {
	return s.get().Identifications(ctx, token)
}

func (s *swappableUpstream) DeleteIdentification(ctx context.Context, token session.Token, id string) (json.RawMessage, error) {
	return s.get().DeleteIdentification(ctx, token, id)
}

func (s *swappableUpstream) ToggleFavorite(ctx context.Context, token session.Token, id string) (json.RawMessage, error) {
	return s.get().ToggleFavorite(ctx, token, id)
}

func (s *swappableUpstream) PlantDetails(ctx context.Context, token session.Token, scientificName string) (json.RawMessage, error) {
	return s.get().PlantDetails(ctx, token, scientificName)
}

func (s *swappableUpstream) SavedPlants(ctx context.Context, token session.Token) (json.RawMessage, error) {
	return s.get().SavedPlants(ctx, token)
}

func (s *swappableUpstream) UserStats(ctx context.Context, token session.Token) (json.RawMessage, error) {
	return s.get().UserStats(ctx, token)
}

func (s *swappableUpstream) UserProgress(ctx context.Context, token session.Token) (json.RawMessage, error) {
	return s.get().UserProgress(ctx, token)
}

func (s *swappableUpstream) PlantOfTheDay(ctx context.Context, token session.Token) (json.RawMessage, error) {
	return s.get().PlantOfTheDay(ctx, token)
}

func (s *swappableUpstream) ActivityFeed(ctx context.Context, token session.Token) (json.RawMessage, error) {
	return s.get().ActivityFeed(ctx, token)
}

func (s *swappableUpstream) HealthCheck(ctx context.Context) error {
	return s.get().HealthCheck(ctx)
}

var _ ports.Upstream = (*swappableUpstream)(nil)
