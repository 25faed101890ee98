// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/.
package ports

import (
	"context"
	"encoding/json"
	"io"

	"github.com/medplant/plantgate/domain/session"
)

// AuthSession is the result of a login or signup against the upstream.
type AuthSession struct {
	Token   session.Token   // opaque bearer token, set verbatim into the cookie
	User    json.RawMessage // upstream user object, passed through
	Message string          // upstream success message, if any
}

// Upstream is the MedPlant service the gateway fronts. One method per
// logical operation; every method honors ctx cancellation so a dropped
// inbound connection aborts the outbound call.
type Upstream interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, email, password string) (*AuthSession, error)

	// Signup registers a new user and returns a bearer token.
	Signup(ctx context.Context, req session.SignupRequest) (*AuthSession, error)

	// Logout notifies the upstream. Best-effort; the caller clears the
	// local session cookie regardless of the result.
	Logout(ctx context.Context, token session.Token) error

	// ValidateSession resolves the current user from a bearer token.
	ValidateSession(ctx context.Context, token session.Token) (json.RawMessage, error)

	// Identify streams a multipart image body through to the model
	// endpoint. contentType is the inbound Content-Type header,
	// forwarded unchanged so the multipart boundary survives.
	Identify(ctx context.Context, token session.Token, contentType string, body io.Reader) (json.RawMessage, error)

	// Identifications lists the user's recent identifications.
	Identifications(ctx context.Context, token session.Token) (json.RawMessage, error)

	// DeleteIdentification deletes an identification by id.
	DeleteIdentification(ctx context.Context, token session.Token, id string) (json.RawMessage, error)

	// ToggleFavorite flips the favorite flag of an identification.
	ToggleFavorite(ctx context.Context, token session.Token, id string) (json.RawMessage, error)

	// PlantDetails looks up a plant by scientific name.
	PlantDetails(ctx context.Context, token session.Token, scientificName string) (json.RawMessage, error)

	// SavedPlants lists the user's saved plants.
	SavedPlants(ctx context.Context, token session.Token) (json.RawMessage, error)

	// UserStats returns identification counts and accuracy rate.
	UserStats(ctx context.Context, token session.Token) (json.RawMessage, error)

	// UserProgress returns identification/favorite progress counters.
	UserProgress(ctx context.Context, token session.Token) (json.RawMessage, error)

	// PlantOfTheDay returns a plant picked from the user's history.
	PlantOfTheDay(ctx context.Context, token session.Token) (json.RawMessage, error)

	// ActivityFeed returns the user's recent activity entries.
	ActivityFeed(ctx context.Context, token session.Token) (json.RawMessage, error)

	// HealthCheck verifies the upstream is reachable.
	HealthCheck(ctx context.Context) error
}
