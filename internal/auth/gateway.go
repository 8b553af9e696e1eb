// Package auth resolves a caller identity from an inbound bearer token.
//
// The gateway is the contract between the core and the boundary layer: it
// reports a subject id or a typed failure reason, and never constructs a
// transport-level response itself.
package auth

import (
	"strings"

	"github.com/calmouapp/calmou/internal/tokens"
)

// Reason classifies an authentication failure for the boundary layer to map
// onto its transport.
type Reason string

const (
	ReasonMissing      Reason = "missing"
	ReasonMalformed    Reason = "malformed"
	ReasonBadSignature Reason = "bad_signature"
	ReasonExpired      Reason = "expired"
	ReasonWrongKind    Reason = "wrong_kind"
)

// Failure is a typed authentication failure. The internal reason is
// preserved for logging; external consumers receive a generic rejection.
type Failure struct {
	Reason Reason
}

func (f *Failure) Error() string {
	return "authentication failed: " + string(f.Reason)
}

// Gateway validates bearer tokens and extracts the caller's identity.
type Gateway struct {
	tokens *tokens.Service
}

func NewGateway(ts *tokens.Service) *Gateway {
	return &Gateway{tokens: ts}
}

// Authenticate accepts the raw Authorization header value (with or without
// the "Bearer " prefix) and returns the subject id. Only access tokens are
// accepted here; a refresh token is a wrong-kind failure.
func (g *Gateway) Authenticate(bearer string) (int64, *Failure) {
	raw := strings.TrimSpace(bearer)
	if prefix := "bearer "; len(raw) >= len(prefix) && strings.EqualFold(raw[:len(prefix)], prefix) {
		raw = strings.TrimSpace(raw[len(prefix):])
	}
	if raw == "" {
		return 0, &Failure{Reason: ReasonMissing}
	}

	id, err := g.tokens.ValidateKind(raw, tokens.KindAccess)
	if err != nil {
		return 0, &Failure{Reason: reasonFor(err)}
	}
	return id.UserID, nil
}

func reasonFor(err error) Reason {
	switch err {
	case tokens.ErrBadSignature:
		return ReasonBadSignature
	case tokens.ErrExpired:
		return ReasonExpired
	case tokens.ErrWrongKind:
		return ReasonWrongKind
	default:
		return ReasonMalformed
	}
}
