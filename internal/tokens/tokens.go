// Package tokens issues, validates, and refreshes bearer session tokens.
//
// A token is a signed HS256 claim set: subject user id, kind (access or
// refresh), issued-at, and expiry. Tokens are immutable once issued;
// "refreshing" mints a brand-new access token and never touches the refresh
// token itself.
package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Kind distinguishes the two token roles. A refresh token is never accepted
// where an access token is required, and vice versa.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

var (
	// ErrMalformed and ErrBadSignature are terminal: they are never
	// reachable from a legitimately issued token and indicate tampering or
	// a foreign token, regardless of timestamp.
	ErrMalformed    = errors.New("token malformed")
	ErrBadSignature = errors.New("token signature invalid")

	ErrExpired   = errors.New("token expired")
	ErrWrongKind = errors.New("wrong token kind")
)

// Claims is the signed claim set carried by every token.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"uid"`
	Kind   Kind  `json:"kind"`
}

// Identity is the result of a successful validation.
type Identity struct {
	UserID int64
	Kind   Kind
}

// Service signs and validates token pairs. Validation is stateless: it does
// not re-check that the subject still exists in the account store, so a
// token stays structurally valid until its own expiry even if the account
// was deleted in the interim.
type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewService(secret []byte, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// WithClock overrides the time source; tests use it to cross expiry without
// sleeping.
func (s *Service) WithClock(now func() time.Time) *Service {
	c := *s
	c.now = now
	return &c
}

// IssueAccess mints a short-lived access token for the subject.
func (s *Service) IssueAccess(userID int64) (string, error) {
	return s.issue(userID, KindAccess, s.accessTTL)
}

// IssueRefresh mints a long-lived refresh token for the subject.
func (s *Service) IssueRefresh(userID int64) (string, error) {
	return s.issue(userID, KindRefresh, s.refreshTTL)
}

func (s *Service) issue(userID int64, kind Kind, ttl time.Duration) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
		Kind:   kind,
	})
	return token.SignedString(s.secret)
}

// Validate parses and verifies a raw token, returning the subject identity.
// Failures map to exactly one of ErrMalformed, ErrBadSignature, ErrExpired.
func (s *Service) Validate(raw string) (Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Identity{}, ErrMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Identity{}, ErrBadSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return Identity{}, ErrExpired
		default:
			return Identity{}, ErrMalformed
		}
	}
	if !token.Valid {
		return Identity{}, ErrBadSignature
	}
	if claims.Kind != KindAccess && claims.Kind != KindRefresh {
		return Identity{}, ErrMalformed
	}
	return Identity{UserID: claims.UserID, Kind: claims.Kind}, nil
}

// ValidateKind validates and additionally requires the given kind; a kind
// mismatch is a hard failure.
func (s *Service) ValidateKind(raw string, want Kind) (Identity, error) {
	id, err := s.Validate(raw)
	if err != nil {
		return Identity{}, err
	}
	if id.Kind != want {
		return Identity{}, ErrWrongKind
	}
	return id, nil
}

// Refresh validates the input as an unexpired refresh token and issues a new
// access token for the same subject. The refresh token is not extended or
// reissued.
func (s *Service) Refresh(refreshRaw string) (string, error) {
	id, err := s.ValidateKind(refreshRaw, KindRefresh)
	if err != nil {
		return "", err
	}
	return s.IssueAccess(id.UserID)
}
