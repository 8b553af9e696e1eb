package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/calmouapp/calmou/internal/tokens"
)

func newGateway() (*Gateway, *tokens.Service) {
	ts := tokens.NewService([]byte("secret"), time.Hour, 30*24*time.Hour)
	return NewGateway(ts), ts
}

func TestAuthenticate_Success(t *testing.T) {
	t.Parallel()
	g, ts := newGateway()

	raw, err := ts.IssueAccess(42)
	require.NoError(t, err)

	for _, header := range []string{raw, "Bearer " + raw, "bearer " + raw} {
		subject, failure := g.Authenticate(header)
		require.Nil(t, failure, "header %q", header)
		require.Equal(t, int64(42), subject)
	}
}

func TestAuthenticate_Missing(t *testing.T) {
	t.Parallel()
	g, _ := newGateway()

	for _, header := range []string{"", "   ", "Bearer ", "Bearer    "} {
		_, failure := g.Authenticate(header)
		require.NotNil(t, failure, "header %q", header)
		require.Equal(t, ReasonMissing, failure.Reason)
	}
}

func TestAuthenticate_Malformed(t *testing.T) {
	t.Parallel()
	g, _ := newGateway()

	_, failure := g.Authenticate("Bearer not.a.jwt")
	require.NotNil(t, failure)
	require.Equal(t, ReasonMalformed, failure.Reason)
}

func TestAuthenticate_BadSignature(t *testing.T) {
	t.Parallel()
	g, _ := newGateway()

	foreign := tokens.NewService([]byte("other-secret"), time.Hour, time.Hour)
	raw, err := foreign.IssueAccess(42)
	require.NoError(t, err)

	_, failure := g.Authenticate(raw)
	require.NotNil(t, failure)
	require.Equal(t, ReasonBadSignature, failure.Reason)
}

func TestAuthenticate_Expired(t *testing.T) {
	t.Parallel()
	ts := tokens.NewService([]byte("secret"), -time.Minute, time.Hour)
	g := NewGateway(ts)

	raw, err := ts.IssueAccess(42)
	require.NoError(t, err)

	_, failure := g.Authenticate(raw)
	require.NotNil(t, failure)
	require.Equal(t, ReasonExpired, failure.Reason)
}

func TestAuthenticate_RefreshTokenIsWrongKind(t *testing.T) {
	t.Parallel()
	g, ts := newGateway()

	raw, err := ts.IssueRefresh(42)
	require.NoError(t, err)

	_, failure := g.Authenticate(raw)
	require.NotNil(t, failure)
	require.Equal(t, ReasonWrongKind, failure.Reason)
}
