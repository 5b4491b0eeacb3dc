package auth

import (
	"context"
	"testing"
	"time"

	"github.com/Shashi960/money-balancer-backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	repo, err := storage.NewRepository(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return NewService(repo, NewTokenIssuer("test-secret", time.Hour))
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, CheckPassword("s3cret", hash))
	assert.False(t, CheckPassword("wrong", hash))
}

func TestTokenIssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Issue("user@example.com")
	require.NoError(t, err)
	assert.Equal(t, "bearer", token.TokenType)
	assert.Equal(t, 3600, token.ExpiresIn)

	email, err := issuer.Verify(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", email)
}

func TestTokenVerifyRejectsBadInput(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	_, err := issuer.Verify("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Token signed with another secret.
	other := NewTokenIssuer("other-secret", time.Hour)
	token, err := other.Issue("user@example.com")
	require.NoError(t, err)
	_, err = issuer.Verify(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenExpiry(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	issuer.now = func() time.Time { return time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC) }

	token, err := issuer.Issue("user@example.com")
	require.NoError(t, err)

	// Move the clock past expiry.
	issuer.now = func() time.Time { return time.Date(2024, 6, 12, 12, 0, 1, 0, time.UTC) }
	_, err = issuer.Verify(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "User@Example.com", "s3cret", "Test User")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", user.Email, "emails are normalized to lowercase")
	assert.NotEmpty(t, user.ID)

	_, err = svc.Register(ctx, "user@example.com", "other", "")
	assert.ErrorIs(t, err, ErrEmailTaken)

	token, err := svc.Login(ctx, "user@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)

	_, err = svc.Login(ctx, "user@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyBearer(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(context.Background(), "user@example.com", "s3cret", "")
	require.NoError(t, err)
	token, err := svc.Login(context.Background(), "user@example.com", "s3cret")
	require.NoError(t, err)

	email, err := svc.VerifyBearer("Bearer " + token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", email)

	_, err = svc.VerifyBearer(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken, "missing Bearer prefix")
}
