package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"admindash/internal/domain"
	"admindash/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func authFixture(t *testing.T) AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	return AuthService{
		Users: fakeAccounts{users: map[string]models.AuthorizedUser{
			"ops@example.com": {ID: 1, Email: "ops@example.com", Name: "Ops", Role: "Admin", PasswordHash: string(hash)},
		}},
		Secret: []byte("test-secret"),
	}
}

func TestLoginIssuesVerifiableSession(t *testing.T) {
	svc := authFixture(t)

	sess, err := svc.Login(context.Background(), " OPS@example.com ", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)

	rc, err := svc.ParseSession(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", rc.Email)
	assert.Equal(t, "admin", rc.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := authFixture(t)

	_, err := svc.Login(context.Background(), "ops@example.com", "wrong")
	ae, ok := domain.AsAuth(err)
	require.True(t, ok)
	assert.False(t, ae.Forbidden)

	_, err = svc.Login(context.Background(), "nobody@example.com", "s3cret")
	_, ok = domain.AsAuth(err)
	assert.True(t, ok)

	_, err = svc.Login(context.Background(), "", "")
	assert.True(t, domain.IsValidation(err))

	svc.Users = fakeAccounts{err: errors.New("dial tcp: refused")}
	_, err = svc.Login(context.Background(), "ops@example.com", "s3cret")
	assert.True(t, domain.IsUpstream(err))
}

func TestParseSessionRejectsExpiredAndForeign(t *testing.T) {
	svc := authFixture(t)
	issued := time.Now().Add(-48 * time.Hour)
	svc.Now = func() time.Time { return issued }
	sess, err := svc.Login(context.Background(), "ops@example.com", "s3cret")
	require.NoError(t, err)

	svc.Now = nil
	_, err = svc.ParseSession(sess.Token)
	_, ok := domain.AsAuth(err)
	assert.True(t, ok)

	other := authFixture(t)
	other.Secret = []byte("other")
	fresh, err := other.Login(context.Background(), "ops@example.com", "s3cret")
	require.NoError(t, err)
	_, err = svc.ParseSession(fresh.Token)
	_, ok = domain.AsAuth(err)
	assert.True(t, ok)
}
