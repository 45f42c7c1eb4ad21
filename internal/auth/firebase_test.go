package auth

import (
	"context"
	"errors"
	"testing"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benefitsnav/benefits-backend/config"
)

type fakeTokenClient struct {
	verified      int
	revokeChecked int
	claims        map[string]map[string]interface{}
	claimsErr     error
}

func (f *fakeTokenClient) VerifyIDToken(_ context.Context, idToken string) (*fbauth.Token, error) {
	f.verified++
	return &fbauth.Token{UID: idToken}, nil
}

func (f *fakeTokenClient) VerifyIDTokenAndCheckRevoked(_ context.Context, idToken string) (*fbauth.Token, error) {
	f.revokeChecked++
	if idToken == "revoked" {
		return nil, errors.New("ID token has been revoked")
	}
	return &fbauth.Token{UID: idToken}, nil
}

func (f *fakeTokenClient) SetCustomUserClaims(_ context.Context, uid string, claims map[string]interface{}) error {
	if f.claimsErr != nil {
		return f.claimsErr
	}
	if f.claims == nil {
		f.claims = map[string]map[string]interface{}{}
	}
	f.claims[uid] = claims
	return nil
}

func TestFirebase_VerifyIDToken(t *testing.T) {
	ctx := context.Background()

	t.Run("plain verification", func(t *testing.T) {
		client := &fakeTokenClient{}
		tok, err := NewFirebase(client, false).VerifyIDToken(ctx, "uid-1")
		require.NoError(t, err)
		assert.Equal(t, "uid-1", tok.UID)
		assert.Equal(t, 1, client.verified)
		assert.Zero(t, client.revokeChecked)
	})

	t.Run("revocation check", func(t *testing.T) {
		client := &fakeTokenClient{}
		fb := NewFirebase(client, true)

		_, err := fb.VerifyIDToken(ctx, "uid-1")
		require.NoError(t, err)
		_, err = fb.VerifyIDToken(ctx, "revoked")
		assert.Error(t, err)
		assert.Equal(t, 2, client.revokeChecked)
		assert.Zero(t, client.verified)
	})
}

func TestFirebase_SetRole(t *testing.T) {
	ctx := context.Background()
	client := &fakeTokenClient{}
	fb := NewFirebase(client, false)

	require.NoError(t, fb.SetRole(ctx, "uid-1", RoleAdmin))
	assert.Equal(t, map[string]interface{}{"role": RoleAdmin}, client.claims["uid-1"])

	assert.Error(t, fb.SetRole(ctx, "uid-1", "superuser"))
	assert.Error(t, fb.SetRole(ctx, "", RoleUser))

	client.claimsErr = errors.New("user not found")
	err := fb.SetRole(ctx, "uid-2", RoleUser)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uid-2")
}

func TestInitializeFirebase_RequiresCredentials(t *testing.T) {
	_, err := InitializeFirebase(context.Background(), &config.FirebaseConfig{})
	assert.Error(t, err)
}
