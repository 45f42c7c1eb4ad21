package auth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/benefitsnav/benefits-backend/config"
)

// tokenClient is the part of *fbauth.Client the API uses.
type tokenClient interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
	VerifyIDTokenAndCheckRevoked(ctx context.Context, idToken string) (*fbauth.Token, error)
	SetCustomUserClaims(ctx context.Context, uid string, claims map[string]interface{}) error
}

// Firebase verifies caller ID tokens and manages the "role" custom claim
// that decides access to the admin console.
type Firebase struct {
	client       tokenClient
	checkRevoked bool
}

func NewFirebase(client tokenClient, checkRevoked bool) *Firebase {
	return &Firebase{client: client, checkRevoked: checkRevoked}
}

// InitializeFirebase builds the Admin SDK auth client from a service account file.
func InitializeFirebase(ctx context.Context, cfg *config.FirebaseConfig) (*Firebase, error) {
	if cfg.CredentialsPath == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required")
	}

	var appCfg *firebase.Config
	if cfg.ProjectID != "" {
		appCfg = &firebase.Config{ProjectID: cfg.ProjectID}
	}
	app, err := firebase.NewApp(ctx, appCfg, option.WithCredentialsFile(cfg.CredentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}
	return NewFirebase(client, cfg.CheckRevoked), nil
}

// VerifyIDToken decodes idToken. With revocation checks on, a token issued
// before the user's sessions were revoked is rejected too.
func (f *Firebase) VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error) {
	if f.checkRevoked {
		return f.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	}
	return f.client.VerifyIDToken(ctx, idToken)
}

// SetRole stores role as the user's "role" claim. It applies from the next
// token the user's client fetches.
func (f *Firebase) SetRole(ctx context.Context, uid, role string) error {
	if uid == "" {
		return fmt.Errorf("uid is required")
	}
	switch role {
	case RoleAdmin, RoleUser:
	default:
		return fmt.Errorf("unknown role %q", role)
	}
	if err := f.client.SetCustomUserClaims(ctx, uid, map[string]interface{}{"role": role}); err != nil {
		return fmt.Errorf("set role for %s: %w", uid, err)
	}
	return nil
}
