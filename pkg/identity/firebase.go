package identity

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

type firebaseProvider struct {
	auth *auth.Client
}

type FirebaseConfig struct {
	ProjectID       string
	CredentialsFile string
}

// NewFirebaseProvider builds a Provider backed by Firebase Auth. With an
// empty credentials file the SDK falls back to application default
// credentials.
func NewFirebaseProvider(ctx context.Context, config *FirebaseConfig) (Provider, error) {
	var opts []option.ClientOption
	if config.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(config.CredentialsFile))
	}

	var appConfig *firebase.Config
	if config.ProjectID != "" {
		appConfig = &firebase.Config{ProjectID: config.ProjectID}
	}

	app, err := firebase.NewApp(ctx, appConfig, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}

	return &firebaseProvider{auth: client}, nil
}

func (p *firebaseProvider) VerifyToken(ctx context.Context, token string) (*Identity, error) {
	decoded, err := p.auth.VerifyIDTokenAndCheckRevoked(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to verify id token: %w", err)
	}

	return identityFromToken(decoded), nil
}

func (p *firebaseProvider) CustomClaims(ctx context.Context, uid string) (map[string]interface{}, error) {
	record, err := p.auth.GetUser(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", uid, err)
	}

	return record.CustomClaims, nil
}

func (p *firebaseProvider) SetCustomClaims(ctx context.Context, uid string, claims map[string]interface{}) error {
	if err := p.auth.SetCustomUserClaims(ctx, uid, claims); err != nil {
		return fmt.Errorf("failed to set custom claims for %s: %w", uid, err)
	}

	return nil
}

func identityFromToken(token *auth.Token) *Identity {
	ident := &Identity{
		UID:    token.UID,
		Claims: token.Claims,
	}

	if role, ok := token.Claims["role"].(string); ok {
		ident.Role = role
	}
	if admin, ok := token.Claims["admin"].(bool); ok {
		ident.Admin = admin
	}

	return ident
}
