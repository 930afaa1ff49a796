package out

import (
	"context"

	"sparks/internal/modules/account/domain"
)

// AuthGateway is the remote identity API.
type AuthGateway interface {
	Register(ctx context.Context, reg domain.Registration) (domain.Credentials, error)
	Login(ctx context.Context, email, password string) (domain.Credentials, error)
	Logout(ctx context.Context) error
	GetProfile(ctx context.Context) (domain.Profile, error)
	UpdateProfile(ctx context.Context, patch domain.ProfilePatch) (domain.Profile, error)
}

// TokenSink receives the bearer credential used on outgoing requests.
type TokenSink interface {
	SetToken(token string)
	ClearToken()
}

// CredentialStore persists the token and profile snapshot across restarts.
type CredentialStore interface {
	Save(ctx context.Context, creds domain.Credentials) error
	SaveProfile(ctx context.Context, profile domain.Profile) error
	Load(ctx context.Context) (domain.Credentials, error)
	Clear(ctx context.Context) error
}
