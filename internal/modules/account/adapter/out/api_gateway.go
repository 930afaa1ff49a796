package out

import (
	"context"

	"sparks/internal/modules/account/domain"
	accountout "sparks/internal/modules/account/port/out"
	"sparks/internal/platform/sparkapi"
)

type APIAuthGateway struct {
	client *sparkapi.Client
}

func NewAPIAuthGateway(client *sparkapi.Client) accountout.AuthGateway {
	return &APIAuthGateway{client: client}
}

func (g *APIAuthGateway) Register(ctx context.Context, reg domain.Registration) (domain.Credentials, error) {
	res := g.client.Register(ctx, sparkapi.RegisterRequest{
		Name:            reg.Name,
		Email:           reg.Email,
		Password:        reg.Password,
		Age:             reg.Age,
		PersonalityType: reg.PersonalityType,
		EmotionalNeeds:  reg.EmotionalNeeds,
		Interests:       reg.Interests,
		Goals:           reg.Goals,
		CurrentMood:     reg.CurrentMood,
	})
	if err := res.Err(); err != nil {
		return domain.Credentials{}, err
	}
	return domain.Credentials{Token: res.Data.Token, Profile: profileFromAPI(res.Data.User)}, nil
}

func (g *APIAuthGateway) Login(ctx context.Context, email, password string) (domain.Credentials, error) {
	res := g.client.Login(ctx, email, password)
	if err := res.Err(); err != nil {
		return domain.Credentials{}, err
	}
	return domain.Credentials{Token: res.Data.Token, Profile: profileFromAPI(res.Data.User)}, nil
}

func (g *APIAuthGateway) Logout(ctx context.Context) error {
	return g.client.Logout(ctx).Err()
}

func (g *APIAuthGateway) GetProfile(ctx context.Context) (domain.Profile, error) {
	res := g.client.GetProfile(ctx)
	if err := res.Err(); err != nil {
		return domain.Profile{}, err
	}
	return profileFromAPI(res.Data), nil
}

func (g *APIAuthGateway) UpdateProfile(ctx context.Context, patch domain.ProfilePatch) (domain.Profile, error) {
	res := g.client.UpdateProfile(ctx, sparkapi.ProfileUpdate{
		Name:            patch.Name,
		Age:             patch.Age,
		PersonalityType: patch.PersonalityType,
		EmotionalNeeds:  patch.EmotionalNeeds,
		Interests:       patch.Interests,
		Goals:           patch.Goals,
	})
	if err := res.Err(); err != nil {
		return domain.Profile{}, err
	}
	return profileFromAPI(res.Data), nil
}

func profileFromAPI(u sparkapi.User) domain.Profile {
	return domain.Profile{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Age:             u.Age,
		PersonalityType: u.PersonalityType,
		EmotionalNeeds:  u.EmotionalNeeds,
		Interests:       u.Interests,
		Goals:           u.Goals,
		CurrentMood:     u.CurrentMood,
		SparkPoints:     u.SparkPoints,
		Level:           u.Level,
		CompletedQuests: u.CompletedQuests,
		Streak:          u.Streak,
	}
}
