package sparkapi

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) Register(ctx context.Context, req RegisterRequest) Result[AuthPayload] {
	return callJSON[AuthPayload](ctx, c, http.MethodPost, "/auth/register", req)
}

func (c *Client) Login(ctx context.Context, email, password string) Result[AuthPayload] {
	return callJSON[AuthPayload](ctx, c, http.MethodPost, "/auth/login", LoginRequest{Email: email, Password: password})
}

func (c *Client) Logout(ctx context.Context) Result[Raw] {
	return callJSON[Raw](ctx, c, http.MethodPost, "/auth/logout", nil)
}

func (c *Client) GetProfile(ctx context.Context) Result[User] {
	return callJSON[User](ctx, c, http.MethodGet, "/users/profile", nil)
}

func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) Result[User] {
	return callJSON[User](ctx, c, http.MethodPut, "/users/profile", update)
}

func (c *Client) UpdateMood(ctx context.Context, mood string) Result[Raw] {
	return callJSON[Raw](ctx, c, http.MethodPut, "/users/mood", map[string]string{"mood": mood})
}

func (c *Client) GetQuests(ctx context.Context) Result[[]Quest] {
	return callJSON[[]Quest](ctx, c, http.MethodGet, "/quests", nil)
}

func (c *Client) GetPersonalizedQuests(ctx context.Context) Result[[]Quest] {
	return callJSON[[]Quest](ctx, c, http.MethodGet, "/quests/personalized", nil)
}

func (c *Client) GetUserQuests(ctx context.Context) Result[[]Quest] {
	return callJSON[[]Quest](ctx, c, http.MethodGet, "/quests/user", nil)
}

func (c *Client) CompleteQuest(ctx context.Context, questID string) Result[Raw] {
	return callJSON[Raw](ctx, c, http.MethodPost, "/quests/"+url.PathEscape(questID)+"/complete", nil)
}

func (c *Client) GetReflections(ctx context.Context) Result[[]Reflection] {
	return callJSON[[]Reflection](ctx, c, http.MethodGet, "/reflections", nil)
}

func (c *Client) CreateReflection(ctx context.Context, req CreateReflectionRequest) Result[Reflection] {
	return callJSON[Reflection](ctx, c, http.MethodPost, "/reflections", req)
}

func (c *Client) DeleteReflection(ctx context.Context, reflectionID string) Result[Raw] {
	return callJSON[Raw](ctx, c, http.MethodDelete, "/reflections/"+url.PathEscape(reflectionID), nil)
}

func (c *Client) GetRewards(ctx context.Context) Result[[]Reward] {
	return callJSON[[]Reward](ctx, c, http.MethodGet, "/rewards", nil)
}

func (c *Client) RedeemReward(ctx context.Context, rewardID string) Result[Raw] {
	return callJSON[Raw](ctx, c, http.MethodPost, "/rewards/"+url.PathEscape(rewardID)+"/redeem", nil)
}

func (c *Client) GetAnalytics(ctx context.Context) Result[map[string]any] {
	return callJSON[map[string]any](ctx, c, http.MethodGet, "/analytics", nil)
}

func (c *Client) TrackBehavior(ctx context.Context, event BehaviorEvent) Result[Raw] {
	return callJSON[Raw](ctx, c, http.MethodPost, "/analytics/behavior", event)
}
