package redis

import (
	"context"
	"fmt"
	"time"
)

const (
	blacklistPrefix    = "jwt:blacklist:"
	refreshTokenPrefix = "refresh:token:"
)

// AddToBlacklist invalidates a JWT until it would have expired anyway.
func (c *Client) AddToBlacklist(ctx context.Context, token string, expiresIn time.Duration) error {
	key := blacklistPrefix + token
	return c.Set(ctx, key, "blacklisted", expiresIn)
}

// IsInBlacklist reports whether the token was invalidated by a logout.
func (c *Client) IsInBlacklist(ctx context.Context, token string) (bool, error) {
	key := blacklistPrefix + token
	exists, err := c.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist: %v", err)
	}
	return exists, nil
}

// SaveRefreshToken stores the user's current refresh token.
func (c *Client) SaveRefreshToken(ctx context.Context, userID uint, refreshToken string, expiresIn time.Duration) error {
	key := refreshTokenPrefix + fmt.Sprintf("%d", userID)
	return c.Set(ctx, key, refreshToken, expiresIn)
}

// GetRefreshToken returns the user's stored refresh token.
func (c *Client) GetRefreshToken(ctx context.Context, userID uint) (string, error) {
	key := refreshTokenPrefix + fmt.Sprintf("%d", userID)
	return c.Get(ctx, key)
}

// DeleteRefreshToken drops the user's refresh token on logout.
func (c *Client) DeleteRefreshToken(ctx context.Context, userID uint) error {
	key := refreshTokenPrefix + fmt.Sprintf("%d", userID)
	return c.Delete(ctx, key)
}
