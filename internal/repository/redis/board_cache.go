package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

func snapshotKey(gameID string) string { return "game:" + gameID + ":snapshot" }

// SetSnapshot stores the live snapshot of a game.
func (c *Client) SetSnapshot(ctx context.Context, gameID string, snapshot json.RawMessage) error {
	return c.rdb.Set(ctx, snapshotKey(gameID), []byte(snapshot), 0).Err()
}

// GetSnapshot returns the live snapshot of a game, or nil when none is cached.
func (c *Client) GetSnapshot(ctx context.Context, gameID string) (json.RawMessage, error) {
	data, err := c.rdb.Get(ctx, snapshotKey(gameID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return json.RawMessage(data), nil
}

// DeleteGame removes all Redis data for a game (on game end).
func (c *Client) DeleteGame(ctx context.Context, gameID string) error {
	return c.rdb.Del(ctx, snapshotKey(gameID)).Err()
}
