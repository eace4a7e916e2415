package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// cartTTL is how long an untouched cart survives.
const cartTTL = 30 * 24 * time.Hour

// CartStore keeps per-session cart lines in Redis.
type CartStore struct {
	rdb *redis.Client
}

func newCartStore() *CartStore {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	return &CartStore{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		}),
	}
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

// AddLine appends a validated cart line and refreshes the cart's TTL.
func (c *CartStore) AddLine(ctx context.Context, sessionID string, line CartLine) error {
	payload, err := json.Marshal(line)
	if err != nil {
		return fmt.Errorf("marshal cart line: %w", err)
	}
	key := cartKey(sessionID)
	if err := c.rdb.RPush(ctx, key, payload).Err(); err != nil {
		return fmt.Errorf("push cart line: %w", err)
	}
	if err := c.rdb.Expire(ctx, key, cartTTL).Err(); err != nil {
		return fmt.Errorf("expire cart: %w", err)
	}
	return nil
}

// Lines returns all lines in the session's cart.
func (c *CartStore) Lines(ctx context.Context, sessionID string) ([]CartLine, error) {
	raw, err := c.rdb.LRange(ctx, cartKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}
	lines := make([]CartLine, 0, len(raw))
	for _, item := range raw {
		var line CartLine
		if err := json.Unmarshal([]byte(item), &line); err != nil {
			// A corrupt entry degrades to a skipped line, not a dead cart.
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// Clear drops the session's cart, typically after checkout.
func (c *CartStore) Clear(ctx context.Context, sessionID string) error {
	return c.rdb.Del(ctx, cartKey(sessionID)).Err()
}

// BuildCartLine validates the configurator state and produces the line that
// goes into the cart. Validation failures return before any store access.
func BuildCartLine(p *Product, category SizeCategory, sel Selection, qty int, person *Personalization) (*CartLine, error) {
	if err := ValidateCartInput(p, category, sel, qty); err != nil {
		return nil, err
	}

	quote := ComputeQuote(p, category, sel, qty)
	line := &CartLine{
		ProductID:      p.ID,
		Name:           p.Name,
		Qty:            qty,
		SizeCategory:   category,
		Options:        FlattenSelection(sel),
		UnitPriceCents: quote.UnitPriceCents,
		LineTotalCents: quote.LineTotalCents,
		AddedAt:        time.Now(),
	}
	if person != nil && WantsPersonalization(sel) {
		sanitized := SanitizePersonalization(*person)
		line.Personalization = &sanitized
	}
	return line, nil
}
