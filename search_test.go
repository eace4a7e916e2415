package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHit(t *testing.T) {
	hit := map[string]interface{}{
		"id":          "product_prod-001",
		"slug":        "real-madrid-home",
		"name":        "Real Madrid Home Jersey 25/26",
		"team":        "Real Madrid",
		"image":       "https://cdn.test/rm.jpg",
		"price_cents": float64(8999),
	}

	p := normalizeHit(hit)
	assert.Equal(t, "prod-001", p.ID)
	assert.Equal(t, "real-madrid-home", p.Slug)
	assert.Equal(t, "Real Madrid Home Jersey 25/26", p.Name)
	assert.Equal(t, "Real Madrid", p.Team)
	assert.Equal(t, "Real Madrid", p.Club)
	assert.Equal(t, "https://cdn.test/rm.jpg", p.Image)
	assert.Equal(t, 8999, p.PriceCents)
}

// Older index documents carry drifted key names; the normalizer resolves
// them all to the same shape.
func TestNormalizeHitDriftedKeys(t *testing.T) {
	hit := map[string]interface{}{
		"id":        "prod-002",
		"title":     "Barcelona Away Kit",
		"teamName":  "Barcelona",
		"mainImage": "https://cdn.test/fcb.jpg",
		"price":     float64(7999),
	}

	p := normalizeHit(hit)
	assert.Equal(t, "prod-002", p.ID)
	assert.Equal(t, "Barcelona Away Kit", p.Name)
	assert.Equal(t, "Barcelona", p.Team)
	assert.Equal(t, "FC Barcelona", p.Club)
	assert.Equal(t, "https://cdn.test/fcb.jpg", p.Image)
	assert.Equal(t, 7999, p.PriceCents)
}

func TestNormalizeHitMissingFields(t *testing.T) {
	p := normalizeHit(map[string]interface{}{})
	assert.Equal(t, SearchProduct{}, p)

	p = normalizeHit(map[string]interface{}{"name": "Mystery Jersey", "price_cents": "not a number"})
	assert.Equal(t, "Mystery Jersey", p.Name)
	assert.Zero(t, p.PriceCents)
}

func TestFirstStringSkipsEmptyAndNonString(t *testing.T) {
	m := map[string]interface{}{
		"a": "",
		"b": 42,
		"c": "value",
	}
	assert.Equal(t, "value", firstString(m, "a", "b", "c"))
	assert.Equal(t, "", firstString(m, "a", "b"))
}

func TestFirstIntNumericShapes(t *testing.T) {
	assert.Equal(t, 7, firstInt(map[string]interface{}{"n": float64(7)}, "n"))
	assert.Equal(t, 7, firstInt(map[string]interface{}{"n": 7}, "n"))
	assert.Equal(t, 7, firstInt(map[string]interface{}{"n": int64(7)}, "n"))
	assert.Equal(t, 0, firstInt(map[string]interface{}{"n": "7"}, "n"))
}
