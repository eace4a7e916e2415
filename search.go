package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	meilisearch "github.com/meilisearch/meilisearch-go"
)

type meiliClient struct {
	baseURL   string
	indexName string
}

func newMeiliClient() *meiliClient {
	base := os.Getenv("MEILI_URL")
	if base == "" {
		base = "http://127.0.0.1:7700"
	}
	return &meiliClient{baseURL: base, indexName: "products"}
}

type meiliSearchResponse struct {
	Hits             []map[string]interface{}
	TotalHits        int
	ProcessingTimeMs int
}

func (c *meiliClient) search(query string, limit, offset int) (meiliSearchResponse, error) {
	client := meilisearch.New(c.baseURL, meilisearch.WithAPIKey(os.Getenv("MEILI_API_KEY")))
	index := client.Index(c.indexName)

	res, err := index.Search(query, &meilisearch.SearchRequest{
		Limit:  int64(limit),
		Offset: int64(offset),
	})
	if err != nil {
		return meiliSearchResponse{}, err
	}

	out := meiliSearchResponse{ProcessingTimeMs: int(res.ProcessingTimeMs)}
	b, _ := json.Marshal(res.Hits)
	_ = json.Unmarshal(b, &out.Hits)
	if res.EstimatedTotalHits > 0 {
		out.TotalHits = int(res.EstimatedTotalHits)
	} else {
		out.TotalHits = len(out.Hits)
	}
	return out, nil
}

// SearchProduct is the one stable shape every caller sees. Drifted response
// keys are resolved once here instead of at each call site.
type SearchProduct struct {
	ID         string `json:"id"`
	Slug       string `json:"slug"`
	Name       string `json:"name"`
	Team       string `json:"team"`
	Club       string `json:"club"`
	Image      string `json:"image"`
	PriceCents int    `json:"price_cents"`
}

// normalizeHit folds the index's drifted key names into SearchProduct and
// enriches it with the canonical club label at query time.
func normalizeHit(h map[string]interface{}) SearchProduct {
	p := SearchProduct{
		ID:   strings.TrimPrefix(firstString(h, "id"), "product_"),
		Slug: firstString(h, "slug"),
		Name: firstString(h, "name", "title"),
		Team: firstString(h, "team", "club", "teamName", "team_name"),
		Image: firstString(h,
			"mainImage", "mainImageUrl", "image", "imageUrl", "image_url", "thumbnail"),
	}
	p.PriceCents = firstInt(h, "priceCents", "price_cents", "price", "basePrice", "base_price_cents")
	p.Club = clubEngine.Resolve(p.Team, p.Name)
	return p
}

func firstString(m map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

func firstInt(m map[string]interface{}, keys ...string) int {
	for _, key := range keys {
		v, ok := m[key]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case float64:
			return int(t)
		case float32:
			return int(t)
		case int:
			return t
		case int64:
			return int(t)
		}
	}
	return 0
}

// RebuildIndex reindexes all products from Postgres into Meilisearch in
// batches.
func (c *meiliClient) RebuildIndex(ctx context.Context, db *sql.DB) (int, error) {
	client := meilisearch.New(c.baseURL, meilisearch.WithAPIKey(os.Getenv("MEILI_API_KEY")))
	_, _ = client.DeleteIndex(c.indexName)
	_, _ = client.CreateIndex(&meilisearch.IndexConfig{Uid: c.indexName, PrimaryKey: "id"})
	index := client.Index(c.indexName)

	settings := meilisearch.Settings{
		SearchableAttributes: []string{"name", "team", "club"},
		FilterableAttributes: []string{"club", "price_cents"},
		SortableAttributes:   []string{"price_cents", "name"},
	}
	_, _ = index.UpdateSettings(&settings)

	batch := 1000
	offset := 0
	indexed := 0
	for {
		products, err := ListProducts(ctx, db, ProductListOptions{Limit: batch, Offset: offset})
		if err != nil {
			return indexed, fmt.Errorf("load products: %w", err)
		}
		if len(products) == 0 {
			break
		}

		docs := make([]map[string]interface{}, 0, len(products))
		for _, p := range products {
			image := ""
			if len(p.Images) > 0 {
				image = p.Images[0]
			}
			docs = append(docs, map[string]interface{}{
				"id":          "product_" + p.ID,
				"slug":        p.Slug,
				"name":        p.Name,
				"team":        p.Team,
				"club":        clubEngine.Resolve(p.Team, p.Name),
				"image":       image,
				"price_cents": p.BasePriceCents,
			})
		}
		if _, err := index.AddDocuments(docs, nil); err != nil {
			return indexed, fmt.Errorf("index batch: %w", err)
		}
		indexed += len(docs)
		offset += batch
	}
	return indexed, nil
}
