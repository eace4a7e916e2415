package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

// seedCatalog inserts the demo catalog when the products table is empty.
func seedCatalog(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, p := range buildSeedCatalog() {
		if err := InsertProductTree(ctx, db, p); err != nil {
			return fmt.Errorf("seed product %s: %w", p.Slug, err)
		}
	}
	log.Printf("Seeded catalog with %d products", len(buildSeedCatalog()))
	return nil
}

// reseedProduct replaces one product and all its dependent rows. Both the
// delete and the insert run transactionally, so a crash cannot strand
// orphaned option rows.
func reseedProduct(ctx context.Context, db *sql.DB, p Product) error {
	if err := DeleteProductTree(ctx, db, p.ID); err != nil {
		return err
	}
	return InsertProductTree(ctx, db, p)
}

func jerseyGroups(productID string) []OptionGroup {
	return []OptionGroup{
		{
			ID:       productID + "-size",
			Key:      "size",
			Label:    "Size",
			Type:     GroupSize,
			Required: true,
			Values: []OptionValue{
				{ID: productID + "-size-s", Code: "S", Label: "S"},
				{ID: productID + "-size-m", Code: "M", Label: "M"},
				{ID: productID + "-size-l", Code: "L", Label: "L"},
				{ID: productID + "-size-xl", Code: "XL", Label: "XL"},
			},
		},
		{
			ID:    productID + "-customization",
			Key:   "customization",
			Label: "Customization",
			Type:  GroupRadio,
			Values: []OptionValue{
				{ID: productID + "-cust-none", Code: "none", Label: "No printing"},
				{ID: productID + "-cust-nn", Code: "name-number", Label: "Name & number", DeltaCents: 1500},
			},
		},
		{
			ID:    productID + "-extras",
			Key:   "extras",
			Label: "Complete the kit",
			Type:  GroupAddon,
			Values: []OptionValue{
				{ID: productID + "-extra-shorts", Code: "shorts", Label: "Matching shorts", DeltaCents: 2500},
				{ID: productID + "-extra-socks", Code: "socks", Label: "Matching socks", DeltaCents: 1200},
				{ID: productID + "-extra-badge", Code: "league-badge", Label: "League badge", DeltaCents: 800},
			},
		},
	}
}

func adultSizes() []SizeStock {
	return []SizeStock{{"S", 20}, {"M", 30}, {"L", 30}, {"XL", 15}}
}

func kidsSizes() []SizeStock {
	return []SizeStock{{"6Y", 10}, {"8Y", 12}, {"10Y", 12}, {"12Y", 8}}
}

func buildSeedCatalog() []Product {
	type entry struct {
		id, slug, name, team string
		price, kidsDelta     int
	}
	entries := []entry{
		{"prod-001", "real-madrid-home-25-26", "Real Madrid Home Jersey 25/26", "Real Madrid White", 8999, -1000},
		{"prod-002", "barcelona-away-25-26", "FC Barcelona Away Jersey 25/26", "Barcelona", 8999, -1000},
		{"prod-003", "liverpool-home-25-26", "Liverpool Home Jersey 25/26", "Liverpool Red", 8499, -800},
		{"prod-004", "bayern-third-25-26", "Bayern Munich Third Jersey 25/26", "Bayern", 8499, -800},
		{"prod-005", "psg-home-25-26", "Paris Saint-Germain Home Jersey 25/26", "PSG Navy", 8999, -1000},
		{"prod-006", "argentina-home-2026", "Argentina Home Jersey World Cup 2026", "Argentina Sky-Blue", 9499, -1200},
		{"prod-007", "japan-samurai-concept", "Japan Concept Jersey Samurai Edition", "Japan Samurai", 7999, 0},
		{"prod-008", "benfica-retro-94", "SL Benfica Retro Jersey 1994", "SL Benfica Red", 7499, 0},
	}

	products := make([]Product, 0, len(entries))
	for _, e := range entries {
		p := Product{
			ID:             e.id,
			Slug:           e.slug,
			Name:           e.name,
			Team:           e.team,
			BasePriceCents: e.price,
			KidsDeltaCents: e.kidsDelta,
			Images:         []string{"https://cdn.kitzone.example/" + e.slug + ".jpg"},
			Sizes:          adultSizes(),
			Groups:         jerseyGroups(e.id),
		}
		if e.kidsDelta != 0 {
			p.KidsSizes = kidsSizes()
		}
		products = append(products, p)
	}
	return products
}
