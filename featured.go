package main

import (
	"context"
	"sort"
)

// FeaturedGroup is one club's products for the featured section.
type FeaturedGroup struct {
	Club       string    `json:"club"`
	Products   []Product `json:"products"`
	PriceRange struct {
		MinCents int `json:"min_cents"`
		MaxCents int `json:"max_cents"`
	} `json:"price_range"`
	ProductCount int `json:"product_count"`
}

// GetFeaturedClubs groups the catalog by canonical club label and returns
// the clubs with the most products, cheapest first within each group.
// Products whose club cannot be determined are left out rather than shown
// under a placeholder label.
func (s *server) GetFeaturedClubs(ctx context.Context, limit int) ([]FeaturedGroup, error) {
	products, err := ListProducts(ctx, s.db, ProductListOptions{})
	if err != nil {
		return nil, err
	}

	byClub := make(map[string][]Product)
	order := make([]string, 0)
	for _, p := range products {
		club := clubEngine.Resolve(p.Team, p.Name)
		if club == "" {
			continue
		}
		if _, seen := byClub[club]; !seen {
			order = append(order, club)
		}
		byClub[club] = append(byClub[club], p)
	}

	groups := make([]FeaturedGroup, 0, len(byClub))
	for _, club := range order {
		prods := byClub[club]
		sort.Slice(prods, func(i, j int) bool {
			return prods[i].BasePriceCents < prods[j].BasePriceCents
		})

		g := FeaturedGroup{Club: club, Products: prods, ProductCount: len(prods)}
		g.PriceRange.MinCents = prods[0].BasePriceCents
		g.PriceRange.MaxCents = prods[len(prods)-1].BasePriceCents
		groups = append(groups, g)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].ProductCount > groups[j].ProductCount
	})
	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}
	return groups, nil
}
