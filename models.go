package main

import (
	"time"
)

// SizeCategory selects which size table and price applies.
type SizeCategory string

const (
	SizeAdult SizeCategory = "ADULT"
	SizeKids  SizeCategory = "KIDS"
)

// GroupType classifies how an option group is selected.
type GroupType string

const (
	GroupSize  GroupType = "SIZE"  // rendered as the size selector
	GroupRadio GroupType = "RADIO" // at most one selected value
	GroupAddon GroupType = "ADDON" // zero or more selected values
)

// Product is a configurable jersey listing.
type Product struct {
	ID             string        `json:"id"`
	Slug           string        `json:"slug"`
	Name           string        `json:"name"`
	Team           string        `json:"team"`
	BasePriceCents int           `json:"base_price_cents"`
	KidsDeltaCents int           `json:"kids_delta_cents"`
	Images         []string      `json:"images"`
	Sizes          []SizeStock   `json:"sizes"`
	KidsSizes      []SizeStock   `json:"kids_sizes,omitempty"`
	Groups         []OptionGroup `json:"groups"`
	CreatedAt      time.Time     `json:"created_at"`
}

// SizeStock is one size row with remaining stock.
type SizeStock struct {
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

// OptionGroup belongs to exactly one product.
type OptionGroup struct {
	ID       string        `json:"id"`
	Key      string        `json:"key"` // stable UI identifier: "size", "customization", "shorts", ...
	Label    string        `json:"label"`
	Type     GroupType     `json:"type"`
	Required bool          `json:"required"`
	Values   []OptionValue `json:"values"`
}

// OptionValue is one selectable value inside a group.
// Codes are unique within a group.
type OptionValue struct {
	ID         string `json:"id"`
	Code       string `json:"code"`
	Label      string `json:"label"`
	DeltaCents int    `json:"delta_cents"`
}

// Personalization carries optional printed name/number for a cart line.
type Personalization struct {
	Name   string `json:"name"`
	Number string `json:"number"`
}

// CartLine is a configured product stored in the cart.
// Multi-select option values are flattened to comma-joined strings.
type CartLine struct {
	ProductID       string            `json:"product_id"`
	Name            string            `json:"name"`
	Qty             int               `json:"qty"`
	SizeCategory    SizeCategory      `json:"size_category"`
	Options         map[string]string `json:"options"`
	Personalization *Personalization  `json:"personalization,omitempty"`
	UnitPriceCents  int               `json:"unit_price_cents"`
	LineTotalCents  int               `json:"line_total_cents"`
	AddedAt         time.Time         `json:"added_at"`
}

// Order is a placed checkout.
type Order struct {
	ID         string      `json:"id"`
	TotalCents int         `json:"total_cents"`
	Status     string      `json:"status"` // "placed", "confirmed"
	Items      []OrderItem `json:"items"`
	CreatedAt  time.Time   `json:"created_at"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ProductID       string           `json:"product_id"`
	Name            string           `json:"name"`
	UnitPriceCents  int              `json:"unit_price_cents"`
	Qty             int              `json:"qty"`
	Options         string           `json:"options"` // "key=value;key=value" snapshot
	Personalization *Personalization `json:"personalization,omitempty"`
}

// Subscriber is one newsletter recipient.
// The token is stable for the subscriber's lifetime and backs the
// unsubscribe link, so no login is required to opt out.
type Subscriber struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Token          string     `json:"token"`
	SubscribedAt   time.Time  `json:"subscribed_at"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at,omitempty"`
}

// Campaign statuses.
const (
	CampaignDraft   = "DRAFT"
	CampaignSending = "SENDING"
	CampaignSent    = "SENT"
	CampaignFailed  = "FAILED"
)

// Campaign records one composed newsletter and its batch outcome.
type Campaign struct {
	ID          string    `json:"id"`
	Subject     string    `json:"subject"`
	Style       string    `json:"style"`
	Status      string    `json:"status"`
	SentCount   int       `json:"sent_count"`
	FailedCount int       `json:"failed_count"`
	Total       int       `json:"total"`
	CreatedAt   time.Time `json:"created_at"`
}

// SendLog records one per-recipient outcome within a campaign.
type SendLog struct {
	ID         string    `json:"id"`
	CampaignID string    `json:"campaign_id"`
	Email      string    `json:"email"`
	Ok         bool      `json:"ok"`
	Reason     string    `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Account is a customer profile.
type Account struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	ImageURL     string `json:"image_url"`
	PasswordHash string `json:"-"`
}
