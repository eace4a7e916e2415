package main

import (
	"errors"
	"regexp"
	"strings"
)

// SelectionKind tags how a group's selection is shaped. RADIO and SIZE
// groups hold a single code, ADDON groups hold zero or more. An ADDON-shaped
// value under a RADIO group is unrepresentable by construction.
type SelectionKind int

const (
	SelectSingle SelectionKind = iota
	SelectMulti
)

// SelectionValue is the selected value(s) for one option group.
type SelectionValue struct {
	Kind  SelectionKind
	Code  string   // SelectSingle
	Codes []string // SelectMulti
}

// Single wraps one selected code for a RADIO or SIZE group.
func Single(code string) SelectionValue {
	return SelectionValue{Kind: SelectSingle, Code: code}
}

// Multi wraps the selected codes of an ADDON group.
func Multi(codes ...string) SelectionValue {
	return SelectionValue{Kind: SelectMulti, Codes: codes}
}

// Selection maps option-group key to its current selection.
type Selection map[string]SelectionValue

// Quote is the computed price for a configured product. UnitPriceCents is
// the jersey price shown on its own (base + kids delta + RADIO deltas);
// add-ons only enter the line total.
type Quote struct {
	UnitPriceCents int `json:"unit_price_cents"`
	AddonCents     int `json:"addon_cents"`
	LineTotalCents int `json:"line_total_cents"`
}

// ComputeQuote prices the current configuration. Pure: recomputing after a
// size-category toggle or option change always starts from the base price,
// so deltas never accumulate across toggles.
func ComputeQuote(p *Product, category SizeCategory, sel Selection, qty int) Quote {
	if qty < 1 {
		qty = 1
	}

	unit := p.BasePriceCents
	if category == SizeKids && p.KidsDeltaCents != 0 {
		unit += p.KidsDeltaCents
	}

	addons := 0
	for _, g := range p.Groups {
		sv, picked := sel[g.Key]
		if !picked {
			continue
		}
		switch g.Type {
		case GroupRadio, GroupSize:
			if sv.Kind != SelectSingle || sv.Code == "" {
				continue
			}
			unit += valueDelta(g, sv.Code)
		case GroupAddon:
			if sv.Kind != SelectMulti {
				continue
			}
			for _, code := range sv.Codes {
				addons += valueDelta(g, code)
			}
		}
	}

	return Quote{
		UnitPriceCents: unit,
		AddonCents:     addons,
		LineTotalCents: (unit + addons) * qty,
	}
}

func valueDelta(g OptionGroup, code string) int {
	for _, v := range g.Values {
		if v.Code == code {
			return v.DeltaCents
		}
	}
	return 0
}

var (
	errNoSize = errors.New("select a size before adding to cart")
	errQty    = errors.New("quantity must be at least 1")
)

// ValidateCartInput is the pre-commit check: a size must be selected for the
// active category and the quantity must be at least one. Violations fail
// here, before anything touches the cart store.
func ValidateCartInput(p *Product, category SizeCategory, sel Selection, qty int) error {
	if qty < 1 {
		return errQty
	}

	var sizeGroup *OptionGroup
	for i := range p.Groups {
		if p.Groups[i].Type == GroupSize {
			sizeGroup = &p.Groups[i]
			break
		}
	}
	if sizeGroup == nil {
		// Products without a size group (accessories) only need a quantity.
		return nil
	}

	sv, ok := sel[sizeGroup.Key]
	if !ok || sv.Kind != SelectSingle || sv.Code == "" {
		return errNoSize
	}

	sizes := p.Sizes
	if category == SizeKids {
		sizes = p.KidsSizes
	}
	for _, s := range sizes {
		if strings.EqualFold(s.Size, sv.Code) {
			return nil
		}
	}
	return errNoSize
}

var (
	printNamePattern   = regexp.MustCompile(`[^A-Z '\-]`)
	printNumberPattern = regexp.MustCompile(`[^0-9]`)
)

const maxPrintNameLen = 14

// SanitizePersonalization restricts the printed name to uppercase letters,
// space, apostrophe and hyphen, and the number to at most two digits.
func SanitizePersonalization(p Personalization) Personalization {
	name := printNamePattern.ReplaceAllString(strings.ToUpper(strings.TrimSpace(p.Name)), "")
	if len(name) > maxPrintNameLen {
		name = name[:maxPrintNameLen]
	}
	number := printNumberPattern.ReplaceAllString(p.Number, "")
	if len(number) > 2 {
		number = number[:2]
	}
	return Personalization{Name: strings.TrimSpace(name), Number: number}
}

// WantsPersonalization reports whether the selected customization value
// implies printed name/number, detected by the "name-number" marker in the
// value code.
func WantsPersonalization(sel Selection) bool {
	sv, ok := sel["customization"]
	if !ok || sv.Kind != SelectSingle {
		return false
	}
	return strings.Contains(sv.Code, "name-number")
}

// FlattenSelection converts a typed selection into the wire shape used by
// the cart: multi-select values become comma-joined strings.
func FlattenSelection(sel Selection) map[string]string {
	out := make(map[string]string, len(sel))
	for key, sv := range sel {
		switch sv.Kind {
		case SelectSingle:
			if sv.Code != "" {
				out[key] = sv.Code
			}
		case SelectMulti:
			if len(sv.Codes) > 0 {
				out[key] = strings.Join(sv.Codes, ",")
			}
		}
	}
	return out
}
