package main

import (
	"strings"
)

// ClubNormalizer derives a canonical club label from the noisy team field
// and product names. It is pure and total: any input yields a string, worst
// case the empty string. Callers must not substitute a placeholder like
// "Club" when it comes back empty.
type ClubNormalizer struct {
	patterns          []ClubPattern
	variantWords      map[string]bool
	colorWords        map[string]bool
	descriptorWords   map[string]bool
	multiWordStarters map[string]bool
	boundaryWords     []string
}

// NewClubNormalizer creates a normalizer with the unified dictionaries.
func NewClubNormalizer() *ClubNormalizer {
	return &ClubNormalizer{
		patterns:          BuildClubPatterns(),
		variantWords:      BuildVariantWords(),
		colorWords:        BuildColorWords(),
		descriptorWords:   BuildDescriptorWords(),
		multiWordStarters: BuildMultiWordStarters(),
		boundaryWords:     BuildNameBoundaryWords(),
	}
}

// clubEngine is the shared instance used by handlers and the featured
// grouping at query time.
var clubEngine = NewClubNormalizer()

// Resolve returns the canonical club label for a product, preferring the
// team field and falling back to inference from the display name.
func (n *ClubNormalizer) Resolve(team, name string) string {
	if candidate, ok := n.usableTeam(team); ok {
		if club := n.resolveCandidate(candidate); club != "" {
			return club
		}
	}

	// Team field empty or unusable: try the dictionary directly against the
	// display name before carving a candidate out of it.
	if club := n.matchClub(name); club != "" {
		return club
	}
	if candidate := n.candidateFromName(name); candidate != "" {
		return n.resolveCandidate(candidate)
	}
	return ""
}

// usableTeam trims and collapses whitespace and rejects the placeholder
// sentinels sellers leave in the team field.
func (n *ClubNormalizer) usableTeam(team string) (string, bool) {
	candidate := strings.Join(strings.Fields(team), " ")
	if candidate == "" {
		return "", false
	}
	switch strings.ToUpper(candidate) {
	case "CLUB", "TEAM":
		return "", false
	}
	return candidate, true
}

// resolveCandidate runs a cleaned-up candidate through ampersand cut,
// trailing-token strip, the regex dictionary and the hard clamp.
func (n *ClubNormalizer) resolveCandidate(candidate string) string {
	// "Red & Black" style strings carry a secondary color after the
	// ampersand; only the part before it can name a club.
	if idx := strings.Index(candidate, "&"); idx >= 0 {
		candidate = strings.TrimSpace(candidate[:idx])
	}

	candidate = n.stripTrailingNoise(candidate)
	if candidate == "" {
		return ""
	}

	if club := n.matchClub(candidate); club != "" {
		return club
	}

	return n.safeResult(n.hardClamp(candidate))
}

// stripTrailingNoise removes variant, color and descriptor tokens from the
// tail, one at a time, stopping at the first token that matches none of the
// three sets or when one token remains.
func (n *ClubNormalizer) stripTrailingNoise(s string) string {
	tokens := strings.Fields(s)
	for len(tokens) > 1 {
		last := normalizeToken(tokens[len(tokens)-1])
		if !n.variantWords[last] && !n.colorWords[last] && !n.descriptorWords[last] {
			break
		}
		tokens = tokens[:len(tokens)-1]
	}
	return strings.Join(tokens, " ")
}

// matchClub runs the ordered dictionary. First match wins; the order in
// BuildClubPatterns keeps "Real Madrid" from ever being produced by a bare
// "Madrid".
func (n *ClubNormalizer) matchClub(s string) string {
	if s == "" {
		return ""
	}
	for _, cp := range n.patterns {
		if cp.Pattern.MatchString(s) {
			return cp.Canonical
		}
	}
	return ""
}

// hardClamp collapses multi-word residue that survived the dictionary. A
// known multi-word starter keeps the string whole; anything else is cut to
// its first token so the normalizer never fabricates a multi-word name.
func (n *ClubNormalizer) hardClamp(s string) string {
	tokens := strings.Fields(s)
	switch len(tokens) {
	case 0:
		return ""
	case 1:
		return tokens[0]
	}
	if n.multiWordStarters[strings.ToLower(normalizeToken(tokens[0]))] {
		return s
	}
	return tokens[0]
}

// candidateFromName carves a club candidate out of a product display name:
// cut at the first boundary word, drop season tokens, then strip trailing
// noise the same way the team path does.
func (n *ClubNormalizer) candidateFromName(name string) string {
	candidate := strings.Join(strings.Fields(name), " ")
	if candidate == "" {
		return ""
	}

	lower := strings.ToLower(candidate)
	cut := len(candidate)
	for _, boundary := range n.boundaryWords {
		if idx := indexWord(lower, boundary); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	candidate = strings.TrimSpace(candidate[:cut])

	candidate = seasonTokenPattern.ReplaceAllString(candidate, " ")
	candidate = strings.Join(strings.Fields(candidate), " ")
	return candidate
}

// safeResult keeps the sentinels out of the output regardless of the path
// that produced them.
func (n *ClubNormalizer) safeResult(s string) string {
	switch strings.ToLower(s) {
	case "club", "team", "":
		return ""
	}
	return s
}

// normalizeToken lowercases and strips surrounding punctuation for word-set
// lookups.
func normalizeToken(token string) string {
	return strings.Trim(strings.ToLower(token), ".,;:!?()[]'\"-")
}

// indexWord finds a case-folded whole-word occurrence of word in s (both
// already lowercased). Returns -1 when absent.
func indexWord(s, word string) int {
	from := 0
	for {
		idx := strings.Index(s[from:], word)
		if idx < 0 {
			return -1
		}
		idx += from
		end := idx + len(word)
		beforeOK := idx == 0 || !isWordChar(s[idx-1])
		afterOK := end == len(s) || !isWordChar(s[end])
		if beforeOK && afterOK {
			return idx
		}
		from = idx + 1
	}
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
