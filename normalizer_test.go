package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveFromTeamField(t *testing.T) {
	n := NewClubNormalizer()

	tests := []struct {
		team string
		name string
		want string
	}{
		{"Real Madrid", "", "Real Madrid"},
		{"Real Madrid Home", "", "Real Madrid"},
		{"Real Madrid White Home Jersey", "", "Real Madrid"},
		{"  Barcelona  ", "", "FC Barcelona"},
		{"Liverpool Red", "", "Liverpool"},
		{"West Ham Claret & Blue", "", "West Ham United"},
		{"Spurs Navy", "", "Tottenham Hotspur"},
		{"Japan Samurai Sky-Blue", "", "Japan"},
		{"PSG Navy", "", "Paris Saint-Germain"},
		{"SL Benfica Red", "", "SL Benfica"},
		{"Argentina Sky-Blue", "", "Argentina"},
		{"Atlético Madrid", "", "Atlético Madrid"},
		// Ampersand cuts off the secondary color descriptor.
		{"Red & Black", "", "Red"},
		// The sentinel team values fall through to the name.
		{"CLUB", "Arsenal Away Jersey 25/26", "Arsenal"},
		{"team", "Chelsea Home Kit", "Chelsea"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, n.Resolve(tt.team, tt.name), "Resolve(%q, %q)", tt.team, tt.name)
	}
}

func TestResolveFromProductName(t *testing.T) {
	n := NewClubNormalizer()

	tests := []struct {
		name string
		want string
	}{
		{"Real Madrid Home Jersey 25/26", "Real Madrid"},
		{"Feyenoord 25/26 Third Shirt", "Feyenoord"},
		{"Bayern Munich Third Jersey", "Bayern Munich"},
		{"Wrexham Home Jersey 25/26", "Wrexham"},
		{"Japan Concept Jersey Samurai Edition", "Japan"},
		{"Inter Milan Retro Jersey 1998", "Inter Milan"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, n.Resolve("", tt.name), "Resolve(%q)", tt.name)
	}
}

// A bare "Madrid" must never be promoted to "Real Madrid"; only the full
// two-word pattern may produce it.
func TestResolveNeverFabricatesRealMadrid(t *testing.T) {
	n := NewClubNormalizer()

	assert.NotEqual(t, "Real Madrid", n.Resolve("", "Madrid City Store Jersey"))
	assert.NotEqual(t, "Real Madrid", n.Resolve("Madrid", ""))
	assert.Equal(t, "Real Madrid", n.Resolve("", "Real Madrid Home Jersey 25/26"))
}

func TestResolveHardClamp(t *testing.T) {
	n := NewClubNormalizer()

	// Unknown multi-word residue collapses to its first token.
	assert.Equal(t, "Madrid", n.Resolve("Madrid City Store", ""))
	// Known multi-word starters keep the string whole.
	assert.Equal(t, "Deportivo La Coruna", n.Resolve("Deportivo La Coruna", ""))
	assert.Equal(t, "Red Star Belgrade", n.Resolve("Red Star Belgrade", ""))
}

func TestResolveIdempotent(t *testing.T) {
	n := NewClubNormalizer()

	inputs := []string{
		"Real Madrid Home Jersey 25/26",
		"Japan Samurai Sky-Blue",
		"West Ham Claret & Blue",
		"Madrid City Store Jersey",
		"Deportivo La Coruna",
		"Spurs Navy",
		"Wrexham Home Jersey",
		"",
		"   ",
		"CLUB",
	}
	for _, in := range inputs {
		once := n.Resolve(in, "")
		assert.Equal(t, once, n.Resolve(once, ""), "not idempotent for %q", in)
	}
}

func TestResolveTotalSafety(t *testing.T) {
	n := NewClubNormalizer()

	inputs := [][2]string{
		{"", ""},
		{"   ", "  "},
		{"CLUB", ""},
		{"team", ""},
		{"Team", "team jersey"},
		{"&", "&&&"},
		{"25/26", "2026"},
		{"Home Away Third", "Jersey Kit Training"},
	}
	for _, in := range inputs {
		got := n.Resolve(in[0], in[1])
		assert.NotEqual(t, "Club", got)
		assert.NotEqual(t, "Team", got)
	}
}

// Patterns must be ordered so multi-word clubs win before any one-word
// pattern could claim a shared token.
func TestClubPatternOrdering(t *testing.T) {
	n := NewClubNormalizer()

	assert.Equal(t, "Manchester United", n.Resolve("Manchester United", ""))
	assert.Equal(t, "Manchester City", n.Resolve("Manchester City", ""))
	assert.Equal(t, "Inter Milan", n.Resolve("Inter Milan", ""))
	assert.Equal(t, "AC Milan", n.Resolve("AC Milan", ""))
	assert.Equal(t, "Real Sociedad", n.Resolve("Real Sociedad", ""))
	assert.Equal(t, "Real Betis", n.Resolve("Real Betis", ""))
}
