package main

import "regexp"

// Club dictionaries shared by the normalizer, the category listing and the
// featured grouping. Category pages used to carry their own copies of these
// lists with small drifts; this file is the single source now.

// ClubPattern maps a compiled pattern to the canonical club label.
// First match wins, so order matters: two-word clubs must come before any
// pattern that could match one of their words alone ("Real Madrid" before
// anything that would accept a bare "Madrid").
type ClubPattern struct {
	Pattern   *regexp.Regexp
	Canonical string
}

// BuildClubPatterns returns the ordered regex → canonical-club dictionary.
func BuildClubPatterns() []ClubPattern {
	return []ClubPattern{
		{regexp.MustCompile(`(?i)\breal\s*madrid\b`), "Real Madrid"},
		{regexp.MustCompile(`(?i)\batl[eé]tico\s*(de\s*)?madrid\b`), "Atlético Madrid"},
		{regexp.MustCompile(`(?i)\bmanchester\s*united\b`), "Manchester United"},
		{regexp.MustCompile(`(?i)\bman\s*utd\b`), "Manchester United"},
		{regexp.MustCompile(`(?i)\bmanchester\s*city\b`), "Manchester City"},
		{regexp.MustCompile(`(?i)\bman\s*city\b`), "Manchester City"},
		{regexp.MustCompile(`(?i)\b(fc\s*)?barcelona\b`), "FC Barcelona"},
		{regexp.MustCompile(`(?i)\bbar[cç]a\b`), "FC Barcelona"},
		{regexp.MustCompile(`(?i)\bbayern\s*(munich|münchen|munchen)?\b`), "Bayern Munich"},
		{regexp.MustCompile(`(?i)\bborussia\s*dortmund\b`), "Borussia Dortmund"},
		{regexp.MustCompile(`(?i)\bbvb\b`), "Borussia Dortmund"},
		{regexp.MustCompile(`(?i)\bparis\s*saint[\s-]*germain\b`), "Paris Saint-Germain"},
		{regexp.MustCompile(`(?i)\bpsg\b`), "Paris Saint-Germain"},
		{regexp.MustCompile(`(?i)\bsl?\s*benfica\b`), "SL Benfica"},
		{regexp.MustCompile(`(?i)\bsporting\s*(cp|lisbon|clube)\b`), "Sporting CP"},
		{regexp.MustCompile(`(?i)\bfc\s*porto\b`), "FC Porto"},
		{regexp.MustCompile(`(?i)\binter\s*(milan|milano)\b`), "Inter Milan"},
		{regexp.MustCompile(`(?i)\bac\s*milan\b`), "AC Milan"},
		{regexp.MustCompile(`(?i)\bjuventus\b`), "Juventus"},
		{regexp.MustCompile(`(?i)\bjuve\b`), "Juventus"},
		{regexp.MustCompile(`(?i)\bas\s*roma\b`), "AS Roma"},
		{regexp.MustCompile(`(?i)\bss?c?\s*napoli\b`), "SSC Napoli"},
		{regexp.MustCompile(`(?i)\bliverpool\b`), "Liverpool"},
		{regexp.MustCompile(`(?i)\barsenal\b`), "Arsenal"},
		{regexp.MustCompile(`(?i)\bchelsea\b`), "Chelsea"},
		{regexp.MustCompile(`(?i)\btottenham\b`), "Tottenham Hotspur"},
		{regexp.MustCompile(`(?i)\bspurs\b`), "Tottenham Hotspur"},
		{regexp.MustCompile(`(?i)\bnewcastle\b`), "Newcastle United"},
		{regexp.MustCompile(`(?i)\bwest\s*ham\b`), "West Ham United"},
		{regexp.MustCompile(`(?i)\baston\s*villa\b`), "Aston Villa"},
		{regexp.MustCompile(`(?i)\bleeds\b`), "Leeds United"},
		{regexp.MustCompile(`(?i)\beverton\b`), "Everton"},
		{regexp.MustCompile(`(?i)\bceltic\b`), "Celtic"},
		{regexp.MustCompile(`(?i)\brangers\b`), "Rangers"},
		{regexp.MustCompile(`(?i)\bajax\b`), "Ajax"},
		{regexp.MustCompile(`(?i)\bfeyenoord\b`), "Feyenoord"},
		{regexp.MustCompile(`(?i)\bpsv\b`), "PSV Eindhoven"},
		{regexp.MustCompile(`(?i)\bbayer\s*leverkusen\b`), "Bayer Leverkusen"},
		{regexp.MustCompile(`(?i)\brb\s*leipzig\b`), "RB Leipzig"},
		{regexp.MustCompile(`(?i)\bathletic\s*(club|bilbao)\b`), "Athletic Bilbao"},
		{regexp.MustCompile(`(?i)\breal\s*sociedad\b`), "Real Sociedad"},
		{regexp.MustCompile(`(?i)\breal\s*betis\b`), "Real Betis"},
		{regexp.MustCompile(`(?i)\bsevilla\b`), "Sevilla"},
		{regexp.MustCompile(`(?i)\bvalencia\b`), "Valencia"},
		{regexp.MustCompile(`(?i)\bvillarreal\b`), "Villarreal"},
		{regexp.MustCompile(`(?i)\bol(ympique)?\s*marseille\b`), "Olympique Marseille"},
		{regexp.MustCompile(`(?i)\bol(ympique)?\s*lyon(nais)?\b`), "Olympique Lyonnais"},
		{regexp.MustCompile(`(?i)\bas\s*monaco\b`), "AS Monaco"},
		{regexp.MustCompile(`(?i)\bgalatasaray\b`), "Galatasaray"},
		{regexp.MustCompile(`(?i)\bfenerbah[cç]e\b`), "Fenerbahçe"},
		{regexp.MustCompile(`(?i)\bbe[sş]ikta[sş]\b`), "Beşiktaş"},
		{regexp.MustCompile(`(?i)\bboca\s*juniors\b`), "Boca Juniors"},
		{regexp.MustCompile(`(?i)\briver\s*plate\b`), "River Plate"},
		{regexp.MustCompile(`(?i)\bflamengo\b`), "Flamengo"},
		{regexp.MustCompile(`(?i)\bsantos\b`), "Santos"},
		{regexp.MustCompile(`(?i)\bal[\s-]*nassr\b`), "Al Nassr"},
		{regexp.MustCompile(`(?i)\bal[\s-]*hilal\b`), "Al Hilal"},
		{regexp.MustCompile(`(?i)\binter\s*miami\b`), "Inter Miami"},
		{regexp.MustCompile(`(?i)\bla\s*galaxy\b`), "LA Galaxy"},
		// National teams
		{regexp.MustCompile(`(?i)\bargentina\b`), "Argentina"},
		{regexp.MustCompile(`(?i)\bbrazil\b`), "Brazil"},
		{regexp.MustCompile(`(?i)\bbrasil\b`), "Brazil"},
		{regexp.MustCompile(`(?i)\bfrance\b`), "France"},
		{regexp.MustCompile(`(?i)\bengland\b`), "England"},
		{regexp.MustCompile(`(?i)\bspain\b`), "Spain"},
		{regexp.MustCompile(`(?i)\bespa[nñ]a\b`), "Spain"},
		{regexp.MustCompile(`(?i)\bgermany\b`), "Germany"},
		{regexp.MustCompile(`(?i)\bdeutschland\b`), "Germany"},
		{regexp.MustCompile(`(?i)\bportugal\b`), "Portugal"},
		{regexp.MustCompile(`(?i)\bitaly\b`), "Italy"},
		{regexp.MustCompile(`(?i)\bitalia\b`), "Italy"},
		{regexp.MustCompile(`(?i)\bnetherlands\b`), "Netherlands"},
		{regexp.MustCompile(`(?i)\bholland\b`), "Netherlands"},
		{regexp.MustCompile(`(?i)\bcroatia\b`), "Croatia"},
		{regexp.MustCompile(`(?i)\bjapan\b`), "Japan"},
		{regexp.MustCompile(`(?i)\bmexico\b`), "Mexico"},
		{regexp.MustCompile(`(?i)\bmorocco\b`), "Morocco"},
		{regexp.MustCompile(`(?i)\bnigeria\b`), "Nigeria"},
		{regexp.MustCompile(`(?i)\bsenegal\b`), "Senegal"},
		{regexp.MustCompile(`(?i)\buruguay\b`), "Uruguay"},
		{regexp.MustCompile(`(?i)\bcolombia\b`), "Colombia"},
		{regexp.MustCompile(`(?i)\busa\b`), "USA"},
		{regexp.MustCompile(`(?i)\bunited\s*states\b`), "USA"},
		{regexp.MustCompile(`(?i)\bwales\b`), "Wales"},
		{regexp.MustCompile(`(?i)\bscotland\b`), "Scotland"},
		{regexp.MustCompile(`(?i)\bireland\b`), "Ireland"},
		{regexp.MustCompile(`(?i)\bbelgium\b`), "Belgium"},
		{regexp.MustCompile(`(?i)\bdenmark\b`), "Denmark"},
		{regexp.MustCompile(`(?i)\bsweden\b`), "Sweden"},
		{regexp.MustCompile(`(?i)\bnorway\b`), "Norway"},
		{regexp.MustCompile(`(?i)\bpoland\b`), "Poland"},
		{regexp.MustCompile(`(?i)\bserbia\b`), "Serbia"},
		{regexp.MustCompile(`(?i)\bturkey\b`), "Turkey"},
		{regexp.MustCompile(`(?i)\bghana\b`), "Ghana"},
		{regexp.MustCompile(`(?i)\bcameroon\b`), "Cameroon"},
		{regexp.MustCompile(`(?i)\balgeria\b`), "Algeria"},
		{regexp.MustCompile(`(?i)\begypt\b`), "Egypt"},
		{regexp.MustCompile(`(?i)\bsouth\s*korea\b`), "South Korea"},
		{regexp.MustCompile(`(?i)\bsaudi\s*arabia\b`), "Saudi Arabia"},
		{regexp.MustCompile(`(?i)\baustralia\b`), "Australia"},
		{regexp.MustCompile(`(?i)\bcanada\b`), "Canada"},
	}
}

// BuildVariantWords returns kit-variant tokens stripped from the tail of a
// team string. Includes RETRO: some pages stripped it and some did not, the
// unified list keeps it.
func BuildVariantWords() map[string]bool {
	return wordSet(
		"home", "away", "third", "fourth", "primary", "secondary", "alternate",
		"kit", "jersey", "shirt", "top", "edition", "version", "concept",
		"training", "prematch", "pre-match", "goalkeeper", "gk", "keeper",
		"kids", "junior", "youth", "women", "womens", "player", "fan",
		"authentic", "replica", "retro", "vintage", "classic", "anniversary",
		"special", "limited", "longsleeve", "sleeve", "ls",
	)
}

// BuildColorWords returns trailing color tokens stripped from team strings.
func BuildColorWords() map[string]bool {
	return wordSet(
		"red", "blue", "navy", "sky-blue", "skyblue", "white", "black",
		"green", "yellow", "gold", "golden", "orange", "purple", "pink",
		"grey", "gray", "silver", "maroon", "claret", "teal", "turquoise",
		"beige", "cream", "brown", "crimson", "scarlet", "azure", "indigo",
		"violet", "mint", "olive", "burgundy", "bordeaux", "charcoal",
		"graphite", "neon", "volt", "dark", "light",
	)
}

// BuildDescriptorWords returns marketing descriptor tokens. These appear both
// at the tail of team strings and as a second token after the club word.
func BuildDescriptorWords() map[string]bool {
	return wordSet(
		"shadow", "samurai", "dragon", "elite", "legend", "icon", "iconic",
		"heritage", "legacy", "origin", "storm", "thunder", "blaze", "flame",
		"phantom", "stealth", "fusion", "wave", "pulse", "prime", "apex",
		"infinity", "eclipse", "mirage", "aurora", "nova", "cosmic", "astro",
		"urban", "street", "culture", "art", "graffiti", "camo", "mosaic",
		"geometric", "gradient", "pixel", "glitch", "chrome", "carbon",
	)
}

// BuildMultiWordStarters returns first tokens that legitimately begin a
// multi-word club name. The hard clamp leaves those strings alone instead of
// cutting them to one token.
func BuildMultiWordStarters() map[string]bool {
	return wordSet(
		"real", "atlético", "atletico", "manchester", "fc", "cf", "sc", "ac",
		"as", "ss", "ssc", "sl", "rb", "cd", "rcd", "afc", "vfb", "vfl",
		"sporting", "athletic", "borussia", "bayer", "inter", "olympique",
		"paris", "west", "aston", "crystal", "leeds", "newcastle", "boca",
		"river", "al", "la", "los", "san", "santa", "saint", "st", "deportivo",
		"racing", "union", "dynamo", "dinamo", "lokomotiv", "red", "new",
		"south", "saudi", "united",
	)
}

// BuildNameBoundaryWords returns the cut markers used when inferring a club
// from a product display name: everything from the first boundary word on is
// product wording, not club wording.
func BuildNameBoundaryWords() []string {
	return []string{
		"home", "away", "third", "fourth", "jersey", "shirt", "kit",
		"training", "prematch", "pre-match", "goalkeeper", "retro", "concept",
		"special", "anniversary", "world cup", "euro", "version", "edition",
		"player", "fan", "authentic", "replica", "longsleeve", "women",
		"kids",
	}
}

// seasonTokenPattern matches season markers like "25/26", "2025/26", "2026".
var seasonTokenPattern = regexp.MustCompile(`\b(\d{2,4}\s*/\s*\d{2,4}|(19|20)\d{2})\b`)

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
