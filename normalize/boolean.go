package normalize

import "strings"

// booleanLexicon maps case-insensitive textual and symbolic boolean forms
// to their value. The set is fixed: matching is exact, never fuzzy.
var booleanLexicon = map[string]bool{
	"yes":   true,
	"no":    false,
	"true":  true,
	"false": false,
	"1":     true,
	"0":     false,
	"x":     true,
	"☑":     true,
	"✓":     true,
	"✔":     true,
	"✅":    true,
	"☐":     false,
	"✗":     false,
	"✘":     false,
	"❌":    false,
	"□":     false,
}

// parseBoolean matches s against the boolean lexicon. Matches are exact
// after case folding; anything else is not a boolean.
func parseBoolean(s string) (value, ok bool) {
	v, ok := booleanLexicon[strings.ToLower(strings.TrimSpace(s))]
	return v, ok
}
