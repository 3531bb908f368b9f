package normalize

import (
	"sort"
	"strings"
	"unicode"
)

// currencySymbols maps currency symbols and common prefixes to ISO codes.
// Multi-rune symbols are matched before their single-rune prefixes.
var currencySymbols = map[string]string{
	"US$": "USD",
	"R$":  "BRL",
	"A$":  "AUD",
	"C$":  "CAD",
	"NZ$": "NZD",
	"HK$": "HKD",
	"S$":  "SGD",
	"$":   "USD",
	"€":   "EUR",
	"£":   "GBP",
	"¥":   "JPY",
	"₹":   "INR",
	"₩":   "KRW",
	"₽":   "RUB",
	"₺":   "TRY",
	"₫":   "VND",
	"₪":   "ILS",
	"฿":   "THB",
	"zł":  "PLN",
	"kr":  "SEK",
	"Fr":  "CHF",
}

// currencyCodes is the recognized set of ISO 4217 codes accepted as a
// textual prefix or suffix, e.g. "USD 1,200" or "1.200,50 EUR".
var currencyCodes = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true, "CNY": true,
	"CHF": true, "CAD": true, "AUD": true, "NZD": true, "SEK": true,
	"NOK": true, "DKK": true, "PLN": true, "RUB": true, "TRY": true,
	"INR": true, "KRW": true, "BRL": true, "MXN": true, "ZAR": true,
	"SGD": true, "HKD": true, "THB": true, "VND": true, "ILS": true,
	"AED": true, "SAR": true, "IQD": true,
}

// CurrencyDetector recognizes currency symbols and ISO codes inside a text
// value and extracts the numeric payload.
type CurrencyDetector struct {
	symbols []string // symbol keys sorted longest-first for greedy matching
}

// NewCurrencyDetector creates a detector over the built-in symbol and
// code tables.
func NewCurrencyDetector() *CurrencyDetector {
	symbols := make([]string, 0, len(currencySymbols))
	for sym := range currencySymbols {
		symbols = append(symbols, sym)
	}
	sort.Slice(symbols, func(i, j int) bool {
		if len(symbols[i]) != len(symbols[j]) {
			return len(symbols[i]) > len(symbols[j])
		}
		return symbols[i] < symbols[j]
	})
	return &CurrencyDetector{symbols: symbols}
}

// Detect looks for a currency symbol or ISO code at either end of s.
// It returns the ISO code and the remaining payload (the presumed numeric
// part, untrimmed of separators) when one is found.
func (d *CurrencyDetector) Detect(s string) (code, payload string, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", "", false
	}

	// Leading sign stays with the payload: "-$1,234" and "$-1,234" are
	// both negative USD.
	sign := ""
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		sign = s[:1]
		s = strings.TrimSpace(s[1:])
	}

	for _, sym := range d.symbols {
		if rest, found := strings.CutPrefix(s, sym); found && !letterAdjacent(sym, rest) {
			rest = strings.TrimSpace(rest)
			if hasDigits(rest) {
				return currencySymbols[sym], sign + rest, true
			}
		}
		if rest, found := strings.CutSuffix(s, sym); found && !letterAdjacent(rest, sym) {
			rest = strings.TrimSpace(rest)
			if hasDigits(rest) {
				return currencySymbols[sym], sign + rest, true
			}
		}
	}

	if len(s) > 4 {
		if head := strings.ToUpper(s[:3]); currencyCodes[head] && isBoundary(s[3]) {
			rest := strings.TrimSpace(s[3:])
			if hasDigits(rest) {
				return head, sign + rest, true
			}
		}
		if tail := strings.ToUpper(s[len(s)-3:]); currencyCodes[tail] && isBoundary(s[len(s)-4]) {
			rest := strings.TrimSpace(s[:len(s)-3])
			if hasDigits(rest) {
				return tail, sign + rest, true
			}
		}
	}

	return "", "", false
}

// letterAdjacent reports whether left ends and right begins with letters,
// which would make a lettered symbol part of a longer word ("krill").
func letterAdjacent(left, right string) bool {
	if left == "" || right == "" {
		return false
	}
	lr := []rune(left)
	rr := []rune(right)
	return unicode.IsLetter(lr[len(lr)-1]) && unicode.IsLetter(rr[0])
}

func hasDigits(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// isBoundary reports whether b separates an ISO code from its payload.
func isBoundary(b byte) bool {
	return b == ' ' || b == '\t' || (b >= '0' && b <= '9') || b == '.' || b == ',' || b == '-'
}
