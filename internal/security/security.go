// Package security rates secrets typed by the user.
package security

import "unicode"

// Upper bounds of each strength level. A rank above Great is Superlumenal.
const (
	StrengthNone         = 0.2
	StrengthWeak         = 0.5
	StrengthMedium       = 0.65
	StrengthStrong       = 0.75
	StrengthGreat        = 0.85
	StrengthSuperlumenal = 1
)

// saturation is the length (and unique character count) that earns the full
// score for that factor.
const saturation = 14

// Rank is the rated strength of a secret.
type Rank struct {
	Label string  `json:"label"`
	Rank  float64 `json:"rank"`
}

// Strength rates password between 0 and 1. Length counts 30%, the number of
// distinct characters 45% and the mix of lower case, upper case, digits and
// symbols 25%.
func Strength(password string) Rank {
	if password == "" {
		return Rank{Label: "None"}
	}

	var lower, upper, digit, special bool
	unique := make(map[rune]struct{})
	length := 0
	for _, r := range password {
		length++
		unique[r] = struct{}{}
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case !unicode.IsSpace(r):
			special = true
		}
	}

	classes := 0.0
	for _, present := range []bool{lower, upper, digit, special} {
		if present {
			classes += 0.25
		}
	}
	strength := saturate(length)*0.3 + saturate(len(unique))*0.45 + classes*0.25
	return Rank{Label: Label(strength), Rank: strength}
}

// Label names the level of a rank.
func Label(rank float64) string {
	switch {
	case rank <= StrengthNone:
		return "None"
	case rank <= StrengthWeak:
		return "Weak"
	case rank <= StrengthMedium:
		return "Medium"
	case rank <= StrengthStrong:
		return "Strong"
	case rank <= StrengthGreat:
		return "Great"
	default:
		return "Superlumenal"
	}
}

func saturate(n int) float64 {
	if n > saturation {
		return 1
	}
	return float64(n) / saturation
}
