package match

import (
	"strings"
	"unicode"

	"tendercv/internal"
)

// QualificationMatches reports whether a qualification text satisfies the
// role's keyword filter. The diploma exclusion short-circuits before any
// keyword is considered; an empty keyword set matches everything.
func QualificationMatches(qualification string, role internal.RoleDefinition) bool {
	text := strings.ToLower(qualification)

	if !role.IncludeDiploma && strings.Contains(text, "diploma") {
		return false
	}

	if len(role.Keywords) == 0 {
		return true
	}

	var tokens []string
	if role.Mode == internal.MatchExactWord {
		tokens = Tokenize(text)
	}

	for _, keyword := range role.Keywords {
		kw := strings.ToLower(strings.TrimSpace(keyword))
		if kw == "" {
			continue
		}
		switch role.Mode {
		case internal.MatchExactWord:
			for _, token := range tokens {
				if token == kw {
					return true
				}
			}
		default:
			if strings.Contains(text, kw) {
				return true
			}
		}
	}
	return false
}

// Tokenize splits a qualification text on every non-alphanumeric rune, so
// "B.E. Civil" yields [b e civil] and "civilian" stays one token.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
