package react

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// identifierPrefix is prepended when the derived name does not start
	// with a letter or underscore.
	identifierPrefix = "Form"
	// fallbackIdentifier is used when nothing derivable survives.
	fallbackIdentifier = "GeneratedForm"
)

// componentIdentifier derives the generated component's name from the form
// title, falling back to the form id. Invalid characters are stripped and the
// remaining words concatenated with their first letter capitalised.
func componentIdentifier(title, id string) string {
	name := identifierFrom(title)
	if name == "" {
		name = identifierFrom(id)
	}
	if name == "" {
		return fallbackIdentifier
	}

	first, _ := utf8.DecodeRuneInString(name)
	if !unicode.IsLetter(first) && first != '_' {
		name = identifierPrefix + name
	}
	return name
}

func identifierFrom(raw string) string {
	var b strings.Builder
	newWord := true
	for _, r := range raw {
		switch {
		case unicode.IsLetter(r) || r == '_':
			if newWord {
				b.WriteRune(unicode.ToUpper(r))
				newWord = false
			} else {
				b.WriteRune(r)
			}
		case unicode.IsDigit(r):
			b.WriteRune(r)
			newWord = false
		default:
			// Separators and symbols end the current word.
			newWord = true
		}
	}
	return b.String()
}
