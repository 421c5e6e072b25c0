package stmt

import (
	"strings"
	"unicode"
)

const (
	reasonWildcard  = "wildcard select disallowed"
	reasonUnbounded = "missing pagination bound"
)

// Policy holds the safety rules applied to every statement before it reaches
// the backend. The zero value enforces all of them.
type Policy struct {
	// AllowWildcardSelect permits `SELECT *`.
	AllowWildcardSelect bool
	// AllowUnboundedMutation permits UPDATE and DELETE without a WHERE clause
	// and raw DROP/ALTER statements.
	AllowUnboundedMutation bool
}

func (p Policy) check(b *Builder) error {
	if b.wildcard && !p.AllowWildcardSelect {
		return &UnsafeQueryError{Reason: reasonWildcard}
	}
	switch b.grammar {
	case grammarUpdate, grammarDelete:
		if !b.filtered && !p.AllowUnboundedMutation {
			return &UnsafeQueryError{Reason: reasonUnbounded}
		}
	}
	return nil
}

var mutatingKeywords = map[string]bool{
	"INSERT": true,
	"UPDATE": true,
	"DELETE": true,
	"DROP":   true,
	"ALTER":  true,
}

// CheckText applies the policy to statement text that was not produced by a
// Builder. Each `;` separated statement is checked on its own. Keywords inside
// comments, quoted literals and identifiers such as `and_records` are not
// mistaken for clauses.
func (p Policy) CheckText(statement string) error {
	for _, tokens := range splitStatements(tokenize(statement)) {
		if err := p.checkTokens(tokens); err != nil {
			return err
		}
	}
	return nil
}

func (p Policy) checkTokens(tokens []string) error {
	var mutating, unboundedKind, bounded, wildcard bool
	for i, tok := range tokens {
		switch {
		case mutatingKeywords[tok]:
			mutating = true
			// INSERT ... ON CONFLICT DO UPDATE is bounded by its INSERT.
			if tok != "INSERT" && !(tok == "UPDATE" && i > 0 && tokens[i-1] == "DO") {
				unboundedKind = true
			}
		case tok == "WHERE" || tok == "LIMIT" || tok == "OFFSET":
			bounded = true
		case tok == "SELECT":
			if selectsWildcard(tokens[i+1:]) {
				wildcard = true
			}
		}
	}

	if wildcard && (mutating || !p.AllowWildcardSelect) {
		return &UnsafeQueryError{Reason: reasonWildcard}
	}
	if unboundedKind && !bounded && !p.AllowUnboundedMutation {
		return &UnsafeQueryError{Reason: reasonUnbounded}
	}
	return nil
}

// splitStatements cuts tokens at every ";". Empty statements are dropped.
func splitStatements(tokens []string) [][]string {
	var out [][]string
	start := 0
	for i, tok := range tokens {
		if tok != ";" {
			continue
		}
		if i > start {
			out = append(out, tokens[start:i])
		}
		start = i + 1
	}
	if start < len(tokens) {
		out = append(out, tokens[start:])
	}
	return out
}

// selectsWildcard scans a projection list up to FROM for a bare `*`.
// COUNT(*) is not a wildcard.
func selectsWildcard(tokens []string) bool {
	for i, tok := range tokens {
		if tok == "FROM" || tok == ";" {
			return false
		}
		if tok == "*" && (i == 0 || tokens[i-1] != "(") {
			return true
		}
	}
	return false
}

// tokenize splits statement into upper-cased words and single punctuation
// characters. Quoted literals, quoted identifiers and dollar-quoted bodies
// become a single "?" token; comments are dropped.
func tokenize(statement string) []string {
	var tokens []string
	runes := []rune(statement)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
		case r == '-' && i+1 < len(runes) && runes[i+1] == '-':
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
		case r == '/' && i+1 < len(runes) && runes[i+1] == '*':
			end := indexRunes(runes, i+2, []rune("*/"))
			if end < 0 {
				return tokens
			}
			i = end + 1
		case r == '\'' || r == '"' || r == '`':
			j := i + 1
			for j < len(runes) {
				if runes[j] == r {
					if j+1 < len(runes) && runes[j+1] == r {
						j += 2
						continue
					}
					break
				}
				j++
			}
			tokens = append(tokens, "?")
			i = j
		case r == '$' && dollarTag(runes, i) != nil:
			tag := dollarTag(runes, i)
			end := indexRunes(runes, i+len(tag), tag)
			tokens = append(tokens, "?")
			if end < 0 {
				return tokens
			}
			i = end + len(tag) - 1
		case isWordRune(r):
			j := i
			for j < len(runes) && isWordRune(runes[j]) {
				j++
			}
			tokens = append(tokens, strings.ToUpper(string(runes[i:j])))
			i = j - 1
		default:
			tokens = append(tokens, string(r))
		}
	}
	return tokens
}

// dollarTag returns the opening `$tag$` of a dollar-quoted string starting at
// i, or nil. Positional parameters such as `$1` are not tags.
func dollarTag(runes []rune, i int) []rune {
	for j := i + 1; j < len(runes); j++ {
		switch r := runes[j]; {
		case r == '$':
			return runes[i : j+1]
		case r == '_' || unicode.IsLetter(r) || (j > i+1 && unicode.IsDigit(r)):
		default:
			return nil
		}
	}
	return nil
}

// indexRunes returns the index of sub in runes at or after from, or -1.
func indexRunes(runes []rune, from int, sub []rune) int {
	for i := from; i+len(sub) <= len(runes); i++ {
		match := true
		for k := range sub {
			if runes[i+k] != sub[k] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func isWordRune(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
