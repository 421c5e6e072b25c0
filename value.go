package stmt

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

type valueContext int

const (
	// conditionContext renders numeric values bare and everything else quoted.
	conditionContext valueContext = iota
	// dataContext always renders a quoted string (VALUES and SET).
	dataContext
)

// literal is a serialized value: the text inlined into SQL() and the argument
// bound to its placeholder in Template().
type literal struct {
	text string
	arg  any
}

func serialize(value string, ctx valueContext) literal {
	if ctx == conditionContext {
		if arg, ok := numericArg(value); ok {
			return literal{text: value, arg: arg}
		}
	}
	return literal{text: Quote(value), arg: value}
}

// isDecimal reports whether value is a plain decimal number: an optional
// sign, digits with at most one point, and an optional exponent. Hex, octal
// and underscore forms accepted by strconv are excluded.
func isDecimal(value string) bool {
	i := 0
	if i < len(value) && (value[i] == '+' || value[i] == '-') {
		i++
	}
	digits, point := 0, false
mantissa:
	for ; i < len(value); i++ {
		switch c := value[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.' && !point:
			point = true
		default:
			break mantissa
		}
	}
	if digits == 0 {
		return false
	}
	if i == len(value) {
		return true
	}
	if value[i] != 'e' && value[i] != 'E' {
		return false
	}
	i++
	if i < len(value) && (value[i] == '+' || value[i] == '-') {
		i++
	}
	if i == len(value) {
		return false
	}
	for ; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}
	return true
}

// numericArg classifies value and returns the argument bound for it: int64
// for integers that fit, float64 for other finite numbers. Integers too large
// for int64 are bound as their text so no digits are lost.
func numericArg(value string) (any, bool) {
	if !isDecimal(value) {
		return nil, false
	}
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, false
	}
	if math.IsInf(f, 0) {
		return nil, false
	}
	if !strings.ContainsAny(value, ".eE") {
		return value, true
	}
	return f, true
}

// Quote wraps value in single quotes, doubling any embedded quote.
func Quote(value string) string {
	var sb strings.Builder
	sb.Grow(len(value) + 2)
	sb.WriteByte('\'')
	for _, r := range value {
		if r == '\'' {
			sb.WriteString("''")
			continue
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('\'')
	return sb.String()
}
