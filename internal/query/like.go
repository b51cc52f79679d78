package query

import (
	"regexp"
	"strings"
)

// MatchILike reports whether s matches the SQL LIKE pattern, ignoring case.
//
// % matches any run of characters, _ matches exactly one, and a backslash
// makes the next character literal (PostgreSQL's default escape).
func MatchILike(pattern, s string) bool {
	var b strings.Builder
	b.WriteString("(?is)^")

	escaped := false
	for _, r := range pattern {
		switch {
		case escaped:
			b.WriteString(regexp.QuoteMeta(string(r)))
			escaped = false
		case r == '\\':
			escaped = true
		case r == '%':
			b.WriteString(".*")
		case r == '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	if escaped {
		b.WriteString(regexp.QuoteMeta(`\`))
	}
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return false
	}
	return re.MatchString(s)
}

// Contains wraps term in % wildcards for a substring ILIKE.
func Contains(term string) string {
	return "%" + term + "%"
}
