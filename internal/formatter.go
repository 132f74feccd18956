package internal

import (
	"regexp"
	"strings"
)

// Rule order matters: multi-word keywords are listed before JOIN so the
// alternation consumes them whole.
var (
	clauseKeywordRe = regexp.MustCompile(`(?i)\b(INNER JOIN|LEFT JOIN|RIGHT JOIN|GROUP BY|ORDER BY|SELECT|FROM|WHERE|JOIN|HAVING|UNION)\b`)
	commaColumnRe   = regexp.MustCompile(`,([A-Za-z_])`)
	onKeywordRe     = regexp.MustCompile(`(?i)\bON\b`)
	andOrKeywordRe  = regexp.MustCompile(`(?i)\b(AND|OR)\b`)
	lineEndSpaceRe  = regexp.MustCompile(`[ \t]+\n`)
)

// FormatSQL pretty-prints a SQL string for display. It is a pure,
// rule-ordered text rewrite with no SQL tokenization: clause keywords
// start new lines, comma-separated columns and AND/OR conditions are
// indented, and the result is trimmed. Keywords already at the start of
// a line are left in place, so reapplying the transform to its own
// output changes nothing. Never apply this to SQL sent to the service;
// it is display-only.
func FormatSQL(raw string) string {
	if raw == "" {
		return raw
	}

	s := insertBreakBefore(raw, clauseKeywordRe, "", true)
	s = commaColumnRe.ReplaceAllString(s, ",\n    $1")
	s = insertBreakBefore(s, onKeywordRe, "  ", false)
	s = insertBreakBefore(s, andOrKeywordRe, "    ", true)
	s = lineEndSpaceRe.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}

// insertBreakBefore rewrites every match of re to begin a new line with
// the given indent, optionally upper-casing the matched token. Matches
// already at the start of a line (ignoring indentation) are not moved.
func insertBreakBefore(s string, re *regexp.Regexp, indent string, upper bool) string {
	var b strings.Builder
	prev := 0
	for _, loc := range re.FindAllStringIndex(s, -1) {
		b.WriteString(s[prev:loc[0]])
		token := s[loc[0]:loc[1]]
		if upper {
			token = strings.ToUpper(token)
		}
		if !atLineStart(b.String()) {
			b.WriteByte('\n')
			b.WriteString(indent)
		}
		b.WriteString(token)
		prev = loc[1]
	}
	b.WriteString(s[prev:])
	return b.String()
}

// atLineStart reports whether appending to the built text would land at
// the start of a line, treating trailing spaces as indentation.
func atLineStart(built string) bool {
	i := len(built)
	for i > 0 && (built[i-1] == ' ' || built[i-1] == '\t') {
		i--
	}
	return i == 0 || built[i-1] == '\n'
}
