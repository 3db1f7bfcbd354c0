package scan

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// identRe matches a bare JavaScript identifier.
var identRe = regexp.MustCompile(`^[\p{L}_$][\p{L}\p{N}_$]*$`)

// Extractor finds the literal keys passed to a set of call names.
//
// A call is recognized when one of the names is followed by "(", a single
// string literal in matching single or double quotes, and ")". Whitespace may
// surround the literal and the literal may span lines. The name must not be
// preceded by a word character, so "format_t(" is not a call of "t" while
// "i18n.t(" and "$t(" are.
type Extractor struct {
	names []string
	re    *regexp.Regexp
}

// NewExtractor compiles an extractor for the given call names.
func NewExtractor(names ...string) (*Extractor, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("at least one call name is required")
	}

	uniq := slices.Clone(names)
	slices.Sort(uniq)
	uniq = slices.Compact(uniq)
	// Longer names first so "translate" is tried before "t" at the same offset.
	slices.SortStableFunc(uniq, func(a, b string) int { return len(b) - len(a) })

	quoted := make([]string, len(uniq))
	for i, n := range uniq {
		if !identRe.MatchString(n) {
			return nil, fmt.Errorf("invalid call name %q", n)
		}
		quoted[i] = regexp.QuoteMeta(n)
	}

	// Group 1 holds a double-quoted body, group 2 a single-quoted one. Bodies
	// stop at the first unescaped matching quote, which rules out calls with
	// more than one argument.
	pattern := `(?:` + strings.Join(quoted, "|") + `)` +
		`\s*\(\s*` +
		`(?:"((?:[^"\\]|\\.)*)"|'((?:[^'\\]|\\.)*)')` +
		`\s*\)`

	re, err := regexp.Compile(`(?s)` + pattern)
	if err != nil {
		return nil, fmt.Errorf("compile call pattern: %w", err)
	}

	return &Extractor{names: uniq, re: re}, nil
}

// MustExtractor is like NewExtractor but panics on error.
func MustExtractor(names ...string) *Extractor {
	e, err := NewExtractor(names...)
	if err != nil {
		panic(err)
	}
	return e
}

// Names returns the recognized call names.
func (e *Extractor) Names() []string {
	return slices.Clone(e.names)
}

// Extract returns the distinct keys found in text. The key is the raw text
// between the quotes, neither unescaped nor trimmed.
func (e *Extractor) Extract(text string) KeySet {
	keys := make(KeySet)

	pos := 0
	for pos < len(text) {
		loc := e.re.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]

		if precededByWordChar(text, start) {
			// Retry one rune further so a valid call starting inside this
			// match is still found.
			_, size := utf8.DecodeRuneInString(text[start:])
			pos = start + size
			continue
		}

		switch {
		case loc[2] >= 0:
			keys.Add(text[pos+loc[2] : pos+loc[3]])
		case loc[4] >= 0:
			keys.Add(text[pos+loc[4] : pos+loc[5]])
		}
		pos = end
	}

	return keys
}

func precededByWordChar(text string, i int) bool {
	if i == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
