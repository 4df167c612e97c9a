package title

import (
	"regexp"
	"strings"
	"unicode"
)

// MatchKind selects the syntactic shape of a removable title part.
type MatchKind int

const (
	// Parenthetical matches " (...)".
	Parenthetical MatchKind = iota

	// Bracketed matches " [...]".
	Bracketed

	// DashSuffix matches " - ..." through the end of the title.
	DashSuffix
)

// Anchor selects where the keyword must appear inside the matched part.
type Anchor int

const (
	// AnchorPrefix requires the part to start with the keyword.
	AnchorPrefix Anchor = iota

	// AnchorContains accepts the keyword anywhere in the part.
	AnchorContains

	// AnchorExact requires the part to be exactly the keyword.
	AnchorExact
)

// Pattern describes one removable title part. Keywords match case-insensitively.
type Pattern struct {
	Kind    MatchKind
	Anchor  Anchor
	Keyword string
}

// DefaultPatterns returns the built-in removable patterns in application order.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{Kind: Parenthetical, Anchor: AnchorPrefix, Keyword: "From "},
		{Kind: DashSuffix, Anchor: AnchorPrefix, Keyword: "From "},
		{Kind: Parenthetical, Anchor: AnchorPrefix, Keyword: "Remastered"},
		{Kind: DashSuffix, Anchor: AnchorPrefix, Keyword: "Remastered"},
		{Kind: Bracketed, Anchor: AnchorPrefix, Keyword: "Remastered"},
		{Kind: Parenthetical, Anchor: AnchorContains, Keyword: "Anniversary"},
		{Kind: Parenthetical, Anchor: AnchorContains, Keyword: "Edition"},
		{Kind: Parenthetical, Anchor: AnchorContains, Keyword: "Version"},
		{Kind: Parenthetical, Anchor: AnchorContains, Keyword: "Mix"},
		{Kind: Parenthetical, Anchor: AnchorContains, Keyword: "Reissue"},
		{Kind: Parenthetical, Anchor: AnchorExact, Keyword: "Bonus Track"},
	}
}

// Expr returns the regular expression source for the pattern.
//
// Parenthetical and bracketed parts never span a closing delimiter, so
// "Song (Live) (Deluxe Edition)" only loses the second group.
func (p Pattern) Expr() string {
	kw := regexp.QuoteMeta(p.Keyword)

	var start, body, end string
	switch p.Kind {
	case Bracketed:
		start, body, end = `\[`, `[^\]]*`, `\]`
	case DashSuffix:
		start, body, end = `-\s*`, `.*`, `$`
	default:
		start, body, end = `\(`, `[^)]*`, `\)`
	}

	var inner string
	switch p.Anchor {
	case AnchorContains:
		inner = body + kw + body
	case AnchorExact:
		inner = kw
	default:
		inner = kw + body
	}

	return `(?i)\s+` + start + inner + end
}

// Normalizer removes an ordered list of patterns from titles.
type Normalizer struct {
	patterns []*regexp.Regexp
}

// NewNormalizer compiles the given patterns. Patterns are applied in order.
func NewNormalizer(patterns []Pattern) *Normalizer {
	n := &Normalizer{patterns: make([]*regexp.Regexp, 0, len(patterns))}
	for _, p := range patterns {
		n.patterns = append(n.patterns, regexp.MustCompile(p.Expr()))
	}
	return n
}

var defaultNormalizer = NewNormalizer(DefaultPatterns())

// Normalize cleans a title with the default patterns.
func Normalize(title string) string {
	return defaultNormalizer.Normalize(title)
}

// Normalize removes every matching pattern, then trailing dashes and
// whitespace. Passes repeat until the title stops changing, which makes the
// operation idempotent even when one removal exposes another match.
func (n *Normalizer) Normalize(title string) string {
	current := title
	for {
		next := n.pass(current)
		if next == current {
			return next
		}
		current = next
	}
}

func (n *Normalizer) pass(title string) string {
	for _, re := range n.patterns {
		title = re.ReplaceAllString(title, "")
	}
	title = strings.TrimRightFunc(title, func(r rune) bool {
		return r == '-' || unicode.IsSpace(r)
	})
	return strings.TrimSpace(title)
}
