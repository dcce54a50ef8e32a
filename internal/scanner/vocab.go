package scanner

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/gobwas/glob"

	"github.com/melodypapa/autosar-pdf/internal/config"
)

// Vocabulary holds the compiled heuristic vocabularies the scanners
// match against. The matching rules are fixed; the word lists come from
// configuration so they can evolve with new document generations.
type Vocabulary struct {
	continuation map[string]bool
	fragments    map[string]bool

	refPatterns   []glob.Glob
	ifacePatterns []glob.Glob

	exclusionPhrases []string
	exclusionWords   []*regexp.Regexp
	leading          []string

	delimiter string
}

// NewVocabulary compiles the scanner configuration.
func NewVocabulary(cfg config.ScannerConfig) (*Vocabulary, error) {
	v := &Vocabulary{
		continuation:     make(map[string]bool, len(cfg.ContinuationWords)),
		fragments:        make(map[string]bool, len(cfg.FragmentNames)),
		exclusionPhrases: cfg.ExclusionPhrases,
		leading:          cfg.LeadingExclusions,
		delimiter:        cfg.PathDelimiter,
	}

	for _, w := range cfg.ContinuationWords {
		v.continuation[strings.ToLower(w)] = true
	}
	for _, w := range cfg.FragmentNames {
		v.fragments[w] = true
	}

	for _, pattern := range cfg.ReferencePatterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid reference pattern %q: %w", pattern, err)
		}
		v.refPatterns = append(v.refPatterns, g)
	}
	for _, pattern := range cfg.InterfacePatterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid interface pattern %q: %w", pattern, err)
		}
		v.ifacePatterns = append(v.ifacePatterns, g)
	}

	for _, w := range cfg.ExclusionWords {
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(w) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("invalid exclusion word %q: %w", w, err)
		}
		v.exclusionWords = append(v.exclusionWords, re)
	}

	return v, nil
}

// Delimiter returns the configured package path delimiter.
func (v *Vocabulary) Delimiter() string { return v.delimiter }

// IsContinuationWord reports whether token is a common prose word that
// marks a table row as a wrapped-cell spillover.
func (v *Vocabulary) IsContinuationWord(token string) bool {
	return v.continuation[strings.ToLower(token)]
}

// IsFragment reports whether token is a known wrap-artifact fragment.
func (v *Vocabulary) IsFragment(token string) bool {
	return v.fragments[token]
}

// IsReferenceType reports whether an attribute type token names a
// reference-like type (drives the derived is_ref field).
func (v *Vocabulary) IsReferenceType(typeName string) bool {
	for _, g := range v.refPatterns {
		if g.Match(typeName) {
			return true
		}
	}
	return false
}

// IsInterface reports whether a declared base name should be routed to
// the implements list instead of the bases list.
func (v *Vocabulary) IsInterface(name string) bool {
	for _, g := range v.ifacePatterns {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// ValidPackagePath reports whether a candidate Package payload is a
// real package declaration rather than wrapped prose. See the package
// path validation rules in the scanner documentation.
func (v *Vocabulary) ValidPackagePath(path string) bool {
	if path == "" {
		return false
	}

	for _, phrase := range v.exclusionPhrases {
		if strings.Contains(path, phrase) {
			return false
		}
	}
	for _, prefix := range v.leading {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	for _, re := range v.exclusionWords {
		if re.MatchString(path) {
			return false
		}
	}

	segments := strings.Split(path, v.delimiter)
	for _, seg := range segments {
		if strings.TrimSpace(seg) == "" {
			return false
		}
	}

	// Single-segment paths are prone to prose false positives: only
	// TitleCase-like or underscore-prefixed names pass.
	if len(segments) == 1 {
		return titleCaseLike(segments[0]) || strings.HasPrefix(segments[0], "_")
	}

	return true
}

// titleCaseLike matches identifiers like "GenericStructureTemplate":
// an upper-case first rune followed by letters and digits only.
func titleCaseLike(s string) bool {
	for i, r := range s {
		if i == 0 {
			if !unicode.IsUpper(r) {
				return false
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
