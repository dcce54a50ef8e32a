package scanner

import (
	"regexp"
	"strings"
)

// LineClass is the structural role of a single extracted text line.
type LineClass int

const (
	LineUnrecognized LineClass = iota
	LineBlank
	LineClassHeader
	LineEnumHeader
	LinePrimitiveHeader
	LinePackageDecl
	LineBaseList
	LineSubclassList
	LineAggregatedByList
	LineNote
	LineAttributeHeader
	LineLiteralHeader
	LineTableBoundary
)

func (c LineClass) String() string {
	switch c {
	case LineBlank:
		return "blank"
	case LineClassHeader:
		return "class-header"
	case LineEnumHeader:
		return "enumeration-header"
	case LinePrimitiveHeader:
		return "primitive-header"
	case LinePackageDecl:
		return "package-declaration"
	case LineBaseList:
		return "base-list"
	case LineSubclassList:
		return "subclass-list"
	case LineAggregatedByList:
		return "aggregated-by-list"
	case LineNote:
		return "note"
	case LineAttributeHeader:
		return "attribute-header"
	case LineLiteralHeader:
		return "literal-header"
	case LineTableBoundary:
		return "table-boundary"
	}
	return "unrecognized"
}

// Classified is the result of classifying one line: its role plus the
// payload text after the section keyword, when the role carries one.
type Classified struct {
	Class   LineClass
	Payload string
}

// Classifier tags each line with a structural role. Scanners only see
// Classified values, so the matching engine can be swapped without
// touching scanner logic.
type Classifier interface {
	Classify(line string) Classified
}

// patternEntry binds one compiled pattern to a line class. Entries are
// tried in order; the first match wins.
type patternEntry struct {
	re    *regexp.Regexp
	class LineClass
}

// regexClassifier is the default Classifier, built from an ordered
// pattern table.
type regexClassifier struct {
	patterns []patternEntry
}

// NewClassifier returns the default regex-table classifier.
func NewClassifier() Classifier {
	return &regexClassifier{
		patterns: []patternEntry{
			{regexp.MustCompile(`^Class\s+(\S.*)$`), LineClassHeader},
			{regexp.MustCompile(`^Enumeration\s+(\S.*)$`), LineEnumHeader},
			{regexp.MustCompile(`^Primitive\s+(\S.*)$`), LinePrimitiveHeader},
			{regexp.MustCompile(`^Package\s+(\S.*)$`), LinePackageDecl},
			{regexp.MustCompile(`^Base\s+(\S.*)$`), LineBaseList},
			{regexp.MustCompile(`^Subclasses\s+(\S.*)$`), LineSubclassList},
			{regexp.MustCompile(`^Aggregated by\s+(\S.*)$`), LineAggregatedByList},
			{regexp.MustCompile(`^Note\s+(\S.*)$`), LineNote},
			{regexp.MustCompile(`^Attribute\s+Type\s+Mult?\.?\s+Kind\s+Note\s*$`), LineAttributeHeader},
			{regexp.MustCompile(`^Literal\s+Description\s*$`), LineLiteralHeader},
			{regexp.MustCompile(`^Table\s+\d`), LineTableBoundary},
		},
	}
}

func (c *regexClassifier) Classify(line string) Classified {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Classified{Class: LineBlank}
	}

	for _, entry := range c.patterns {
		m := entry.re.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		classified := Classified{Class: entry.class}
		if len(m) > 1 {
			classified.Payload = strings.TrimSpace(m[1])
		}
		return classified
	}

	return Classified{Class: LineUnrecognized, Payload: trimmed}
}

// Line is one pre-classified line of extracted document text.
type Line struct {
	Text  string
	Info  Classified
	Page  int // 1-based page the line came from
	Num   int // 1-based line number within the document
}

// SplitLines splits extracted text on page markers and newlines and
// classifies every line.
func SplitLines(text string, classifier Classifier) []Line {
	var lines []Line
	num := 0
	for pageIdx, pageText := range strings.Split(text, "\f") {
		for _, raw := range strings.Split(pageText, "\n") {
			num++
			trimmed := strings.TrimRight(raw, "\r")
			lines = append(lines, Line{
				Text: trimmed,
				Info: classifier.Classify(trimmed),
				Page: pageIdx + 1,
				Num:  num,
			})
		}
	}
	return lines
}
