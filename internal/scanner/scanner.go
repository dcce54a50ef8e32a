package scanner

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/melodypapa/autosar-pdf/internal/model"
)

// Section is the region of a definition the scanner is currently
// consuming. It is threaded through ContinueParsing return values, not
// stored on the scanner, so scanners stay reentrant.
type Section int

const (
	SectionIdle Section = iota
	SectionBases
	SectionSubclasses
	SectionAggregatedBy
	SectionNote
	SectionAttributes
	SectionLiterals
)

// ParseState is the explicit parser state carried between successive
// ContinueParsing calls for one definition.
type ParseState struct {
	Section Section

	// ListOpen is true while the last item of the current list section
	// lacked a trailing comma, meaning the next line's first item is a
	// word-wrap continuation of it.
	ListOpen bool
}

// DefinitionScanner recognizes and populates one kind of definition.
type DefinitionScanner interface {
	// ParseDefinition inspects lines[index] and returns a fresh model
	// instance when it starts a definition of this scanner's kind.
	// A (nil, nil) return means the line is not a definition start.
	ParseDefinition(lines []Line, index int) (model.Type, error)

	// ContinueParsing consumes lines[index] into t. It returns the next
	// index to read, the state to carry forward, and complete=true when
	// the definition ended (in which case lines[index] is not consumed).
	ContinueParsing(t model.Type, lines []Line, index int, state ParseState) (next int, nextState ParseState, complete bool, err error)

	// Finish runs the end-of-definition fixups (e.g. base/implements
	// routing). Called once after ContinueParsing reports completion or
	// input ends.
	Finish(t model.Type)
}

// ValidationError reports a definition that carries more than one ATP
// marker. It aborts the current parse attempt.
type ValidationError struct {
	Definition string
	Markers    []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("definition %q carries %d ATP markers (%s), at most one is allowed",
		e.Definition, len(e.Markers), strings.Join(e.Markers, ", "))
}

var (
	markerRe = regexp.MustCompile(`\[([^\]]+)\]`)
	indexRe  = regexp.MustCompile(`\bIndex=(\d+)\b`)
	numberRe = regexp.MustCompile(`^\d+$`)
)

var atpMarkers = map[string]model.ATPType{
	"atpVariation":   model.ATPVariation,
	"atpMixedString": model.ATPMixedString,
	"atpMixed":       model.ATPMixed,
}

// parseTypeName splits a declared header payload into the clean name,
// the abstract flag, and the ATP tag. More than one ATP marker is a
// ValidationError.
func parseTypeName(payload string) (name string, abstract bool, atp model.ATPType, err error) {
	var found []string
	clean := markerRe.ReplaceAllStringFunc(payload, func(m string) string {
		inner := strings.TrimSpace(strings.Trim(m, "[]"))
		if _, ok := atpMarkers[inner]; ok {
			found = append(found, inner)
		}
		return ""
	})

	if len(found) > 1 {
		return "", false, model.ATPNone, &ValidationError{Definition: strings.TrimSpace(payload), Markers: found}
	}
	if len(found) == 1 {
		atp = atpMarkers[found[0]]
	}

	clean = strings.TrimSpace(clean)
	if strings.HasSuffix(clean, "(abstract)") {
		abstract = true
		clean = strings.TrimSpace(strings.TrimSuffix(clean, "(abstract)"))
	}

	return clean, abstract, atp, nil
}

// appendListItems merges one list line into items, applying the
// trailing-comma continuation law: when the previous line's last item
// was incomplete, the first item of this line is concatenated onto it
// (word-wrap repair); otherwise every item is appended as-is.
// Returns the updated items and whether the new last item is complete.
func appendListItems(items []string, payload string, lastComplete bool) ([]string, bool) {
	trailingComma := strings.HasSuffix(strings.TrimSpace(payload), ",")

	var parts []string
	for _, part := range strings.Split(payload, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return items, lastComplete
	}

	if len(items) > 0 && !lastComplete {
		items[len(items)-1] += parts[0]
		parts = parts[1:]
	}
	items = append(items, parts...)

	return items, trailingComma
}

// parseAttributeRow parses one attribute table row, returning ok=false
// for wrap-artifact rows that must be discarded: rows whose name or
// type token is a known fragment or a common prose word, whose name
// carries sentence punctuation, or whose name is purely numeric.
func parseAttributeRow(text string, vocab *Vocabulary) (model.Attribute, bool) {
	fields := strings.Fields(text)
	if len(fields) < 4 {
		return model.Attribute{}, false
	}

	name, typeName, mult, kindToken := fields[0], fields[1], fields[2], fields[3]
	note := strings.Join(fields[4:], " ")

	if vocab.IsFragment(name) || vocab.IsFragment(typeName) {
		return model.Attribute{}, false
	}
	if vocab.IsContinuationWord(name) || vocab.IsContinuationWord(typeName) {
		return model.Attribute{}, false
	}
	if strings.ContainsAny(name, ":;") {
		return model.Attribute{}, false
	}
	if numberRe.MatchString(name) {
		return model.Attribute{}, false
	}

	var kind model.AttributeKind
	switch kindToken {
	case "attr":
		kind = model.AttrKindAttr
	case "ref":
		kind = model.AttrKindRef
	case "aggr":
		kind = model.AttrKindAggr
	default:
		// Not a recognizable row, most likely a wrapped note cell
		return model.Attribute{}, false
	}

	return model.Attribute{
		Name:         name,
		Type:         typeName,
		Multiplicity: mult,
		Kind:         kind,
		Note:         note,
		IsRef:        vocab.IsReferenceType(typeName),
	}, true
}

// packageFollows reports whether a valid Package declaration appears
// within the lookahead window after a candidate definition header.
// Headers without one are prose false positives and are rejected.
func packageFollows(lines []Line, index, lookahead int, vocab *Vocabulary) bool {
	for i := index + 1; i <= index+lookahead && i < len(lines); i++ {
		if lines[i].Info.Class == LinePackageDecl && vocab.ValidPackagePath(lines[i].Info.Payload) {
			return true
		}
	}
	return false
}

// sourceRef builds the document-location record for a definition line.
func sourceRef(document string, line Line) model.SourceRef {
	return model.SourceRef{Document: document, Page: line.Page, Line: line.Num}
}
