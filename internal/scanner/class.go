package scanner

import (
	"github.com/melodypapa/autosar-pdf/internal/model"
)

// classScanner recognizes "Class <name>[ (abstract)]" definitions and
// consumes their package, base/subclass/aggregated-by lists, note and
// attribute table.
type classScanner struct {
	vocab     *Vocabulary
	lookahead int
}

func newClassScanner(vocab *Vocabulary, lookahead int) *classScanner {
	return &classScanner{vocab: vocab, lookahead: lookahead}
}

func (s *classScanner) ParseDefinition(lines []Line, index int) (model.Type, error) {
	line := lines[index]
	if line.Info.Class != LineClassHeader {
		return nil, nil
	}

	name, abstract, atp, err := parseTypeName(line.Info.Payload)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, nil
	}

	// A header without a Package declaration nearby is prose that
	// happened to start with the keyword
	if !packageFollows(lines, index, s.lookahead, s.vocab) {
		return nil, nil
	}

	return &model.Class{
		TypeBase:   model.TypeBase{Name: name, ATP: atp},
		IsAbstract: abstract,
	}, nil
}

func (s *classScanner) ContinueParsing(t model.Type, lines []Line, index int, state ParseState) (int, ParseState, bool, error) {
	c := t.(*model.Class)
	line := lines[index]

	switch line.Info.Class {
	case LineClassHeader, LineEnumHeader, LinePrimitiveHeader:
		// Next definition: do not consume
		return index, ParseState{}, true, nil

	case LineTableBoundary:
		return index + 1, ParseState{}, false, nil

	case LineBlank:
		// Blank lines occur inside wrapped regions, keep the section
		return index + 1, state, false, nil

	case LinePackageDecl:
		if s.vocab.ValidPackagePath(line.Info.Payload) {
			if c.Package == "" {
				c.Package = line.Info.Payload
			}
			// A second valid declaration belongs to a neighboring
			// definition; either way it terminates the current section
			return index + 1, ParseState{}, false, nil
		}
		// An invalid package payload is prose; fall through as a
		// continuation of the current section
		return s.continueSection(c, line, index, state)

	case LineBaseList:
		bases, complete := appendListItems(nil, line.Info.Payload, true)
		c.Bases = append(c.Bases, bases...)
		return index + 1, ParseState{Section: SectionBases, ListOpen: !complete}, false, nil

	case LineSubclassList:
		subs, complete := appendListItems(nil, line.Info.Payload, true)
		c.Subclasses = append(c.Subclasses, subs...)
		return index + 1, ParseState{Section: SectionSubclasses, ListOpen: !complete}, false, nil

	case LineAggregatedByList:
		aggr, complete := appendListItems(nil, line.Info.Payload, true)
		c.AggregatedBy = append(c.AggregatedBy, aggr...)
		return index + 1, ParseState{Section: SectionAggregatedBy, ListOpen: !complete}, false, nil

	case LineNote:
		c.Note = line.Info.Payload
		return index + 1, ParseState{Section: SectionNote}, false, nil

	case LineAttributeHeader:
		return index + 1, ParseState{Section: SectionAttributes}, false, nil

	case LineLiteralHeader:
		// Classes have no literal region; a literal header belongs to a
		// neighboring definition's table
		return index + 1, ParseState{}, false, nil

	default:
		return s.continueSection(c, line, index, state)
	}
}

// continueSection consumes an unrecognized line as a continuation of
// the current section.
func (s *classScanner) continueSection(c *model.Class, line Line, index int, state ParseState) (int, ParseState, bool, error) {
	switch state.Section {
	case SectionBases:
		var complete bool
		c.Bases, complete = appendListItems(c.Bases, line.Info.Payload, !state.ListOpen)
		return index + 1, ParseState{Section: SectionBases, ListOpen: !complete}, false, nil

	case SectionSubclasses:
		var complete bool
		c.Subclasses, complete = appendListItems(c.Subclasses, line.Info.Payload, !state.ListOpen)
		return index + 1, ParseState{Section: SectionSubclasses, ListOpen: !complete}, false, nil

	case SectionAggregatedBy:
		var complete bool
		c.AggregatedBy, complete = appendListItems(c.AggregatedBy, line.Info.Payload, !state.ListOpen)
		return index + 1, ParseState{Section: SectionAggregatedBy, ListOpen: !complete}, false, nil

	case SectionNote:
		if c.Note != "" {
			c.Note += " "
		}
		c.Note += line.Info.Payload
		return index + 1, state, false, nil

	case SectionAttributes:
		if attr, ok := parseAttributeRow(line.Info.Payload, s.vocab); ok {
			c.AddAttribute(attr)
		}
		return index + 1, state, false, nil

	default:
		return index + 1, state, false, nil
	}
}

// Finish routes bases matching the interface-marker vocabulary into the
// implements list. Routing runs after scanning so word-wrap repair has
// already reassembled split names.
func (s *classScanner) Finish(t model.Type) {
	c := t.(*model.Class)

	var bases []string
	for _, base := range c.Bases {
		if s.vocab.IsInterface(base) {
			c.Implements = append(c.Implements, base)
			continue
		}
		bases = append(bases, base)
	}
	c.Bases = bases
}
