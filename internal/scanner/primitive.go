package scanner

import (
	"github.com/melodypapa/autosar-pdf/internal/model"
)

// primitiveScanner recognizes "Primitive <name>" definitions. A
// primitive has no bases, but may carry a note and an attribute table
// (variation point attributes).
type primitiveScanner struct {
	vocab     *Vocabulary
	lookahead int
}

func newPrimitiveScanner(vocab *Vocabulary, lookahead int) *primitiveScanner {
	return &primitiveScanner{vocab: vocab, lookahead: lookahead}
}

func (s *primitiveScanner) ParseDefinition(lines []Line, index int) (model.Type, error) {
	line := lines[index]
	if line.Info.Class != LinePrimitiveHeader {
		return nil, nil
	}

	name, _, atp, err := parseTypeName(line.Info.Payload)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, nil
	}
	if !packageFollows(lines, index, s.lookahead, s.vocab) {
		return nil, nil
	}

	return &model.Primitive{
		TypeBase: model.TypeBase{Name: name, ATP: atp},
	}, nil
}

func (s *primitiveScanner) ContinueParsing(t model.Type, lines []Line, index int, state ParseState) (int, ParseState, bool, error) {
	p := t.(*model.Primitive)
	line := lines[index]

	switch line.Info.Class {
	case LineClassHeader, LineEnumHeader, LinePrimitiveHeader:
		return index, ParseState{}, true, nil

	case LineTableBoundary:
		return index + 1, ParseState{}, false, nil

	case LineBlank:
		return index + 1, state, false, nil

	case LinePackageDecl:
		if s.vocab.ValidPackagePath(line.Info.Payload) {
			if p.Package == "" {
				p.Package = line.Info.Payload
			}
			return index + 1, ParseState{}, false, nil
		}
		return s.continueSection(p, line, index, state)

	case LineNote:
		p.Note = line.Info.Payload
		return index + 1, ParseState{Section: SectionNote}, false, nil

	case LineAttributeHeader:
		return index + 1, ParseState{Section: SectionAttributes}, false, nil

	case LineLiteralHeader:
		return index + 1, ParseState{}, false, nil

	default:
		return s.continueSection(p, line, index, state)
	}
}

func (s *primitiveScanner) continueSection(p *model.Primitive, line Line, index int, state ParseState) (int, ParseState, bool, error) {
	switch state.Section {
	case SectionNote:
		if p.Note != "" {
			p.Note += " "
		}
		p.Note += line.Info.Payload
		return index + 1, state, false, nil

	case SectionAttributes:
		if attr, ok := parseAttributeRow(line.Info.Payload, s.vocab); ok {
			p.AddAttribute(attr)
		}
		return index + 1, state, false, nil

	default:
		return index + 1, state, false, nil
	}
}

func (s *primitiveScanner) Finish(t model.Type) {}
