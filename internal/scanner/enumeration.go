package scanner

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/melodypapa/autosar-pdf/internal/model"
)

var literalNameRe = regexp.MustCompile(`^[A-Za-z_][\w.-]*$`)

// enumScanner recognizes "Enumeration <name>" definitions and consumes
// their package, note and "Literal Description" table.
type enumScanner struct {
	vocab     *Vocabulary
	lookahead int
}

func newEnumScanner(vocab *Vocabulary, lookahead int) *enumScanner {
	return &enumScanner{vocab: vocab, lookahead: lookahead}
}

func (s *enumScanner) ParseDefinition(lines []Line, index int) (model.Type, error) {
	line := lines[index]
	if line.Info.Class != LineEnumHeader {
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

	return &model.Enumeration{
		TypeBase: model.TypeBase{Name: name, ATP: atp},
	}, nil
}

func (s *enumScanner) ContinueParsing(t model.Type, lines []Line, index int, state ParseState) (int, ParseState, bool, error) {
	e := t.(*model.Enumeration)
	line := lines[index]

	switch line.Info.Class {
	case LineClassHeader, LineEnumHeader, LinePrimitiveHeader:
		return index, ParseState{}, true, nil

	case LineTableBoundary:
		// A table boundary closes the literal region
		return index + 1, ParseState{}, false, nil

	case LineBlank:
		return index + 1, state, false, nil

	case LinePackageDecl:
		if s.vocab.ValidPackagePath(line.Info.Payload) {
			if e.Package == "" {
				e.Package = line.Info.Payload
			}
			return index + 1, ParseState{}, false, nil
		}
		return s.continueSection(e, line, index, state)

	case LineNote:
		e.Note = line.Info.Payload
		return index + 1, ParseState{Section: SectionNote}, false, nil

	case LineLiteralHeader:
		return index + 1, ParseState{Section: SectionLiterals}, false, nil

	case LineAttributeHeader:
		// Enumerations carry no attribute table; whatever follows
		// belongs to a neighboring definition
		return index + 1, ParseState{}, false, nil

	default:
		return s.continueSection(e, line, index, state)
	}
}

func (s *enumScanner) continueSection(e *model.Enumeration, line Line, index int, state ParseState) (int, ParseState, bool, error) {
	switch state.Section {
	case SectionNote:
		if e.Note != "" {
			e.Note += " "
		}
		e.Note += line.Info.Payload
		return index + 1, state, false, nil

	case SectionLiterals:
		s.consumeLiteralRow(e, line.Info.Payload)
		return index + 1, state, false, nil

	default:
		return index + 1, state, false, nil
	}
}

// consumeLiteralRow parses one "name description..." row. A row whose
// first token does not look like a literal identifier continues the
// previous literal's wrapped description instead.
func (s *enumScanner) consumeLiteralRow(e *model.Enumeration, text string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return
	}

	name := fields[0]
	isNewLiteral := literalNameRe.MatchString(name) && !s.vocab.IsContinuationWord(name)

	if !isNewLiteral {
		if len(e.Literals) == 0 {
			return
		}
		last := &e.Literals[len(e.Literals)-1]
		last.Description = joinDescription(last.Description, text)
		// The index marker may arrive on the wrapped part of the row
		if last.Index == nil {
			last.Index, last.Description = extractIndexMarker(last.Description)
		}
		return
	}

	description := strings.Join(fields[1:], " ")

	literal := model.EnumLiteral{Name: name}
	literal.Index, literal.Description = extractIndexMarker(description)
	e.Literals = append(e.Literals, literal)
}

// extractIndexMarker pulls an embedded "Index=<n>" marker out of a
// literal description, returning the index (or nil) and the cleaned
// description.
func extractIndexMarker(description string) (*int, string) {
	m := indexRe.FindStringSubmatch(description)
	if m == nil {
		return nil, description
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, description
	}

	cleaned := indexRe.ReplaceAllString(description, "")
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	return &n, cleaned
}

func joinDescription(existing, more string) string {
	more = strings.TrimSpace(more)
	if existing == "" {
		return more
	}
	if more == "" {
		return existing
	}
	return existing + " " + more
}

func (s *enumScanner) Finish(t model.Type) {}
