package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/melodypapa/autosar-pdf/internal/model"
)

// WriteMarkdown renders the extracted model as a navigable markdown
// document: one section per package, one subsection per type.
func WriteMarkdown(w io.Writer, doc *model.Document) error {
	mw := &markdownWriter{w: w}

	mw.printf("# Extracted Model\n\n")
	if len(doc.Sources) > 0 {
		mw.printf("Sources: %s\n\n", strings.Join(doc.Sources, ", "))
	}

	if len(doc.RootClasses) > 0 {
		mw.printf("## Root Classes\n\n")
		for _, root := range doc.RootClasses {
			mw.printf("- %s\n", root.Name)
		}
		mw.printf("\n")
	}

	doc.Walk(func(path string, pkg *model.Package) {
		if len(pkg.Types) == 0 {
			return
		}
		mw.printf("## Package %s\n\n", path)
		for _, t := range pkg.Types {
			mw.writeType(t)
		}
	})

	return mw.err
}

type markdownWriter struct {
	w   io.Writer
	err error
}

func (mw *markdownWriter) printf(format string, args ...any) {
	if mw.err != nil {
		return
	}
	_, mw.err = fmt.Fprintf(mw.w, format, args...)
}

func (mw *markdownWriter) writeType(t model.Type) {
	base := t.Base()

	switch v := t.(type) {
	case *model.Class:
		marker := ""
		if v.IsAbstract {
			marker = " *(abstract)*"
		}
		mw.printf("### Class %s%s\n\n", base.Name, marker)
		mw.writeCommon(base)
		if v.Parent != "" {
			mw.printf("- Parent: %s\n", v.Parent)
		}
		if len(v.Bases) > 0 {
			mw.printf("- Bases: %s\n", strings.Join(v.Bases, ", "))
		}
		if len(v.Implements) > 0 {
			mw.printf("- Implements: %s\n", strings.Join(v.Implements, ", "))
		}
		if len(v.Children) > 0 {
			mw.printf("- Children: %s\n", strings.Join(v.Children, ", "))
		}
		mw.printf("\n")
		mw.writeAttributes(v.Attributes)

	case *model.Enumeration:
		mw.printf("### Enumeration %s\n\n", base.Name)
		mw.writeCommon(base)
		mw.printf("\n")
		if len(v.Literals) > 0 {
			mw.printf("| Literal | Description |\n|---|---|\n")
			for _, literal := range v.Literals {
				mw.printf("| %s | %s |\n", literal.Name, literal.Description)
			}
			mw.printf("\n")
		}

	case *model.Primitive:
		mw.printf("### Primitive %s\n\n", base.Name)
		mw.writeCommon(base)
		mw.printf("\n")
		mw.writeAttributes(v.Attributes)
	}
}

func (mw *markdownWriter) writeCommon(base *model.TypeBase) {
	if base.Note != "" {
		mw.printf("%s\n\n", base.Note)
	}
	if base.ATP != model.ATPNone {
		mw.printf("- ATP: %s\n", base.ATP)
	}
}

func (mw *markdownWriter) writeAttributes(attrs []model.Attribute) {
	if len(attrs) == 0 {
		return
	}
	mw.printf("| Attribute | Type | Mult. | Kind | Note |\n|---|---|---|---|---|\n")
	for _, attr := range attrs {
		mw.printf("| %s | %s | %s | %s | %s |\n",
			attr.Name, attr.Type, attr.Multiplicity, attr.Kind, attr.Note)
	}
	mw.printf("\n")
}
