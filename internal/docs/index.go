package docs

import (
	"os"
	"path/filepath"
	"strconv"

	md "github.com/nao1215/markdown"

	"github.com/propstore/winspskb/pkg/constants"
	"github.com/propstore/winspskb/pkg/errors"
)

// writeIndex generates the documentation index page: a table of all
// property sets linking to their per-set pages.
func (g *Generator) writeIndex(sets []propertySet) error {
	path := filepath.Join(g.outputDir, constants.DocsIndexFile)

	f, err := os.Create(path)
	if err != nil {
		return errors.NewGenerationError("docs index", path, err)
	}
	defer f.Close()

	total := 0
	rows := make([][]string, 0, len(sets))
	for _, set := range sets {
		total += len(set.Definitions)
		rows = append(rows, []string{
			md.Link(set.FormatIdentifier, set.FormatIdentifier+".md"),
			set.FormatClass,
			strconv.Itoa(len(set.Definitions)),
		})
	}

	doc := md.NewMarkdown(f)
	doc.H1("Windows Shell property sets")
	doc.LF()
	doc.PlainTextf("%d property definitions across %d property sets.", total, len(sets))
	doc.LF()
	doc.Table(md.TableSet{
		Header: []string{"Format identifier", "Format class", "Properties"},
		Rows:   rows,
	})

	if err := doc.Build(); err != nil {
		return errors.NewGenerationError("docs index", path, err)
	}
	return nil
}
