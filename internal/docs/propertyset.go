package docs

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	md "github.com/nao1215/markdown"

	"github.com/propstore/winspskb/pkg/errors"
)

// writePropertySet generates one format identifier's page: a header
// naming the set and a table of its properties in property identifier
// order.
func (g *Generator) writePropertySet(set propertySet) error {
	path := filepath.Join(g.outputDir, set.FormatIdentifier+".md")

	f, err := os.Create(path)
	if err != nil {
		return errors.NewGenerationError("docs property set", path, err)
	}
	defer f.Close()

	header := set.FormatIdentifier
	if set.FormatClass != "" {
		header = fmt.Sprintf("%s (%s)", set.FormatIdentifier, set.FormatClass)
	}

	rows := make([][]string, 0, len(set.Definitions))
	for _, def := range set.Definitions {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(def.PropertyIdentifier), 10),
			def.ShellPropertyKey,
			def.Name,
			def.Alias,
		})
	}

	doc := md.NewMarkdown(f)
	doc.H2(header)
	doc.LF()
	doc.Table(md.TableSet{
		Header: []string{"Property identifier", "Shell property key", "Shell name", "Alias"},
		Rows:   rows,
	})

	if err := doc.Build(); err != nil {
		return errors.NewGenerationError("docs property set", path, err)
	}
	return nil
}
