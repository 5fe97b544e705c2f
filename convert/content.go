package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"fsc/markup"
	"fsc/state"
)

// Content holds single built markup document together with its rendering.
type Content struct {
	SrcName string
	Doc     *markup.Document
	HTML    string
}

// prepareContent reads markup, builds the tree and renders it. Problems found
// along the way are logged and, when debugging, stored in the report.
func prepareContent(ctx context.Context, r io.Reader, enc srcEncoding, srcName string, b *markup.Builder, log *zap.Logger) (*Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	env := state.EnvFromContext(ctx)

	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charsetReader(enc),
		ValidateInput: false,
		Permissive:    true,
	}
	if _, err := doc.ReadFrom(selectReader(r, enc)); err != nil {
		return nil, fmt.Errorf("unable to read markup: %w", err)
	}

	d, err := b.Build(doc)
	if err != nil {
		return nil, err
	}

	c := &Content{
		SrcName: srcName,
		Doc:     d,
		// emission may add problems of its own, so render first
		HTML: markup.EmitHTML(d),
	}

	problems := d.Problems()
	for _, p := range problems {
		log.Warn("Markup problem", zap.String("source", srcName), zap.Stringer("problem", p))
	}

	if env.Rpt != nil {
		base := filepath.ToSlash(srcName)
		if data, err := doc.WriteToBytes(); err == nil {
			env.Rpt.StoreData("source/"+base, data)
		}
		env.Rpt.StoreData("tree/"+base+".txt", []byte(d.String()))
		if len(problems) > 0 {
			env.Rpt.StoreData("problems/"+base+".txt", []byte(c.problemList()))
		}
	}
	return c, nil
}

func (c *Content) problemList() string {
	var sb strings.Builder
	for _, p := range c.Doc.Problems() {
		sb.WriteString(p.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// WriteTo saves rendered fragment to the file.
func (c *Content) WriteTo(outputPath string) error {
	return os.WriteFile(outputPath, []byte(c.HTML), 0644)
}
