package markup

import (
	"github.com/beevik/etree"
)

// Table is a container for rows. Anything else placed directly into the table
// is kept in the tree but never emitted.
type Table struct {
	Element
	align  Align
	border int
	width  Dimension
}

func newTable(parent Node, raw *etree.Element) Handler {
	return &Table{Element: NewElement(parent, raw), align: AlignLeft, border: 1}
}

func (t *Table) Parse(b *Builder) Node {
	if v, ok := t.attr("align"); ok {
		t.align = DecodeHAlign(t, "align", v)
	}
	if v, ok := t.attr("border"); ok {
		t.border = DecodeInt(t, "border", v, 0, 1)
	}
	if v, ok := t.attr("width"); ok {
		t.width = DecodeDimension(t, "width", v)
		if t.width.Unit == UnitPercent && t.width.Value > 100 {
			Report(t, ProblemWidePercentage, "width", v)
		}
	}
	t.parseChildren(b, t)
	return t
}

func (t *Table) EmitHTML(out *Writer) {
	out.WriteString("<table")
	if t.align != AlignLeft {
		out.Attr("align", t.align.String())
	}
	if !t.width.IsZero() {
		out.Attr("width", t.width.String())
	}
	if t.border != 0 {
		out.IntAttr("border", t.border)
	}
	out.WriteString(">\n")
	for _, child := range t.children {
		if row, ok := child.(*Row); ok {
			row.EmitHTML(out)
		}
	}
	out.WriteString("</table>\n")
}

// Row holds table cells.
type Row struct {
	Element
	height int
}

func newRow(parent Node, raw *etree.Element) Handler {
	return &Row{Element: NewElement(parent, raw)}
}

func (r *Row) Parse(b *Builder) Node {
	if v, ok := r.attr("height"); ok {
		r.height = DecodeInt(r, "height", v, 0, 0)
	}
	r.parseChildren(b, r)
	return r
}

func (r *Row) EmitHTML(out *Writer) {
	out.WriteString("<tr")
	if r.height != 0 {
		out.IntAttr("height", r.height)
	}
	out.WriteString(">\n")
	for _, child := range r.children {
		if cell, ok := child.(*Cell); ok {
			cell.EmitHTML(out)
		}
	}
	out.WriteString("</tr>\n")
}

type Cell struct {
	Element
	rowspan int
	colspan int
}

func newCell(parent Node, raw *etree.Element) Handler {
	return &Cell{Element: NewElement(parent, raw), rowspan: 1, colspan: 1}
}

func (c *Cell) Parse(b *Builder) Node {
	if v, ok := c.attr("rowspan"); ok {
		c.rowspan = DecodeInt(c, "rowspan", v, 1, 1)
	}
	if v, ok := c.attr("colspan"); ok {
		c.colspan = DecodeInt(c, "colspan", v, 1, 1)
	}
	c.parseChildren(b, c)
	return c
}

func (c *Cell) EmitHTML(out *Writer) {
	out.WriteString("<td")
	if c.rowspan != 1 {
		out.IntAttr("rowspan", c.rowspan)
	}
	if c.colspan != 1 {
		out.IntAttr("colspan", c.colspan)
	}
	out.WriteString(">")
	emitChildren(out, c)
	out.WriteString("</td>\n")
}
