package markup

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Image embeds external picture. Source matching any of forbidden patterns is
// blanked and image is not emitted at all.
type Image struct {
	Element
	src, alt      string
	width, height Dimension
	halign        Align
	valign        Align
	margins       [4]int // top, left, right, bottom
}

var marginAttrs = [4]string{"margin-top", "margin-left", "margin-right", "margin-bottom"}

func newImage(parent Node, raw *etree.Element) Handler {
	return &Image{
		Element: NewElement(parent, raw),
		width:   Dimension{Unit: UnitPixels},
		height:  Dimension{Unit: UnitPixels},
		halign:  AlignLeft,
		valign:  AlignMiddle,
	}
}

func (img *Image) Parse(b *Builder) Node {
	if v, ok := img.attr("src"); ok {
		img.src = strings.TrimSpace(v)
		if img.src != "" && b.Options().forbidden(img.src) {
			Report(img, ProblemForbiddenURL, img.src)
			img.src = ""
		}
	}
	img.alt, _ = img.attr("alt")
	if v, ok := img.attr("width"); ok {
		img.width = DecodeDimension(img, "width", v)
	}
	if v, ok := img.attr("height"); ok {
		img.height = DecodeDimension(img, "height", v)
	}
	if v, ok := img.attr("horizontal-align"); ok {
		img.halign = DecodeHAlign(img, "horizontal-align", v)
	}
	if v, ok := img.attr("vertical-align"); ok {
		img.valign = DecodeVAlign(img, "vertical-align", v)
	}
	for i, name := range marginAttrs {
		if v, ok := img.attr(name); ok {
			img.margins[i] = DecodeMargin(img, name, v)
		}
	}
	img.parseChildren(b, img)
	return img
}

func (img *Image) style() string {
	var sb strings.Builder
	switch img.halign {
	case AlignRight:
		sb.WriteString("float:right;")
	case AlignCenter:
		sb.WriteString("display:block;margin-left:auto;margin-right:auto;")
	}
	switch img.valign {
	case AlignTop:
		sb.WriteString("vertical-align:top;")
	case AlignBottom:
		sb.WriteString("vertical-align:bottom;")
	}
	for i, name := range marginAttrs {
		if img.margins[i] != 0 {
			sb.WriteString(name + ":" + strconv.Itoa(img.margins[i]) + "px;")
		}
	}
	return sb.String()
}

func (img *Image) EmitHTML(out *Writer) {
	if img.src == "" {
		return
	}
	out.WriteString("<img")
	out.Attr("src", img.src)
	out.Attr("alt", img.alt)
	if !img.height.IsZero() {
		out.Attr("height", img.height.String())
	}
	if !img.width.IsZero() {
		out.Attr("width", img.width.String())
	}
	if style := img.style(); style != "" {
		out.Attr("style", style)
	}
	out.WriteString("/>")
}
