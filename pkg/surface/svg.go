package surface

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"slices"
	"strings"
)

// SVGOption configures SVG serialization.
type SVGOption func(*svgWriter)

type svgWriter struct {
	plain bool
}

// WithPlainSVG omits everything that depends on definitions or embedded
// content: the defs block, url() references, raw markup, and nested
// image or svg elements. The result suits simple rasterizers.
func WithPlainSVG() SVGOption {
	return func(w *svgWriter) { w.plain = true }
}

// MarshalSVG returns the tree as a standalone SVG document.
func (t *Tree) MarshalSVG(opts ...SVGOption) []byte {
	var buf bytes.Buffer
	t.writeSVG(&buf, opts)
	return buf.Bytes()
}

// WriteSVG writes the tree as a standalone SVG document to w.
func (t *Tree) WriteSVG(w io.Writer, opts ...SVGOption) error {
	var buf bytes.Buffer
	t.writeSVG(&buf, opts)
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func (t *Tree) writeSVG(buf *bytes.Buffer, opts []SVGOption) {
	var sw svgWriter
	for _, opt := range opts {
		opt(&sw)
	}
	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %g %g" width="%g" height="%g">`+"\n",
		t.width, t.height, t.width, t.height)
	if len(t.defs) > 0 && !sw.plain {
		buf.WriteString("  <defs>\n")
		for _, d := range t.defs {
			writeDef(buf, d, 2)
		}
		buf.WriteString("  </defs>\n")
	}
	for _, l := range t.layers {
		sw.element(buf, l, 1)
	}
	buf.WriteString("</svg>\n")
}

func writeDef(buf *bytes.Buffer, d Def, depth int) {
	indent(buf, depth)
	buf.WriteByte('<')
	buf.WriteString(d.Tag)
	if d.ID != "" {
		writeAttr(buf, "id", d.ID)
	}
	for _, a := range d.Attrs {
		writeAttr(buf, a.Name, a.Value)
	}
	if len(d.Children) == 0 {
		buf.WriteString("/>\n")
		return
	}
	buf.WriteString(">\n")
	for _, c := range d.Children {
		writeDef(buf, c, depth+1)
	}
	indent(buf, depth)
	fmt.Fprintf(buf, "</%s>\n", d.Tag)
}

func (sw *svgWriter) element(buf *bytes.Buffer, e *TreeElement, depth int) {
	indent(buf, depth)
	buf.WriteByte('<')
	buf.WriteString(e.tag)
	if e.id != "" {
		writeAttr(buf, "id", e.id)
	}
	for _, a := range e.attrs {
		if sw.plain && strings.HasPrefix(a.Value, "url(") {
			continue
		}
		writeAttr(buf, a.Name, a.Value)
	}
	if len(e.style) > 0 {
		writeAttr(buf, "style", styleString(e.style))
	}

	children := e.children
	if sw.plain {
		children = slices.DeleteFunc(slices.Clone(children), plainSkip)
	}

	switch {
	case len(children) > 0:
		buf.WriteString(">\n")
		for _, c := range children {
			sw.element(buf, c, depth+1)
		}
		indent(buf, depth)
	case e.raw != "":
		buf.WriteByte('>')
		buf.WriteString(e.raw)
	case e.text != "":
		buf.WriteByte('>')
		xml.EscapeText(buf, []byte(e.text))
	default:
		buf.WriteString("/>\n")
		return
	}
	fmt.Fprintf(buf, "</%s>\n", e.tag)
}

// plainSkip reports whether a child is left out of plain output: embedded
// markup and nested documents.
func plainSkip(e *TreeElement) bool {
	return e.raw != "" || e.tag == "svg" || e.tag == "image"
}

func writeAttr(buf *bytes.Buffer, name, value string) {
	buf.WriteByte(' ')
	buf.WriteString(name)
	buf.WriteString(`="`)
	xml.EscapeText(buf, []byte(value))
	buf.WriteByte('"')
}

func styleString(style []Attr) string {
	parts := make([]string, len(style))
	for i, s := range style {
		parts[i] = s.Name + ": " + s.Value
	}
	return strings.Join(parts, "; ")
}

func indent(buf *bytes.Buffer, depth int) {
	for range depth {
		buf.WriteString("  ")
	}
}
