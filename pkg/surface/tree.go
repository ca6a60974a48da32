package surface

import (
	"slices"
)

// Tree is an in-memory [Surface].
type Tree struct {
	width, height float64

	layers []*TreeElement
	byID   map[string]*TreeElement

	defs   []Def
	defIDs map[string]bool

	writes int
	moves  int
}

// NewTree returns an empty tree with the given viewport size.
func NewTree(width, height float64) *Tree {
	return &Tree{
		width:  width,
		height: height,
		byID:   make(map[string]*TreeElement),
		defIDs: make(map[string]bool),
	}
}

// Size returns the viewport size.
func (t *Tree) Size() (width, height float64) { return t.width, t.height }

// AddLayer appends a new top-level layer. Adding an existing layer returns
// it unchanged.
func (t *Tree) AddLayer(name string) *TreeElement {
	if l := t.layer(name); l != nil {
		return l
	}
	l := &TreeElement{tree: t, tag: "g", layer: name}
	l.attrs = []Attr{{Name: "data-layer", Value: name}}
	t.layers = append(t.layers, l)
	return l
}

func (t *Tree) layer(name string) *TreeElement {
	for _, l := range t.layers {
		if l.layer == name {
			return l
		}
	}
	return nil
}

// Get implements [Surface].
func (t *Tree) Get(id string) (Element, bool) {
	el, ok := t.byID[id]
	if !ok {
		return nil, false
	}
	return el, true
}

// Lookup returns the concrete element with the given id.
func (t *Tree) Lookup(id string) (*TreeElement, bool) {
	el, ok := t.byID[id]
	return el, ok
}

// Layer implements [Surface].
func (t *Tree) Layer(name string) (Layer, bool) {
	l := t.layer(name)
	if l == nil {
		return nil, false
	}
	return l, true
}

// Defs implements [Surface].
func (t *Tree) Defs() Defs { return (*treeDefs)(t) }

// DefIDs returns the ids of all registered definitions in creation order.
func (t *Tree) DefIDs() []string {
	ids := make([]string, len(t.defs))
	for i, d := range t.defs {
		ids[i] = d.ID
	}
	return ids
}

// Writes returns the number of effective writes since the last reset.
// Writes that set a value it already had are not counted.
func (t *Tree) Writes() int { return t.writes }

// Moves returns the number of child reorderings since the last reset.
func (t *Tree) Moves() int { return t.moves }

// ResetCounters zeroes the write and move counters.
func (t *Tree) ResetCounters() { t.writes, t.moves = 0, 0 }

type treeDefs Tree

func (d *treeDefs) Has(id string) bool { return d.defIDs[id] }

func (d *treeDefs) AddDef(def Def) {
	if d.defIDs[def.ID] {
		return
	}
	d.defIDs[def.ID] = true
	d.defs = append(d.defs, def)
	d.writes++
}

// =============================================================================
// Elements
// =============================================================================

// TreeElement is an element of a [Tree]. It implements [Element] and, for
// layers, [Layer].
type TreeElement struct {
	tree     *Tree
	tag      string
	id       string
	layer    string
	attrs    []Attr
	style    []Attr
	text     string
	raw      string
	parent   *TreeElement
	children []*TreeElement
}

// Append creates a child element. A non-empty id registers the element for
// lookup; an id already in use is taken over by the new element.
func (e *TreeElement) Append(tag, id string) *TreeElement {
	child := &TreeElement{tree: e.tree, tag: tag, id: id, parent: e}
	e.children = append(e.children, child)
	if id != "" {
		e.tree.byID[id] = child
	}
	return child
}

// Tag returns the element name.
func (e *TreeElement) Tag() string { return e.tag }

// ID implements [Element].
func (e *TreeElement) ID() string { return e.id }

// Attr implements [Element].
func (e *TreeElement) Attr(name string) (string, bool) { return get(e.attrs, name) }

// SetAttr implements [Element].
func (e *TreeElement) SetAttr(name, value string) {
	var changed bool
	e.attrs, changed = set(e.attrs, name, value)
	e.count(changed)
}

// RemoveAttr implements [Element].
func (e *TreeElement) RemoveAttr(name string) {
	var changed bool
	e.attrs, changed = remove(e.attrs, name)
	e.count(changed)
}

// Style implements [Element].
func (e *TreeElement) Style(prop string) (string, bool) { return get(e.style, prop) }

// SetStyle implements [Element].
func (e *TreeElement) SetStyle(prop, value string) {
	var changed bool
	e.style, changed = set(e.style, prop, value)
	e.count(changed)
}

// RemoveStyle implements [Element].
func (e *TreeElement) RemoveStyle(prop string) {
	var changed bool
	e.style, changed = remove(e.style, prop)
	e.count(changed)
}

// Text returns the text content.
func (e *TreeElement) Text() string { return e.text }

// SetText implements [Element].
func (e *TreeElement) SetText(text string) {
	e.count(e.text != text)
	e.text = text
}

// SetMarkup replaces the element content with raw vector markup. The
// markup is emitted verbatim by [Tree.WriteSVG].
func (e *TreeElement) SetMarkup(markup string) {
	e.count(e.raw != markup)
	e.raw = markup
}

// Children implements [Layer].
func (e *TreeElement) Children() []string {
	ids := make([]string, 0, len(e.children))
	for _, c := range e.children {
		ids = append(ids, c.id)
	}
	return ids
}

// InsertBefore implements [Layer].
func (e *TreeElement) InsertBefore(id, ref string) {
	from := e.indexOf(id)
	if from < 0 || id == ref {
		return
	}
	child := e.children[from]
	e.children = slices.Delete(e.children, from, from+1)
	to := len(e.children)
	if ref != "" {
		if i := e.indexOf(ref); i >= 0 {
			to = i
		}
	}
	e.children = slices.Insert(e.children, to, child)
	e.tree.moves++
}

func (e *TreeElement) indexOf(id string) int {
	return slices.IndexFunc(e.children, func(c *TreeElement) bool { return c.id == id })
}

func (e *TreeElement) count(changed bool) {
	if changed {
		e.tree.writes++
	}
}

func get(attrs []Attr, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func set(attrs []Attr, name, value string) ([]Attr, bool) {
	for i, a := range attrs {
		if a.Name == name {
			if a.Value == value {
				return attrs, false
			}
			attrs[i].Value = value
			return attrs, true
		}
	}
	return append(attrs, Attr{Name: name, Value: value}), true
}

func remove(attrs []Attr, name string) ([]Attr, bool) {
	i := slices.IndexFunc(attrs, func(a Attr) bool { return a.Name == name })
	if i < 0 {
		return attrs, false
	}
	return slices.Delete(attrs, i, i+1), true
}
