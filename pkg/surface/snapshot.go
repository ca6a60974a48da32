package surface

// Snapshot is a serializable view of a [Tree].
type Snapshot struct {
	Width  float64           `json:"width"`
	Height float64           `json:"height"`
	Defs   []DefSnapshot     `json:"defs,omitempty"`
	Layers []ElementSnapshot `json:"layers"`
}

// DefSnapshot is the serializable form of a [Def].
type DefSnapshot struct {
	ID       string            `json:"id,omitempty"`
	Tag      string            `json:"tag"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Children []DefSnapshot     `json:"children,omitempty"`
}

// ElementSnapshot is the serializable form of a [TreeElement].
type ElementSnapshot struct {
	Tag      string            `json:"tag"`
	ID       string            `json:"id,omitempty"`
	Layer    string            `json:"layer,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Style    map[string]string `json:"style,omitempty"`
	Text     string            `json:"text,omitempty"`
	Markup   string            `json:"markup,omitempty"`
	Children []ElementSnapshot `json:"children,omitempty"`
}

// Snapshot captures the current state of the tree.
func (t *Tree) Snapshot() Snapshot {
	s := Snapshot{Width: t.width, Height: t.height}
	for _, d := range t.defs {
		s.Defs = append(s.Defs, snapshotDef(d))
	}
	for _, l := range t.layers {
		s.Layers = append(s.Layers, snapshotElement(l))
	}
	return s
}

func snapshotDef(d Def) DefSnapshot {
	out := DefSnapshot{ID: d.ID, Tag: d.Tag, Attrs: attrMap(d.Attrs)}
	for _, c := range d.Children {
		out.Children = append(out.Children, snapshotDef(c))
	}
	return out
}

func snapshotElement(e *TreeElement) ElementSnapshot {
	out := ElementSnapshot{
		Tag:    e.tag,
		ID:     e.id,
		Layer:  e.layer,
		Attrs:  attrMap(e.attrs),
		Style:  attrMap(e.style),
		Text:   e.text,
		Markup: e.raw,
	}
	for _, c := range e.children {
		out.Children = append(out.Children, snapshotElement(c))
	}
	return out
}

func attrMap(attrs []Attr) map[string]string {
	if len(attrs) == 0 {
		return nil
	}
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[a.Name] = a.Value
	}
	return m
}
