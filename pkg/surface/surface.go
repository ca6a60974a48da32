package surface

// Layer names used by the patch engine.
const (
	LayerNodes    = "nodes"
	LayerEdges    = "edges"
	LayerOverlays = "overlays"
)

// Element is one addressable element of the surface.
type Element interface {
	ID() string
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	RemoveAttr(name string)
	Style(prop string) (string, bool)
	SetStyle(prop, value string)
	RemoveStyle(prop string)
	SetText(text string)
}

// Layer is a top-level container whose direct children can be reordered.
type Layer interface {
	// Children returns the ids of the direct children in draw order.
	Children() []string
	// InsertBefore moves child id in front of child ref. An empty ref
	// moves id to the end. Unknown ids are ignored.
	InsertBefore(id, ref string)
}

// Attr is a name/value pair.
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Def is a shared definition such as a marker or a filter.
type Def struct {
	ID       string
	Tag      string
	Attrs    []Attr
	Children []Def
}

// Defs registers shared definitions by id.
type Defs interface {
	Has(id string) bool
	AddDef(d Def)
}

// Surface is the retained render tree addressed by element id.
type Surface interface {
	Get(id string) (Element, bool)
	Layer(name string) (Layer, bool)
	Defs() Defs
}
