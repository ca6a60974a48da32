package patch

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scenepatch/pkg/geom"
	"github.com/matzehuels/scenepatch/pkg/observability"
	"github.com/matzehuels/scenepatch/pkg/resource"
	"github.com/matzehuels/scenepatch/pkg/route"
	"github.com/matzehuels/scenepatch/pkg/scene"
	"github.com/matzehuels/scenepatch/pkg/shape"
	"github.com/matzehuels/scenepatch/pkg/surface"
)

// PathRequest describes the edge a [PathResolver] is asked to draw.
type PathRequest struct {
	Edge     *scene.Edge
	From, To *scene.Node
	Start    geom.Vec2
	End      geom.Vec2
	Default  route.Result
}

// PathResolver overrides the path description of an edge. fallback returns
// the default path. A returned error, or a panic, keeps the default.
type PathResolver func(req PathRequest, fallback func() string) (string, error)

// Options configures an [Engine].
type Options struct {
	// PathResolver optionally replaces computed edge paths.
	PathResolver PathResolver

	// Icons resolves Media.Name for node icons at mount time.
	Icons *scene.IconRegistry

	// Logger receives soft-skip and resolver diagnostics.
	// Nil discards them.
	Logger *log.Logger
}

// Stats summarizes one patch pass.
type Stats struct {
	Nodes          int // nodes patched
	Edges          int // edges patched
	Skipped        int // nodes, edges or elements skipped
	ResolverErrors int // custom resolver failures
	Reordered      int // elements moved to restore draw order
}

// Engine patches scenes onto one surface.
type Engine struct {
	surface   surface.Surface
	resources *resource.Cache
	opts      Options
	logger    *log.Logger
}

// New returns an engine bound to s. The engine owns a resource cache
// scoped to s.
func New(s surface.Surface, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Engine{
		surface:   s,
		resources: resource.New(s.Defs()),
		opts:      opts,
		logger:    logger,
	}
}

// Resources returns the engine's resource cache.
func (e *Engine) Resources() *resource.Cache { return e.resources }

// Patch applies sc to the surface in one synchronous pass. It never fails:
// anything that cannot be applied is skipped and counted.
func (e *Engine) Patch(sc *scene.Scene) Stats {
	start := time.Now()
	p := pass{
		Engine: e,
		scene:  sc,
		off:    shape.Displacements(sc.Nodes),
		nodes:  make(map[string]*scene.Node, len(sc.Nodes)),
	}
	for i := range sc.Nodes {
		p.nodes[sc.Nodes[i].ID] = &sc.Nodes[i]
	}

	for i := range sc.Nodes {
		p.node(&sc.Nodes[i])
	}
	for i := range sc.Edges {
		p.edge(&sc.Edges[i])
	}
	p.stats.Reordered = p.reorder()

	e.logger.Debug("patched scene",
		"nodes", p.stats.Nodes,
		"edges", p.stats.Edges,
		"skipped", p.stats.Skipped,
		"reordered", p.stats.Reordered)
	observability.Patch().OnPatchComplete(p.stats.Nodes, p.stats.Edges, p.stats.Skipped, time.Since(start))
	return p.stats
}

// pass holds the per-call state of one Patch invocation.
type pass struct {
	*Engine
	scene *scene.Scene
	off   shape.Offsets
	nodes map[string]*scene.Node
	stats Stats
}

// get looks up an element, counting a miss as a skip.
func (p *pass) get(id string) (surface.Element, bool) {
	el, ok := p.surface.Get(id)
	if !ok {
		p.stats.Skipped++
		p.logger.Debug("element not found", "id", id)
	}
	return el, ok
}

// optional looks up an element that may legitimately be absent.
func (p *pass) optional(id string) (surface.Element, bool) {
	return p.surface.Get(id)
}

// sketch resolves whether an element is sketched and with which seed.
// An explicit per-element flag overrides the scene-wide setting.
func (p *pass) sketch(id string, flag *bool, seed *uint32) (bool, uint32) {
	enabled := p.scene.Sketch != nil && p.scene.Sketch.Enabled
	if flag != nil {
		enabled = *flag
	}
	if !enabled {
		return false, 0
	}
	if seed != nil {
		return true, *seed
	}
	s := resource.SeedFor(id)
	if p.scene.Sketch != nil {
		s ^= p.scene.Sketch.Seed
	}
	return true, s
}

// applySketch attaches or detaches the sketch filter on el.
func (p *pass) applySketch(el surface.Element, enabled bool, seed uint32) {
	if enabled {
		id := p.resources.Ensure(resource.Sketch{Seed: seed})
		el.SetAttr("filter", resource.FilterURL(id))
		return
	}
	if v, ok := el.Attr("filter"); ok && resource.IsSketchFilter(v) {
		el.RemoveAttr("filter")
	}
}

// setOrRemove writes attr when v is non-nil and removes it otherwise.
func setOrRemove(el surface.Element, attr string, v *float64) {
	if v != nil {
		el.SetAttr(attr, geom.Num(*v))
		return
	}
	el.RemoveAttr(attr)
}

// setString writes attr when v is non-empty and removes it otherwise.
func setString(el surface.Element, attr, v string) {
	if v != "" {
		el.SetAttr(attr, v)
		return
	}
	el.RemoveAttr(attr)
}

// resolvePath runs the custom resolver, recovering from panics.
func (p *pass) resolvePath(req PathRequest) (d string) {
	d = req.Default.D
	fallback := func() string { return req.Default.D }
	defer func() {
		if r := recover(); r != nil {
			p.resolverFailed(req.Edge.ID, fmt.Errorf("path resolver panic: %v", r))
			d = req.Default.D
		}
	}()
	out, err := p.opts.PathResolver(req, fallback)
	if err != nil {
		p.resolverFailed(req.Edge.ID, err)
		return req.Default.D
	}
	if out == "" {
		return req.Default.D
	}
	return out
}

func (p *pass) resolverFailed(edgeID string, err error) {
	p.stats.ResolverErrors++
	p.logger.Warn("path resolver failed, using default path", "edge", edgeID, "err", err)
	observability.Patch().OnResolverError(edgeID, err)
}
