package sink

import (
	"encoding/json"

	"github.com/matzehuels/scenepatch/pkg/surface"
)

// RenderJSON returns the indented JSON snapshot of the tree.
func RenderJSON(t *surface.Tree) ([]byte, error) {
	return json.MarshalIndent(t.Snapshot(), "", "  ")
}
