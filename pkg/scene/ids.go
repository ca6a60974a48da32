package scene

import "strconv"

// Element ids are the ids the patch engine gives the rendered elements of a
// scene. Validate rejects scenes whose authored ids would derive the same
// element id twice.

// MaxEdgeLabels is the number of label slots per edge.
const MaxEdgeLabels = 3

// NodeID returns the group id of a scene node.
func NodeID(id string) string { return "node-" + id }

// NodeShapeID returns the outline element id of a scene node.
func NodeShapeID(id string) string { return NodeID(id) + "-shape" }

// NodeLabelID returns the text element id of a scene node.
func NodeLabelID(id string) string { return NodeID(id) + "-label" }

// NodeImageID returns the image element id of a scene node.
func NodeImageID(id string) string { return NodeID(id) + "-image" }

// NodeIconID returns the icon element id of a scene node.
func NodeIconID(id string) string { return NodeID(id) + "-icon" }

// NodeSVGID returns the inline-markup element id of a scene node.
func NodeSVGID(id string) string { return NodeID(id) + "-svg" }

// NodeHeaderID returns the header divider id of a container node.
func NodeHeaderID(id string) string { return NodeID(id) + "-header" }

// NodePortID returns the element id of a node port.
func NodePortID(id, port string) string { return NodeID(id) + "-port-" + port }

// EdgeID returns the group id of a scene edge.
func EdgeID(id string) string { return "edge-" + id }

// EdgePathID returns the visible path id of a scene edge.
func EdgePathID(id string) string { return EdgeID(id) + "-path" }

// EdgeHitID returns the pointer-target path id of a scene edge.
func EdgeHitID(id string) string { return EdgeID(id) + "-hit" }

// EdgeLabelID returns the id of label slot i of a scene edge.
func EdgeLabelID(id string, i int) string { return EdgeID(id) + "-label-" + strconv.Itoa(i) }

// OverlayID returns the element id of an overlay.
func OverlayID(id string) string { return "overlay-" + id }
