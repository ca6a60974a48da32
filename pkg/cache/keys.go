package cache

import "fmt"

// Key namespaces.
const (
	prefixArtifact = "artifact"
	prefixAnim     = "anim"
)

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key for a rendered artifact of a scene.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string

	// AnimationKey returns the key for a compiled animation script.
	AnimationKey(scriptHash string) string
}

// ArtifactKeyOpts holds every render option that changes output bytes.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	Scale     float64 `json:"scale,omitempty"`
	Time      float64 `json:"time,omitempty"`
	Animation string  `json:"animation,omitempty"` // hash of the applied spec
}

// DefaultKeyer hashes its inputs into namespaced keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey(prefixArtifact, sceneHash, opts)
}

// AnimationKey implements [Keyer].
func (DefaultKeyer) AnimationKey(scriptHash string) string {
	return fmt.Sprintf("%s:%s", prefixAnim, scriptHash)
}

var _ Keyer = DefaultKeyer{}
