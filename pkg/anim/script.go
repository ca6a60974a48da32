package anim

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/matzehuels/scenepatch/pkg/errors"
	"github.com/matzehuels/scenepatch/pkg/scene"
)

// Script is the declarative form of a [Builder] session, used where the
// caller cannot run Go code (the CLI compile command and the HTTP API).
type Script struct {
	Steps []Step `json:"steps"`
}

// Step is one builder call sequence. Within a step the fields apply in
// order: target selection, At, Wait, then To when To is non-nil.
type Step struct {
	Node     string   `json:"node,omitempty"`
	Edge     string   `json:"edge,omitempty"`
	At       *float64 `json:"at,omitempty"`
	Wait     float64  `json:"wait,omitempty"`
	To       Props    `json:"to,omitempty"`
	Duration float64  `json:"duration,omitempty"`
	Easing   string   `json:"easing,omitempty"`
	From     *float64 `json:"from,omitempty"`
}

// ParseScript decodes a JSON script.
func ParseScript(data []byte) (*Script, error) {
	return ReadScript(bytes.NewReader(data))
}

// ReadScript decodes a JSON script from r.
func ReadScript(r io.Reader) (*Script, error) {
	var s Script
	dec := json.NewDecoder(r)
	dec.UseNumber()
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode animation script")
	}
	return &s, nil
}

// Compile runs the script through a [Builder].
func Compile(s *Script) (scene.AnimationSpec, error) {
	b := New()
	for i, st := range s.Steps {
		if st.Node != "" && st.Edge != "" {
			return scene.AnimationSpec{}, errors.New(errors.ErrCodeInvalidInput,
				"step %d: node and edge are mutually exclusive", i)
		}
		switch {
		case st.Node != "":
			b.Node(st.Node)
		case st.Edge != "":
			b.Edge(st.Edge)
		}
		if st.At != nil {
			b.At(*st.At)
		}
		b.Wait(st.Wait)
		if st.To != nil {
			b.To(st.To, Options{Duration: st.Duration, Easing: st.Easing, From: st.From})
		}
		if err := b.Err(); err != nil {
			return scene.AnimationSpec{}, errors.Wrap(errors.GetCode(err), err, "step %d", i)
		}
	}
	return b.Build()
}
