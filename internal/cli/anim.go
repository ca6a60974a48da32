package cli

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scenepatch/pkg/anim"
	"github.com/matzehuels/scenepatch/pkg/errors"
	"github.com/matzehuels/scenepatch/pkg/scene"
)

// compileCommand creates the compile command.
func (c *CLI) compileCommand() *cobra.Command {
	var output string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "compile [script.json]",
		Short: "Compile an animation script into an animation spec",
		Long: `Compile runs a JSON builder script and writes the resulting spec.

A script is a list of steps. Each step may select a target, move the
cursor, and animate properties:

  {"steps": [
    {"node": "a", "to": {"x": 200}, "duration": 300, "easing": "ease-out"},
    {"wait": 100},
    {"edge": "e1", "at": 0, "to": {"strokeDashoffset": 0}, "from": 40, "duration": 300}
  ]}`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCompile(cmd.Context(), args[0], output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file (- for stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the compile cache")

	return cmd
}

func (c *CLI) runCompile(ctx context.Context, input, output string, noCache bool) error {
	data, err := readAll(input)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spec, cached, err := runner.Compile(ctx, data)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	out, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return err
	}
	if err := writeOutput(output, append(out, '\n')); err != nil {
		return err
	}
	if output != "-" {
		printSuccess("Compiled %d tweens (%gms)", len(spec.Tweens), spec.End())
		printFile(output)
		if cached {
			printDetail("from cache")
		}
		printNextStep("Preview", fmt.Sprintf("%s render scene.json --animation %s --time %g", appName, output, spec.End()))
	}
	return nil
}

// =============================================================================
// Validate
// =============================================================================

// Document kinds accepted by validate.
const (
	kindAuto      = "auto"
	kindScene     = "scene"
	kindAnimation = "animation"
	kindScript    = "script"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	kind := kindAuto

	cmd := &cobra.Command{
		Use:   "validate [file...]",
		Short: "Validate scene, animation spec and script documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				k, err := validateFile(path, kind)
				if err != nil {
					failed++
					printError("%s (%s)", path, k)
					for _, line := range errorLines(err) {
						printDetail("%s", line)
					}
					continue
				}
				printSuccess("%s (%s)", path, k)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d documents invalid", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", kind, "document kind: auto, scene, animation, script")

	return cmd
}

// validateFile validates one document and returns the kind it was checked as.
func validateFile(path, kind string) (string, error) {
	data, err := readAll(path)
	if err != nil {
		return kind, err
	}
	if kind == kindAuto {
		kind = detectKind(data)
	}
	switch kind {
	case kindScene:
		sc, err := scene.Read(bytes.NewReader(data))
		if err == nil {
			warnDangling(sc)
		}
		return kind, err
	case kindAnimation:
		_, err := anim.ParseSpec(data)
		return kind, err
	case kindScript:
		s, err := anim.ParseScript(data)
		if err != nil {
			return kind, err
		}
		_, err = anim.Compile(s)
		return kind, err
	}
	return kind, fmt.Errorf("unknown kind: %q", kind)
}

// detectKind guesses the document kind from its top-level keys.
func detectKind(data []byte) string {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return kindScene
	}
	switch {
	case top["steps"] != nil:
		return kindScript
	case top["tweens"] != nil || top["version"] != nil:
		return kindAnimation
	}
	return kindScene
}

// errorLines flattens joined validation errors into one line each.
func errorLines(err error) []string {
	var e *errors.Error
	if stderrors.As(err, &e) && e.Cause != nil {
		if j, ok := e.Cause.(interface{ Unwrap() []error }); ok {
			var lines []string
			for _, inner := range j.Unwrap() {
				lines = append(lines, errorLines(inner)...)
			}
			return lines
		}
	}
	return []string{err.Error()}
}

func readAll(path string) ([]byte, error) {
	f, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
