package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scenepatch/pkg/anim"
	"github.com/matzehuels/scenepatch/pkg/pipeline"
	"github.com/matzehuels/scenepatch/pkg/scene"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string   // output file path (or base path for multiple outputs)
	formats   []string // output formats: "svg", "png", "json"
	scale     float64  // PNG scale factor
	time      float64  // animation sample time in milliseconds
	animate   bool     // sample the scene's own animation specs
	animation string   // extra animation spec file
	noCache   bool     // disable the artifact cache
	refresh   bool     // ignore cached artifacts
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [scene.json]",
		Short: "Render a scene to SVG, PNG or JSON",
		Long: `Render mounts the scene on a fresh tree and writes one file per format.

With --time (or --animate) animation specs are sampled before rendering:
the scene's own specs with --animate, and the spec in --animation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = pipeline.ParseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if opts.scale == 0 {
				opts.scale = c.Config.Render.Scale
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG scale factor (default from config, 2)")
	cmd.Flags().Float64Var(&opts.time, "time", 0, "animation sample time in milliseconds")
	cmd.Flags().BoolVar(&opts.animate, "animate", false, "sample the scene's own animation specs at --time")
	cmd.Flags().StringVar(&opts.animation, "animation", "", "animation spec file sampled at --time")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")

	return cmd
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, .json), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps each format to its destination file.
// A single format with an explicit output is written exactly there.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// runRender loads the scene from input and renders it to the requested formats.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	sc, err := runner.Load(ctx, input)
	if err != nil {
		return err
	}
	warnDangling(sc)
	prog.phase("load")

	popts := pipeline.Options{
		Formats: opts.formats,
		Scale:   opts.scale,
		Time:    opts.time,
		Animate: opts.animate || (opts.time > 0 && opts.animation == ""),
		Refresh: opts.refresh,
	}
	if opts.animation != "" {
		spec, err := readSpecFile(opts.animation)
		if err != nil {
			return err
		}
		popts.Animation = &spec
	}

	result, err := runner.Render(ctx, sc, popts)
	if err != nil {
		return err
	}
	prog.phase("render")

	paths := outputPaths(opts.output, input, opts.formats)
	for _, format := range opts.formats {
		if err := writeOutput(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
		if paths[format] != "-" {
			printFile(paths[format])
		}
	}
	prog.phase("write")
	printStats(result.Stats, result.CacheInfo.RenderHit)
	prog.done(fmt.Sprintf("Rendered %s", filepath.Base(input)))
	return nil
}

// writeOutput writes data to path ("-" for stdout).
func writeOutput(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// readSpecFile reads and validates an animation spec file.
func readSpecFile(path string) (scene.AnimationSpec, error) {
	f, err := openInput(path)
	if err != nil {
		return scene.AnimationSpec{}, err
	}
	defer f.Close()
	spec, err := anim.ReadSpec(f)
	if err != nil {
		return scene.AnimationSpec{}, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}

// warnDangling prints one warning per edge that will not be drawn.
func warnDangling(sc *scene.Scene) {
	for _, id := range sc.DanglingEdges() {
		printWarning("edge %q references a missing node and will be skipped", id)
	}
}
