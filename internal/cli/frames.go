package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/scenepatch/pkg/anim"
	"github.com/matzehuels/scenepatch/pkg/pipeline"
	"github.com/matzehuels/scenepatch/pkg/scene"
	"github.com/matzehuels/scenepatch/pkg/sink"
)

// framesOpts holds the command-line flags for the frames command.
type framesOpts struct {
	outDir    string  // output directory
	format    string  // frame format: "svg" or "png"
	fps       float64 // frames per second
	scale     float64 // PNG scale factor
	animation string  // animation spec file; empty means the scene's own specs
	noTUI     bool    // plain log output instead of the progress view
}

// framesCommand creates the frames command for animation export.
func (c *CLI) framesCommand() *cobra.Command {
	opts := framesOpts{format: pipeline.FormatSVG}

	cmd := &cobra.Command{
		Use:   "frames [scene.json]",
		Short: "Export an animation frame by frame",
		Long: `Frames mounts the scene once and patches it for every frame, writing
one file per frame (frame-0000.svg, frame-0001.svg, ...).

The animation comes from --animation, or else from every spec embedded in
the scene, merged in order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != pipeline.FormatSVG && opts.format != pipeline.FormatPNG {
				return fmt.Errorf("invalid format: %s (must be 'svg' or 'png')", opts.format)
			}
			if opts.fps == 0 {
				opts.fps = float64(c.Config.Render.FPS)
			}
			if opts.scale == 0 {
				opts.scale = c.Config.Render.Scale
			}
			return c.runFrames(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "output", "o", "frames", "output directory")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "frame format: svg (default), png")
	cmd.Flags().Float64Var(&opts.fps, "fps", 0, "frames per second (default from config, 30)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG scale factor (default from config, 2)")
	cmd.Flags().StringVar(&opts.animation, "animation", "", "animation spec file")
	cmd.Flags().BoolVar(&opts.noTUI, "no-tui", false, "disable the interactive progress view")

	return cmd
}

// mergeSpecs concatenates specs into one. Tween times are absolute, so
// concatenation keeps each spec's timing.
func mergeSpecs(specs []scene.AnimationSpec) scene.AnimationSpec {
	out := scene.AnimationSpec{Version: scene.AnimationVersion, Tweens: []scene.Tween{}}
	for _, s := range specs {
		out.Tweens = append(out.Tweens, s.Tweens...)
	}
	return out
}

func (c *CLI) runFrames(ctx context.Context, input string, opts *framesOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}
	defer runner.Close()

	sc, err := runner.Load(ctx, input)
	if err != nil {
		return err
	}
	spec := mergeSpecs(sc.AnimationSpecs)
	if opts.animation != "" {
		if spec, err = readSpecFile(opts.animation); err != nil {
			return err
		}
	}
	prog.phase("load")
	if len(spec.Tweens) == 0 {
		printWarning("no tweens; exporting a single frame")
	}
	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return err
	}

	total := len(anim.Frames(spec, opts.fps))
	write := func(f pipeline.Frame) (string, error) {
		path := filepath.Join(opts.outDir, fmt.Sprintf("frame-%04d.%s", f.Index, opts.format))
		if opts.format == pipeline.FormatSVG {
			return path, os.WriteFile(path, sink.RenderSVG(f.Tree), 0o644)
		}
		data, err := sink.RenderPNG(f.Tree, sink.WithScale(opts.scale))
		if err != nil {
			return "", err
		}
		return path, os.WriteFile(path, data, 0o644)
	}

	if opts.noTUI || !isatty.IsTerminal(os.Stderr.Fd()) {
		err = runner.Frames(ctx, sc, spec, opts.fps, func(f pipeline.Frame) error {
			path, err := write(f)
			logger.Debug("wrote frame", "index", f.Index, "time", f.Time, "path", path)
			return err
		})
	} else {
		err = runFramesTUI(ctx, total, func(ctx context.Context, p *tea.Program) error {
			return runner.Frames(ctx, sc, spec, opts.fps, func(f pipeline.Frame) error {
				path, err := write(f)
				if err == nil {
					p.Send(frameMsg{index: f.Index, time: f.Time, path: path})
				}
				return err
			})
		})
	}
	if err != nil {
		return err
	}
	prog.phase("export")

	printSuccess("Exported %d frames", total)
	printDetail("Directory: %s", opts.outDir)
	prog.done(fmt.Sprintf("Exported %s", filepath.Base(input)))
	return nil
}

// runFramesTUI runs export in the background while a FramesModel shows
// progress. Quitting the view cancels the export.
func runFramesTUI(ctx context.Context, total int, export func(context.Context, *tea.Program) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewFramesModel(total, cancel), tea.WithOutput(os.Stderr))
	go func() {
		p.Send(framesDoneMsg{err: export(ctx, p)})
	}()

	final, err := p.Run()
	if err != nil {
		return err
	}
	return final.(FramesModel).Err
}
