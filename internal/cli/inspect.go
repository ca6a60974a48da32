package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/scenepatch/pkg/geom"
	"github.com/matzehuels/scenepatch/pkg/scene"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var showEdges bool

	cmd := &cobra.Command{
		Use:   "inspect [scene.json]",
		Short: "Summarize a scene's nodes, edges and animations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := openInput(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			sc, err := scene.Read(f)
			if err != nil {
				return err
			}
			printSceneSummary(sc)
			fmt.Fprintln(stdout)
			fmt.Fprintln(stdout, nodeTable(sc))
			if showEdges && len(sc.Edges) > 0 {
				fmt.Fprintln(stdout)
				fmt.Fprintln(stdout, edgeTable(sc))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showEdges, "edges", true, "list edges")

	return cmd
}

func printSceneSummary(sc *scene.Scene) {
	fmt.Fprintln(stdout, StyleTitle.Render("Scene"))
	printKeyValue("viewBox", fmt.Sprintf("%s × %s", geom.Num(sc.ViewBox.W), geom.Num(sc.ViewBox.H)))
	printKeyValue("nodes", fmt.Sprint(len(sc.Nodes)))
	printKeyValue("edges", fmt.Sprint(len(sc.Edges)))
	if len(sc.Overlays) > 0 {
		printKeyValue("overlays", fmt.Sprint(len(sc.Overlays)))
	}
	if n := len(sc.AnimationSpecs); n > 0 {
		var tweens int
		var end float64
		for _, s := range sc.AnimationSpecs {
			tweens += len(s.Tweens)
			end = max(end, s.End())
		}
		printKeyValue("animations", fmt.Sprintf("%d specs, %d tweens, %gms", n, tweens, end))
	}
	if dangling := sc.DanglingEdges(); len(dangling) > 0 {
		printKeyValue("dangling", strings.Join(dangling, ", "))
	}
}

func newTable(headers ...string) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan).Padding(0, 1)
			}
			return lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)
		})
}

func nodeTable(sc *scene.Scene) string {
	t := newTable("Node", "Shape", "Pos", "Parent", "Label")
	for _, n := range sc.Nodes {
		label := ""
		if n.Label != nil {
			label = n.Label.Text
		}
		t.Row(n.ID, string(n.Shape.Kind),
			geom.Num(n.Pos.X)+","+geom.Num(n.Pos.Y),
			dash(n.ParentID), dash(label))
	}
	return t.Render()
}

func edgeTable(sc *scene.Scene) string {
	idx := sc.NodeIndex()
	t := newTable("Edge", "From", "To", "Routing", "Labels")
	for _, e := range sc.Edges {
		from, to := e.From, e.To
		if _, ok := idx[from]; !ok {
			from = StyleWarning.Render(from + " " + iconWarning)
		}
		if _, ok := idx[to]; !ok {
			to = StyleWarning.Render(to + " " + iconWarning)
		}
		routing := string(e.Routing)
		if routing == "" {
			routing = string(scene.RoutingStraight)
		}
		t.Row(e.ID, from, to, routing, fmt.Sprint(len(e.CollectLabels())))
	}
	return t.Render()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
