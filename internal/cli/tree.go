package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mypoly/pkg/catalog"
	"github.com/matzehuels/mypoly/pkg/model"
	"github.com/matzehuels/mypoly/pkg/pipeline"
)

// treeOpts holds the command-line flags for the tree command.
type treeOpts struct {
	state    stateOpts
	dot      bool   // print Graphviz DOT instead of the text tree
	svg      string // write a Graphviz SVG diagram to this path
	detailed bool   // include geometry and transforms
}

// treeCommand creates the tree command, which shows the part hierarchy of
// the 3D mannequin.
func (c *CLI) treeCommand() *cobra.Command {
	var opts treeOpts

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the part hierarchy of the 3D mannequin",
		Example: `  mypoly tree -s hairstyle=style3
  mypoly tree --detailed --svg parts.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.state.variant == "" && opts.state.preset == "" {
				opts.state.variant = string(catalog.Solid)
			}
			return runTree(cmd.Context(), &opts)
		},
	}

	opts.state.register(cmd)
	cmd.Flags().BoolVar(&opts.dot, "dot", false, "print Graphviz DOT source")
	cmd.Flags().StringVar(&opts.svg, "svg", "", "write a Graphviz SVG diagram to this file")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include geometry and transforms")

	return cmd
}

func runTree(ctx context.Context, opts *treeOpts) error {
	logger := loggerFromContext(ctx)

	st, err := opts.state.build(ctx, catalog.Default())
	if err != nil {
		return err
	}
	if st.Variant() != catalog.Solid {
		return invalidInput("tree needs a solid avatar, got %s", st.Variant())
	}
	ch, err := pipeline.Assemble(st)
	if err != nil {
		return err
	}
	defer ch.Close()
	logger.Debug("assembled character", "geometries", ch.Pool().Live())

	popts := pipeline.Options{Detailed: opts.detailed}
	switch {
	case opts.svg != "":
		popts.Format = pipeline.FormatTree
		data, err := pipeline.RenderCharacter(ctx, ch, popts)
		if err != nil {
			return err
		}
		if err := writeFile(opts.svg, data); err != nil {
			return err
		}
		printSuccess("Rendered part hierarchy")
		printFile(opts.svg)
	case opts.dot:
		popts.Format = pipeline.FormatDOT
		data, err := pipeline.RenderCharacter(ctx, ch, popts)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	default:
		fmt.Println(partTree(ch.Root(), opts.detailed))
	}
	return nil
}

// partTree converts the node hierarchy into a lipgloss tree.
func partTree(n *model.Node, detailed bool) *tree.Tree {
	t := tree.Root(partLabel(n, detailed)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(StyleDim).
		RootStyle(StyleTitle)
	for _, child := range n.Children() {
		if child.IsGroup() {
			t.Child(partTree(child, detailed))
		} else {
			t.Child(partLabel(child, detailed))
		}
	}
	return t
}

func partLabel(n *model.Node, detailed bool) string {
	if n.IsGroup() {
		return n.Name
	}
	label := n.Name
	if n.Material != nil {
		label = swatch(n.Material.Color) + " " + label + " " + StyleDim.Render(string(n.Material.Slot))
	}
	if detailed {
		p := n.Transform.Position
		label += lipgloss.NewStyle().Foreground(colorGray).Render(
			fmt.Sprintf("  %s  pos %.2f %.2f %.2f", n.Geometry.Spec(), p[0], p[1], p[2]))
	}
	return label
}
