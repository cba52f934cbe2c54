package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mypoly/pkg/catalog"
)

// catalogCommand creates the catalog command.
func (c *CLI) catalogCommand() *cobra.Command {
	var variant string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List part options, color palettes and shape parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			variants := []catalog.Variant{catalog.Flat, catalog.Solid}
			if variant != "" {
				v, err := parseVariant(variant)
				if err != nil {
					return err
				}
				variants = []catalog.Variant{v}
			}
			fmt.Print(renderCatalog(catalog.Default(), variants))
			return nil
		},
	}

	cmd.Flags().StringVar(&variant, "variant", "", "only show one variant: flat or solid")

	return cmd
}

// renderCatalog formats the catalog as one table per variant plus the shape
// parameters.
func renderCatalog(cat *catalog.Catalog, variants []catalog.Variant) string {
	var b strings.Builder
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	for _, v := range variants {
		b.WriteString(StyleTitle.Render(fmt.Sprintf("%s variant", v)))
		b.WriteString("\n")

		var rows [][]string
		for _, c := range cat.Categories(v) {
			var opts []string
			for _, o := range cat.ListOptions(c) {
				opts = append(opts, o.ID+" "+StyleDim.Render(o.Name))
			}
			rows = append(rows, []string{string(c), strings.Join(opts, "\n")})
		}
		for _, slot := range cat.Slots(v) {
			var swatches []string
			for _, col := range cat.ListPalette(slot) {
				swatches = append(swatches, swatch(col))
			}
			rows = append(rows, []string{"color." + string(slot), strings.Join(swatches, " ")})
		}

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
			BorderRow(true).
			Headers("Key", "Values").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				if col == 0 {
					return StyleHighlight
				}
				return lipgloss.NewStyle()
			})
		b.WriteString(t.Render())
		b.WriteString("\n\n")
	}

	b.WriteString(StyleTitle.Render("shape parameters"))
	b.WriteString("\n")
	for _, p := range cat.Params() {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			StyleHighlight.Width(10).Render(p.Name),
			StyleDim.Render(fmt.Sprintf("%s, %.2f..%.2f step %.2f (default %.2f)", p.Label, p.Min, p.Max, p.Step, p.Default))))
	}
	return b.String()
}
