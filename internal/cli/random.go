package cli

import (
	"bytes"
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mypoly/pkg/catalog"
	"github.com/matzehuels/mypoly/pkg/state"
)

// randomCommand creates the random command, which rolls an avatar and
// prints it as a TOML preset.
func (c *CLI) randomCommand() *cobra.Command {
	var (
		variant string
		seed    uint64
		output  string
	)

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Roll a random avatar and print it as a preset",
		Example: `  mypoly random --seed 42
  mypoly random --variant solid -o hero.toml && mypoly render -p hero.toml -f png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := stateOpts{variant: variant, seed: seed, random: true}
			return runRandom(cmd.Context(), opts, output)
		},
	}

	cmd.Flags().StringVar(&variant, "variant", "", "avatar variant: flat (2d, default) or solid (3d)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the preset to a file instead of stdout")

	return cmd
}

func runRandom(ctx context.Context, opts stateOpts, output string) error {
	st, err := opts.build(ctx, catalog.Default())
	if err != nil {
		return err
	}
	if output != "" {
		if err := st.SaveFile(output); err != nil {
			return err
		}
		printSuccess("Saved %s preset", st.Variant())
		printFile(output)
		return nil
	}

	var buf bytes.Buffer
	if err := state.EncodePreset(&buf, st.Preset()); err != nil {
		return err
	}
	_, err = os.Stdout.Write(buf.Bytes())
	return err
}
