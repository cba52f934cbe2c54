package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/mypoly/internal/server"
	"github.com/matzehuels/mypoly/pkg/catalog"
)

// serveCommand creates the serve command, which runs the HTTP preview
// server until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		backend string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve avatar previews over HTTP",
		Example: `  mypoly serve --addr :8420
  curl 'http://localhost:8420/avatar.png?hair=hair-2&color.skin=8D5524' -o me.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(backend)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(catalog.Default(), runner, c.Logger)
			printInfo("Serving previews on %s", StyleLink.Render("http://"+addr))
			printDetail("cache: %s", backend)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&backend, "cache", cacheMemory, "artifact cache: memory (default), file, none")

	return cmd
}
