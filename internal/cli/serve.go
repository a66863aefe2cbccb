package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lahtis/glfm/pkg/errors"
	glfmio "github.com/lahtis/glfm/pkg/io"
	"github.com/lahtis/glfm/pkg/pipeline"
	"github.com/lahtis/glfm/pkg/server"
)

// serveCommand creates the serve command for the read-only HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog and family maps over HTTP",
		Long: `Serve the persisted catalog and family maps as a read-only JSON API.

Routes:
  GET /healthz
  GET /languages
  GET /languages/{id}
  GET /languages/{id}/fallback-chain
  GET /families/{id}

The family routes answer 404 until glfm families has been run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}
			logger := loggerFromContext(cmd.Context())

			catalog, err := glfmio.ImportCatalog(filepath.Join(cfg.Paths.OutputDir, pipeline.CatalogFile))
			if err != nil {
				return err
			}
			families, err := glfmio.ImportFamilies(cfg.Paths.FamiliesDir)
			if errors.Is(err, errors.ErrCodeSourceFileMissing) {
				logger.Warn("no family maps, serving languages only", "dir", cfg.Paths.FamiliesDir)
			} else if err != nil {
				return err
			}

			printInfo("Serving %d languages on %s", len(catalog), StyleHighlight.Render(addr))
			return server.New(catalog, families, logger).ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
