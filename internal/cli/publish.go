package cli

import (
	"context"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	glfmio "github.com/lahtis/glfm/pkg/io"
	"github.com/lahtis/glfm/pkg/pipeline"
	"github.com/lahtis/glfm/pkg/publish"
)

// publishCommand creates the publish command for upserting into MongoDB.
func (c *CLI) publishCommand() *cobra.Command {
	var uri string

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upsert the catalog into MongoDB",
		Long: `Upsert every catalog record into the configured MongoDB collection, keyed
by language code. Running it twice leaves the collection unchanged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if uri == "" {
				uri = cfg.Publish.MongoURI
			}
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			catalog, err := glfmio.ImportCatalog(filepath.Join(cfg.Paths.OutputDir, pipeline.CatalogFile))
			if err != nil {
				return err
			}

			spinner := newSpinnerWithContext(ctx, "Publishing to MongoDB...")
			spinner.Start()
			pub, disconnect, err := publish.Connect(ctx, uri, cfg.Publish.Database, cfg.Publish.Collection, logger)
			if err != nil {
				spinner.StopWithError("Connection failed")
				return err
			}
			defer func() {
				dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
				defer cancel()
				if err := disconnect(dctx); err != nil {
					logger.Warn("disconnect", "error", err)
				}
			}()

			res, err := pub.Publish(ctx, catalog)
			if err != nil {
				spinner.StopWithError("Publish failed")
				return err
			}
			spinner.StopWithSuccess("Published catalog")
			printKeyValue("Collection", cfg.Publish.Database+"."+cfg.Publish.Collection)
			printKeyValue("Upserted", formatInt(res.Upserted))
			printKeyValue("Modified", formatInt(res.Modified))
			printKeyValue("Unchanged", formatInt(res.Matched-res.Modified))
			return nil
		},
	}

	cmd.Flags().StringVar(&uri, "uri", "", "MongoDB connection URI (default from config)")
	return cmd
}
