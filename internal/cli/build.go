package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lahtis/glfm/pkg/pipeline"
)

// buildCommand creates the build command for unifying the sources.
func (c *CLI) buildCommand() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Unify the language sources into one catalog",
		Long: `Load the ISO 639, CLDR, Wiktionary, written-language, Glottolog and POS
sources, unify them into one record per code and write unified_languages.json.

Records whose fallback chain dangles or cycles are reported but still written.`,
		Example: `  glfm build
  glfm build --output-dir out`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if outputDir == "" {
				outputDir = cfg.Paths.OutputDir
			}

			ctx := cmd.Context()
			prog := newProgress(loggerFromContext(ctx))
			res, err := newRunner(ctx).Build(ctx, pipeline.BuildOptions{
				Sources:   cfg.Paths.Sources(),
				OutputDir: outputDir,
			})
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Unified %d records", res.Stats.Records))

			printSuccess("Catalog built")
			printFile(res.Path)
			if n := res.Diagnostics.Len(); n > 0 {
				printWarning("%d fallback defects in %d records", n, len(res.Diagnostics.Subjects()))
				printNextStep("Details", "glfm validate --only fallback")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "output directory (default from config)")
	return cmd
}
