package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lahtis/glfm/pkg/pipeline"
)

// posStatsCommand creates the pos-stats command.
func (c *CLI) posStatsCommand() *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "pos-stats",
		Short: "Count parts of speech per language in a Wiktextract dump",
		Long: `Stream a Wiktextract JSONL dump (optionally gzip-compressed) and write the
per-language part-of-speech counts that build reads as pos_stats.json.`,
		Example: `  glfm pos-stats
  glfm pos-stats -i raw-wiktextract-data.jsonl.gz -o data/pos_stats.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if input == "" {
				input = cfg.Paths.WiktextractPath()
			}
			if output == "" {
				output = cfg.Paths.Sources().PosStats
			}

			ctx := cmd.Context()
			prog := newProgress(loggerFromContext(ctx))
			sum, err := newRunner(ctx).POSStats(ctx, pipeline.POSStatsOptions{Input: input, Output: output})
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Counted %d entries", sum.Entries))

			printSuccess("POS statistics written")
			printFile(output)
			if sum.Malformed > 0 {
				printWarning("%d of %d lines were malformed", sum.Malformed, sum.Lines)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Wiktextract dump (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default from config)")
	return cmd
}
