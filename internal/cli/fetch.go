package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lahtis/glfm/pkg/integrations/cldr"
	glfmio "github.com/lahtis/glfm/pkg/io"
)

// fetchCLDRCommand creates the fetch-cldr command.
func (c *CLI) fetchCLDRCommand() *cobra.Command {
	var url, output string

	cmd := &cobra.Command{
		Use:   "fetch-cldr",
		Short: "Download the CLDR likely-subtags table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if output == "" {
				output = cfg.Paths.Sources().CLDR
			}

			ctx := cmd.Context()
			spinner := newSpinnerWithContext(ctx, "Downloading likely subtags...")
			spinner.Start()
			data, n, err := cldr.NewClient(url, cfg.Family.UserAgent).Fetch(ctx)
			if err != nil {
				spinner.StopWithError("Download failed")
				return err
			}
			spinner.Stop()

			if err := glfmio.WriteFile(output, data); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Fetched %d likely subtags", n)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", cldr.DefaultURL, "source URL")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default from config)")
	return cmd
}
