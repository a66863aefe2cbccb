package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lahtis/glfm/pkg/pipeline"
	"github.com/lahtis/glfm/pkg/validate"
)

// validateCommand creates the validate command for checking the catalog.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		catalogPath string
		outputDir   string
		only        []string
		strict      bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the persisted catalog",
		Long: fmt.Sprintf(`Run the catalog validators and write validation_errors.json.

Validators: %s`, strings.Join(validatorNames(), ", ")),
		Example: `  glfm validate
  glfm validate --only fallback,bcp47 --strict`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if outputDir == "" {
				outputDir = cfg.Paths.OutputDir
			}
			if catalogPath == "" {
				catalogPath = filepath.Join(outputDir, pipeline.CatalogFile)
			}

			ctx := cmd.Context()
			report, path, err := newRunner(ctx).Validate(ctx, pipeline.ValidateOptions{
				CatalogPath: catalogPath,
				OutputDir:   outputDir,
				Validators:  only,
			})
			if err != nil {
				return err
			}

			for _, name := range report.Names() {
				n := report.Results[name].Len()
				if n == 0 {
					printSuccess("%s", name)
					continue
				}
				printWarning("%s: %d findings", name, n)
				for _, d := range report.Results[name][:min(n, 3)] {
					printDetail("%s", d.Error())
				}
			}
			printFile(path)

			if strict && !report.OK() {
				return fmt.Errorf("%d validation findings", report.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog file (default <output-dir>/unified_languages.json)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "output directory (default from config)")
	cmd.Flags().StringSliceVar(&only, "only", nil, "run only the named validators")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when anything is reported")

	return cmd
}

func validatorNames() []string {
	names := make([]string, len(validate.All))
	for i, v := range validate.All {
		names[i] = v.Name
	}
	return names
}
