package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/g-node/odml-go/internal/config"
	"github.com/g-node/odml-go/pkg/terminology"
)

var validateTerminologyFile string

// validateCmd checks a property document against a controlled terminology.
var validateCmd = &cobra.Command{
	Use:   "validate <document.yaml>",
	Short: "Validate properties against a terminology",
	Long: `Validate checks every property in a document against the matching
definition of a controlled terminology and reports deviations in
definition text, value types, units, and dependencies.

Examples:
  odml validate session.yaml --terminology odml-terms.yaml
  odml validate session.yaml   # terminology taken from config`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		termPath := validateTerminologyFile
		if termPath == "" {
			termPath = config.TerminologyPath("terminology")
		}
		if termPath == "" {
			return fmt.Errorf("no terminology given, use --terminology or set it in the config file")
		}

		terms, err := terminology.LoadFile(termPath)
		if err != nil {
			return err
		}
		doc, err := terminology.LoadFile(args[0])
		if err != nil {
			return err
		}
		section, err := doc.Section()
		if err != nil {
			return err
		}

		var total int
		for _, p := range section.Properties() {
			reference, err := terms.Property(p.Name())
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: not defined in terminology %q\n", p.Name(), terms.Name)
				total++
				continue
			}
			report := p.Validate(reference)
			for _, w := range report.Warnings {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s: %s\n", w.Property, w.Field, w.Message)
			}
			total += len(report.Warnings)
		}

		if total > 0 {
			return fmt.Errorf("%d validation warning(s)", total)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d properties validated, no warnings\n", len(section.Properties()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateTerminologyFile, "terminology", "t", "", "terminology file to validate against")
}
