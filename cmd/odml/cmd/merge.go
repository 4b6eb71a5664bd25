package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/g-node/odml-go/internal/config"
	"github.com/g-node/odml-go/pkg/odml"
	"github.com/g-node/odml-go/pkg/terminology"
)

var (
	mergePolicyName string
	mergeOutput     string
)

// mergeCmd combines two property documents under a conflict policy.
var mergeCmd = &cobra.Command{
	Use:   "merge <this.yaml> <other.yaml>",
	Short: "Merge two property documents",
	Long: `Merge folds the properties of the second document into the first.
Properties are paired by name, and conflicting fields are resolved
according to the chosen policy:

  this-overrides-other   keep existing fields, fill in gaps
  other-overrides-this   incoming fields win
  combine                keep both values, concatenate definitions

Properties with incompatible names, types, units, or mappings refuse
to merge and are reported.

Examples:
  odml merge session.yaml update.yaml --policy combine -o merged.yaml`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		policy := config.MergePolicy("merge_policy", odml.ThisOverridesOther)
		if mergePolicyName != "" {
			parsed, err := odml.ParseMergePolicy(mergePolicyName)
			if err != nil {
				return err
			}
			policy = parsed
		}

		this, err := loadSection(args[0])
		if err != nil {
			return err
		}
		other, err := loadSection(args[1])
		if err != nil {
			return err
		}

		var failed int
		for _, op := range other.Properties() {
			target := this.Property(op.Name())
			if target == nil {
				this.Add(op.Copy())
				continue
			}
			if err := target.Merge(op, policy); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", op.Name(), err)
				failed++
			}
		}

		data, err := terminology.FromSection(this).Marshal()
		if err != nil {
			return err
		}
		if mergeOutput == "" || mergeOutput == "-" {
			fmt.Fprint(cmd.OutOrStdout(), string(data))
		} else if err := os.WriteFile(mergeOutput, data, 0o644); err != nil {
			return err
		}

		if failed > 0 {
			return fmt.Errorf("%d property merge(s) refused", failed)
		}
		return nil
	},
}

func loadSection(path string) (*odml.Section, error) {
	doc, err := terminology.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return doc.Section()
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().StringVarP(&mergePolicyName, "policy", "p", "", "merge policy (this-overrides-other, other-overrides-this, combine)")
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "write merged document to file instead of stdout")
}
