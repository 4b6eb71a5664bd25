package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	pkgerrors "github.com/g-node/odml-go/pkg/errors"
	"github.com/g-node/odml-go/pkg/match"
	"github.com/g-node/odml-go/pkg/odml"
)

var matchTypeName string

// matchCmd compares two values for identity.
var matchCmd = &cobra.Command{
	Use:   "match <value1> <value2>",
	Short: "Compare two values for identity",
	Long: `Match compares two values under the semantics of a value type and
prints the strength of the match.

For the person type the comparison decomposes each value into first
and last name and grades the agreement, so "Smith, John" and
"John Smith" count as a full match while "J. Smith" matches the same
person at first-initial strength.

Examples:
  odml match "Smith, John" "John Smith" --type person
  odml match 3.14 3.14 --type float`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, ok := odml.ParseType(matchTypeName)
		if !ok {
			return fmt.Errorf("unknown value type %q", matchTypeName)
		}

		a, err := typedOperand(args[0], typ)
		if err != nil {
			return err
		}
		b, err := typedOperand(args[1], typ)
		if err != nil {
			return err
		}

		level := match.Match(a, b, typ)
		fmt.Fprintln(cmd.OutOrStdout(), level)
		if level <= match.NoMatch {
			return fmt.Errorf("values do not match")
		}
		return nil
	},
}

// typedOperand converts a raw argument into the operand the matcher
// expects for the given type. Textual types pass through unchanged.
func typedOperand(raw string, typ odml.Type) (any, error) {
	switch {
	case typ.Equal(odml.TypeInt):
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, pkgerrors.NewConversionError("int", raw, err)
		}
		return i, nil
	case typ.Equal(odml.TypeFloat):
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, pkgerrors.NewConversionError("float", raw, err)
		}
		return f, nil
	case typ.Equal(odml.TypeBoolean):
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, pkgerrors.NewConversionError("boolean", raw, err)
		}
		return b, nil
	}
	return raw, nil
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringVarP(&matchTypeName, "type", "t", "person", "value type governing the comparison")
}
