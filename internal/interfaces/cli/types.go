package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/turtacn/AtomSense/internal/domain/atomtype"
	"github.com/turtacn/AtomSense/pkg/errors"
	"github.com/turtacn/AtomSense/pkg/types/chem"
)

// TypesOptions holds flags for the types command.
type TypesOptions struct {
	Element string
}

// NewTypesCmd lists or inspects reference dictionary entries.
func NewTypesCmd() *cobra.Command {
	opts := &TypesOptions{}

	cmd := &cobra.Command{
		Use:   "types [name]",
		Short: "List the atom type dictionary, or inspect a single entry",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTypes(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Element, "element", "e", "", "restrict the listing to one element symbol")
	return cmd
}

func runTypes(cmd *cobra.Command, args []string, opts *TypesOptions) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}

	dict, err := atomtype.Load()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		t, ok := dict.Lookup(args[0])
		if !ok {
			return errors.NotFound("atom type not found").WithDetail(args[0])
		}
		if cliCtx.Output == "json" {
			return printJSON(cmd, t)
		}
		printTypeDetail(cmd.OutOrStdout(), t)
		return nil
	}

	var entries []*atomtype.Type
	if opts.Element != "" {
		entries = dict.ForSymbol(opts.Element)
		if len(entries) == 0 {
			return errors.NotFound("no atom types for element").WithDetail(opts.Element)
		}
	} else {
		entries = dict.Types()
	}

	if cliCtx.Output == "json" {
		return printJSON(cmd, entries)
	}
	printTypeTable(cmd.OutOrStdout(), entries)
	return nil
}

func printTypeTable(out io.Writer, entries []*atomtype.Type) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSYMBOL\tNEIGHBORS\tVALENCY\tCHARGE\tMAX ORDER\tHYBRIDIZATION")
	for _, t := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			t.Name, t.Symbol,
			intOrDash(t.Neighbors), intOrDash(t.Valency),
			t.Charge(), orderOrDash(t.MaxBondOrder), t.Hybridization)
	}
	tw.Flush()
}

func printTypeDetail(out io.Writer, t *atomtype.Type) {
	fmt.Fprintf(out, "Name:            %s\n", t.Name)
	fmt.Fprintf(out, "Symbol:          %s\n", t.Symbol)
	fmt.Fprintf(out, "Atomic number:   %d\n", t.AtomicNumber)
	fmt.Fprintf(out, "Neighbors:       %s\n", intOrDash(t.Neighbors))
	fmt.Fprintf(out, "Valency:         %s\n", intOrDash(t.Valency))
	fmt.Fprintf(out, "Formal charge:   %d\n", t.Charge())
	fmt.Fprintf(out, "Max bond order:  %s\n", orderOrDash(t.MaxBondOrder))
	fmt.Fprintf(out, "Hybridization:   %s\n", t.Hybridization)
	fmt.Fprintf(out, "Lone pairs:      %s\n", intOrDash(t.LonePairs))
	fmt.Fprintf(out, "Single e-:       %s\n", intOrDash(t.SingleElectrons))
}

func intOrDash(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

func orderOrDash(o chem.BondOrder) string {
	if o == chem.OrderUnset {
		return "-"
	}
	return o.String()
}
