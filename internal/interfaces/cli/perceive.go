package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	app "github.com/turtacn/AtomSense/internal/application/perception"
	"github.com/turtacn/AtomSense/internal/domain/molecule"
	"github.com/turtacn/AtomSense/internal/domain/perception"
	"github.com/turtacn/AtomSense/internal/infrastructure/chemio"
	"github.com/turtacn/AtomSense/pkg/errors"
)

// PerceiveOptions holds flags for the perceive command.
type PerceiveOptions struct {
	Mode   string
	Format string
}

// NewPerceiveCmd classifies every molecule of an SD file or molfile.
func NewPerceiveCmd() *cobra.Command {
	opts := &PerceiveOptions{}

	cmd := &cobra.Command{
		Use:   "perceive [file]",
		Short: "Assign an atom type to every atom of the input molecules",
		Long: `Perceive reads an MDL molfile or SD file (or stdin when the argument
is "-" or omitted), classifies every atom against the reference dictionary
and prints one assignment block per molecule.  Atoms no dictionary entry
covers are reported as "X".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPerceive(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", "permissive", "perception mode (permissive, strict)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "output format (table, json, sdf); overrides --output")
	return cmd
}

func runPerceive(cmd *cobra.Command, args []string, opts *PerceiveOptions) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}

	mode, err := perception.ParseMode(opts.Mode)
	if err != nil {
		return err
	}

	in, closeIn, err := openInput(args)
	if err != nil {
		return err
	}
	defer closeIn()

	mols, err := chemio.ReadAll(in)
	if err != nil {
		return err
	}
	if len(mols) == 0 {
		return errors.InvalidParam("input contains no molecules")
	}

	svc := app.NewService(nil, app.WithLogger(cliCtx.Logger))

	format := opts.Format
	if format == "" {
		format = cliCtx.Output
	}

	out := cmd.OutOrStdout()
	var sdfWriter *chemio.Writer
	if format == "sdf" {
		sdfWriter = chemio.NewWriter(out)
	}

	for i, mol := range mols {
		res, err := svc.Perceive(cmd.Context(), mol, mode)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeMoleculeInvalid,
				fmt.Sprintf("record %d", i+1))
		}

		switch format {
		case "json":
			if err := printJSON(cmd, res); err != nil {
				return err
			}
		case "sdf":
			if err := sdfWriter.WriteRecord(mol, res.TypeNames()); err != nil {
				return err
			}
		case "table", "":
			printAssignmentTable(out, i+1, res)
		default:
			return errors.InvalidParam("unknown output format").WithDetail(format)
		}
	}
	return nil
}

func printAssignmentTable(out io.Writer, record int, res *app.Result) {
	title := res.Name
	if title == "" {
		title = fmt.Sprintf("record %d", record)
	}
	fmt.Fprintf(out, "%s  (%s, mode=%s, unmatched=%d)\n",
		title, res.Formula, res.Mode, res.UnmatchedCount)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  #\tSYMBOL\tTYPE\tMATCHED")
	for _, a := range res.Atoms {
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%t\n", a.Index, a.Symbol, a.Type, a.Matched)
	}
	tw.Flush()
	fmt.Fprintln(out)
}

// openInput resolves the positional argument to a reader; "-" or no
// argument means stdin.
func openInput(args []string) (io.Reader, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrCodeBadRequest, "open input file")
	}
	return f, func() { f.Close() }, nil
}

// readSingleMolecule loads exactly one structure from a molfile path,
// with "-" meaning stdin.
func readSingleMolecule(path string) (*molecule.Molecule, error) {
	var in io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeBadRequest, "open input file")
		}
		defer f.Close()
		in = f
	}
	return chemio.ReadMol(in)
}
