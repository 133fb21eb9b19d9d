package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	app "github.com/turtacn/AtomSense/internal/application/perception"
	"github.com/turtacn/AtomSense/internal/domain/perception"
	"github.com/turtacn/AtomSense/internal/infrastructure/depict"
	"github.com/turtacn/AtomSense/pkg/errors"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	Output     string
	Width      int
	Height     int
	TypeLabels bool
	Mode       string
}

// NewRenderCmd draws a molecule to a PNG file, optionally annotated with
// the perceived atom types.
func NewRenderCmd() *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a molfile to a PNG image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "out", "O", "molecule.png", "output PNG path")
	cmd.Flags().IntVar(&opts.Width, "width", 0, "image width in pixels (0 uses the configured default)")
	cmd.Flags().IntVar(&opts.Height, "height", 0, "image height in pixels (0 uses the configured default)")
	cmd.Flags().BoolVar(&opts.TypeLabels, "type-labels", true, "annotate atoms with their perceived types")
	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", "permissive", "perception mode used for the annotations")
	return cmd
}

func runRender(cmd *cobra.Command, args []string, opts *RenderOptions) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}

	mol, err := readSingleMolecule(args[0])
	if err != nil {
		return err
	}

	dcfg := cliCtx.Config.Depict
	render := depict.Options{
		Width:      dcfg.Width,
		Height:     dcfg.Height,
		FontPath:   dcfg.FontPath,
		TypeLabels: opts.TypeLabels,
	}
	if opts.Width > 0 {
		render.Width = opts.Width
	}
	if opts.Height > 0 {
		render.Height = opts.Height
	}

	var types []string
	if opts.TypeLabels {
		mode, err := perception.ParseMode(opts.Mode)
		if err != nil {
			return err
		}
		svc := app.NewService(nil, app.WithLogger(cliCtx.Logger))
		res, err := svc.Perceive(cmd.Context(), mol, mode)
		if err != nil {
			return err
		}
		types = res.TypeNames()
	}

	if err := depict.RenderToFile(opts.Output, mol, types, render); err != nil {
		return errors.Wrap(err, errors.ErrCodeDepictionFailed, "render molecule")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", opts.Output)
	return nil
}
