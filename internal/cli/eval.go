package cli

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/govalues/bcnum"
	"github.com/govalues/bcnum/internal/calc"
)

func evalCmd(a *app) *cobra.Command {
	var prec int

	c := &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate an expression in prefix notation",
		Long: "Evaluate an expression in prefix (Polish) notation.\n" +
			"Supported operators: " + strings.Join(calc.Operators, " ") + ".\n" +
			"Arguments are joined with spaces, so the expression may be quoted or not.",
		Example: "  bccalc eval '* 10 + 1.23 4.56'\n" +
			"  bccalc eval --precision 4 -- sqrt 2",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr := strings.Join(args, " ")
			log := a.log.WithFields(logrus.Fields{
				"command":    "eval",
				"expression": expr,
			})

			if cmd.Flags().Changed("precision") && prec < 0 {
				err := fmt.Errorf("precision %d: %w", prec, bcnum.ErrPrecisionRange)
				log.WithError(err).Error("invalid flag")
				return err
			}

			log.Debug("evaluating")
			d, err := calc.Evaluate(expr)
			if err != nil {
				log.WithError(err).Error("evaluation failed")
				return err
			}

			out := d.String()
			if cmd.Flags().Changed("precision") {
				out = d.Round(prec)
			}
			log.WithField("result", out).Debug("evaluated")

			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	c.Flags().IntVarP(&prec, "precision", "p", 0, "round the result half away from zero to this many digits")
	return c
}
