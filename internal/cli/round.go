package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/govalues/bcnum"
)

type roundFunc func(d bcnum.Decimal, prec int) string

var (
	roundMethod roundFunc = bcnum.Decimal.Round
	floorMethod roundFunc = bcnum.Decimal.Floor
	ceilMethod  roundFunc = bcnum.Decimal.Ceil
)

func roundingCmd(a *app, name, short string, f roundFunc) *cobra.Command {
	var prec int

	c := &cobra.Command{
		Use:     name + " <number>",
		Short:   short,
		Example: fmt.Sprintf("  bccalc %s 1.2345\n  bccalc %s --precision 3 -- -1.2345", name, name),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("precision") {
				prec = a.cfg.Precision
			}
			log := a.log.WithFields(logrus.Fields{
				"command":   name,
				"number":    args[0],
				"precision": prec,
			})

			if prec < 0 {
				err := fmt.Errorf("precision %d: %w", prec, bcnum.ErrPrecisionRange)
				log.WithError(err).Error("invalid flag")
				return err
			}

			d, err := bcnum.Parse(args[0])
			if err != nil {
				log.WithError(err).Error("invalid number")
				return err
			}

			out := f(d, prec)
			log.WithField("result", out).Debug("rounded")

			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	c.Flags().IntVarP(&prec, "precision", "p", bcnum.DefaultRoundPrecision, "digits after the decimal point (default from config)")
	return c
}
