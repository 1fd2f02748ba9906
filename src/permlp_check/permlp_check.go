package main

import (
	"io"
	"os"

	"github.com/urfave/cli"

	"permutation_lp/src/check"
	"permutation_lp/src/cliio"
	"permutation_lp/src/lp"
)

const worstShown = 5

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	tool := cliio.NewTool("permlp_check",
		"check a candidate solution against the constraints of a linear program",
		stdin, stdout, stderr)
	tool.App.Flags = append(tool.App.Flags,
		cli.Float64Flag{
			Name:  "tol",
			Value: check.DefaultTolerance,
			Usage: "absolute tolerance for constraint and bound comparisons",
		},
	)

	tool.App.Action = func(c *cli.Context) error {
		opts, err := tool.Options(c, 2)
		if err != nil {
			return err
		}
		tol := c.Float64("tol")
		if tol < 0 {
			return lp.Malformedf("tolerance must be non-negative, got %g", tol)
		}

		data, err := opts.ReadInput(tool.Stdin)
		if err != nil {
			return err
		}
		desc, x, err := check.ParseInput(data)
		if err != nil {
			return err
		}

		report, err := check.Check(desc, x, tol)
		if err != nil {
			return err
		}
		if !report.Satisfied {
			tool.Logger.Printf("%d constraints violated", len(report.Violations))
			for _, v := range report.Worst(worstShown) {
				tool.Debugf("%s %d: %s (residual %g)", v.Type, v.Index, v.Description, v.Residual)
			}
		}

		out, err := lp.MarshalJSON(report)
		if err != nil {
			return err
		}
		return opts.WriteOutput(tool.Stdout, out)
	}
	return tool.Run(args)
}

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}
