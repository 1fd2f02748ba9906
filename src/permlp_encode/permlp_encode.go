package main

import (
	"io"
	"os"

	"github.com/urfave/cli"

	"permutation_lp/src/cliio"
	"permutation_lp/src/lp"
	"permutation_lp/src/perm"
)

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	tool := cliio.NewTool("permlp_encode",
		"encode a permutation pair and an objective as a linear program",
		stdin, stdout, stderr)

	tool.App.Action = func(c *cli.Context) error {
		opts, err := tool.Options(c, 2)
		if err != nil {
			return err
		}

		data, err := opts.ReadInput(tool.Stdin)
		if err != nil {
			return err
		}
		inst, err := perm.ParseInstance(string(data))
		if err != nil {
			return err
		}
		tool.Debugf("instance:\n%v", inst)

		desc, err := perm.Encode(inst)
		if err != nil {
			return err
		}
		tool.Debugf("linear program:\n%v", desc)

		out, err := lp.MarshalJSON(desc)
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
