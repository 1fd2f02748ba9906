package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/urfave/cli"

	"permutation_lp/src/cliio"
	"permutation_lp/src/perm"
)

// GenerateInstance draws two uniform permutations of 1..n and integer objective
// coefficients in 1..maxCost.
func GenerateInstance(rng *rand.Rand, n, maxCost int) (*perm.Instance, error) {
	first, err := perm.FromOneBased(oneBased(rng.Perm(n)))
	if err != nil {
		return nil, err
	}
	second, err := perm.FromOneBased(oneBased(rng.Perm(n)))
	if err != nil {
		return nil, err
	}

	costs := make([]float64, 2*n)
	for j := range costs {
		costs[j] = float64(1 + rng.Intn(maxCost))
	}
	return &perm.Instance{First: first, Second: second, Costs: costs}, nil
}

func oneBased(p []int) []int {
	for i := range p {
		p[i]++
	}
	return p
}

func run(args []string, stdout, stderr io.Writer) int {
	tool := cliio.NewTool("generator",
		"write a random permutation pair with an objective",
		nil, stdout, stderr)
	tool.App.ArgsUsage = "[output]"
	tool.App.Flags = append(tool.App.Flags,
		cli.IntFlag{Name: "n", Usage: "the number of elements"},
		cli.IntFlag{Name: "maxcost", Value: 20, Usage: "the largest objective coefficient"},
		cli.Int64Flag{Name: "seed", Usage: "random seed, 0 draws one"},
	)

	tool.App.Action = func(c *cli.Context) error {
		opts, err := tool.Options(c, 1)
		if err != nil {
			return err
		}
		opts.Output, opts.Input = opts.Input, ""

		n, maxCost := c.Int("n"), c.Int("maxcost")
		if n <= 0 {
			return fmt.Errorf("must specify a positive number of elements")
		}
		if maxCost <= 0 {
			return fmt.Errorf("must specify a positive maximum cost")
		}
		seed := c.Int64("seed")
		if seed == 0 {
			seed = rand.Int63()
		}
		tool.Debugf("seed: %d", seed)

		inst, err := GenerateInstance(rand.New(rand.NewSource(seed)), n, maxCost)
		if err != nil {
			return err
		}
		return opts.WriteOutput(tool.Stdout, []byte(inst.Format()))
	}
	return tool.Run(args)
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}
