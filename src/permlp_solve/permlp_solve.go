package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
	"github.com/urfave/cli"

	"permutation_lp/src/cliio"
	"permutation_lp/src/lp"
	"permutation_lp/src/solve"
)

// systemInfo describes the machine the solver runs on, for verbose logs.
func systemInfo() string {
	platform, model, ram := "unknown", "unknown", "unknown"
	if hostStat, err := host.Info(); err == nil {
		platform = hostStat.Platform
	}
	if cpuStat, err := cpu.Info(); err == nil && len(cpuStat) > 0 {
		model = cpuStat[0].ModelName
	}
	if vmStat, err := mem.VirtualMemory(); err == nil {
		ram = fmt.Sprintf("%d GB", vmStat.Total/1024/1024/1024)
	}
	return fmt.Sprintf("platform: %s, cpu: %s, ram: %s", platform, model, ram)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	tool := cliio.NewTool("permlp_solve",
		"minimize a linear program and write its solution",
		stdin, stdout, stderr)
	tool.App.Flags = append(tool.App.Flags,
		cli.StringFlag{
			Name:  "backend",
			Value: solve.DefaultName(),
			Usage: fmt.Sprintf("LP routine to use, one of %v", solve.Names()),
		},
	)

	tool.App.Action = func(c *cli.Context) error {
		opts, err := tool.Options(c, 2)
		if err != nil {
			return err
		}
		backend, err := solve.New(c.String("backend"))
		if err != nil {
			return err
		}

		data, err := opts.ReadInput(tool.Stdin)
		if err != nil {
			return err
		}
		desc, err := lp.ReadDescription(bytes.NewReader(data))
		if err != nil {
			return err
		}
		tool.Debugf("linear program:\n%v", desc)
		tool.Debugf("%s", systemInfo())

		startTime := time.Now()
		sol, err := solve.Solve(desc, backend)
		if err != nil {
			return err
		}
		tool.Debugf("solved with %s in %v", backend.Name(), time.Since(startTime))
		if sol.Status != lp.Optimal {
			tool.Logger.Printf("no optimal solution: %s", sol.Status)
		}
		tool.Debugf("%v", sol)

		out, err := lp.MarshalJSON(sol)
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
