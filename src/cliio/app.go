package cliio

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/urfave/cli"

	"permutation_lp/src/lp"
)

// Tool is the shared shell of the batch commands: it owns the standard streams,
// the stderr logger and the -d / --verbose flags.
type Tool struct {
	App    *cli.App
	Stdin  io.Reader
	Stdout io.Writer
	Logger *log.Logger

	verbose bool
}

func NewTool(name, usage string, stdin io.Reader, stdout, stderr io.Writer) *Tool {
	app := cli.NewApp()
	app.Name = name
	app.Usage = usage
	app.ArgsUsage = "[input] [output]"
	app.HideVersion = true
	app.Writer = stderr
	app.ErrWriter = stderr
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "d", Value: ".", Usage: "base `DIR` prepended to input and output file names"},
		cli.BoolFlag{Name: "verbose", Usage: "log progress to standard error"},
	}
	return &Tool{
		App:    app,
		Stdin:  stdin,
		Stdout: stdout,
		Logger: log.New(stderr, name+": ", 0),
	}
}

// Options reads the -d flag and up to maxArgs positional arguments.
func (t *Tool) Options(c *cli.Context, maxArgs int) (Options, error) {
	t.verbose = c.Bool("verbose")
	if c.NArg() > maxArgs {
		return Options{}, fmt.Errorf("expected at most %d positional arguments, got %d", maxArgs, c.NArg())
	}
	return FromArgs(c.String("d"), c.Args()), nil
}

// Debugf logs only when --verbose is set.
func (t *Tool) Debugf(format string, args ...any) {
	if t.verbose {
		t.Logger.Printf(format, args...)
	}
}

// boolFlags returns every spelling of the flags that take no value.
func (t *Tool) boolFlags() map[string]bool {
	names := map[string]bool{"h": true, "help": true}
	for _, f := range t.App.Flags {
		switch f.(type) {
		case cli.BoolFlag, cli.BoolTFlag:
			for _, name := range strings.Split(f.GetName(), ",") {
				names[strings.TrimSpace(name)] = true
			}
		}
	}
	return names
}

// hoistFlags moves flags (and their values) ahead of the positional arguments,
// since the flag parser stops at the first positional. Everything after "--" is
// positional.
func (t *Tool) hoistFlags(args []string) []string {
	if len(args) == 0 {
		return args
	}
	isBool := t.boolFlags()
	flags, positionals := []string{args[0]}, make([]string, 0, len(args))
	dashes := false
	for i := 1; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			dashes = true
			positionals = append(positionals, args[i+1:]...)
			i = len(args)
		case arg == stdStream || !strings.HasPrefix(arg, "-"):
			positionals = append(positionals, arg)
		default:
			flags = append(flags, arg)
			name := strings.TrimLeft(arg, "-")
			if !strings.Contains(name, "=") && !isBool[name] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		}
	}
	if dashes {
		flags = append(flags, "--")
	}
	return append(flags, positionals...)
}

// Run executes the tool and maps the outcome to a process exit code. Flags may
// appear before or after the positional arguments.
func (t *Tool) Run(args []string) int {
	if err := t.App.Run(t.hoistFlags(args)); err != nil {
		t.Logger.Println(err)
		return lp.ExitCode(err)
	}
	return lp.ExitOK
}
