package cliio

import (
	"io"
	"os"
	"path/filepath"

	"permutation_lp/src/lp"
)

const stdStream = "-"

// Options locates the input and output of a batch tool. Empty Input or Output (or
// "-") selects the standard streams; BaseDir is joined with relative names.
type Options struct {
	BaseDir string
	Input   string
	Output  string
}

func FromArgs(baseDir string, args []string) Options {
	opts := Options{BaseDir: baseDir}
	if len(args) > 0 {
		opts.Input = args[0]
	}
	if len(args) > 1 {
		opts.Output = args[1]
	}
	return opts
}

func (o Options) resolve(name string) string {
	if name == "" || name == stdStream {
		return ""
	}
	if filepath.IsAbs(name) || o.BaseDir == "" {
		return name
	}
	return filepath.Join(o.BaseDir, name)
}

func (o Options) InputPath() string {
	return o.resolve(o.Input)
}

func (o Options) OutputPath() string {
	return o.resolve(o.Output)
}

// ReadInput returns the whole input, from the resolved file or from stdin.
func (o Options) ReadInput(stdin io.Reader) ([]byte, error) {
	path := o.InputPath()
	if path == "" {
		data, err := io.ReadAll(stdin)
		return data, lp.IOf(err, "error while reading standard input")
	}
	data, err := os.ReadFile(path)
	return data, lp.IOf(err, "error while reading %s", path)
}

// WriteOutput writes data to the resolved file, or to stdout. The file is only
// created once the whole output is available.
func (o Options) WriteOutput(stdout io.Writer, data []byte) error {
	path := o.OutputPath()
	if path == "" {
		_, err := stdout.Write(data)
		return lp.IOf(err, "error while writing standard output")
	}

	file, err := os.Create(path)
	if err != nil {
		return lp.IOf(err, "error while creating %s", path)
	}
	defer file.Close()

	if _, err := file.Write(data); err != nil {
		return lp.IOf(err, "error while writing %s", path)
	}
	return lp.IOf(file.Close(), "error while closing %s", path)
}
