package perm

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"permutation_lp/src/lp"
)

// termRe matches one objective term such as "3 x_1", "- y_4", "+2.5*x_10".
var termRe = regexp.MustCompile(`^\s*([+-])?\s*((?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?)?\s*\*?\s*([xy])_(\d+)\s*`)

func parsePermutationLine(line string, which int) (Permutation, error) {
	fields := strings.Fields(line)
	values := make([]int, len(fields))
	for i, tok := range fields {
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, lp.Malformedf("error while parsing permutation %d: %v", which, err)
		}
		values[i] = v
	}
	p, err := FromOneBased(values)
	if err != nil {
		return nil, errors.Wrapf(err, "permutation %d", which)
	}
	return p, nil
}

// ParseObjective reads a linear expression over x_1..x_n and y_1..y_n into 2n
// coefficients. Repeated terms accumulate; an empty expression is the zero objective.
func ParseObjective(expr string, n int) ([]float64, error) {
	costs := make([]float64, 2*n)
	rest := strings.TrimSpace(expr)
	for first := true; rest != ""; first = false {
		m := termRe.FindStringSubmatch(rest)
		if m == nil {
			return nil, lp.Malformedf("error while parsing objective near %q", rest)
		}
		sign, num, name, idx := m[1], m[2], m[3], m[4]
		if sign == "" && !first {
			return nil, lp.Malformedf("error while parsing objective: missing operator before %q", strings.TrimSpace(m[0]))
		}

		k, err := strconv.Atoi(idx)
		if err != nil || k < 1 || k > n {
			return nil, lp.Malformedf("objective references undefined variable %s_%s", name, idx)
		}
		coeff := 1.0
		if num != "" {
			if coeff, err = strconv.ParseFloat(num, 64); err != nil {
				return nil, lp.Malformedf("error while parsing objective coefficient %q: %v", num, err)
			}
		}
		if sign == "-" {
			coeff = -coeff
		}
		if name == "y" {
			k += n
		}
		costs[k-1] += coeff
		rest = rest[len(m[0]):]
	}
	return costs, nil
}

func nonBlankLines(r io.Reader) ([]string, error) {
	lines := make([]string, 0, 3)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, lp.IOf(err, "error while reading input")
	}
	return lines, nil
}

// ReadInstance parses the three-line text format: the first permutation, the
// second permutation (both 1-based), and an optional objective expression.
func ReadInstance(r io.Reader) (*Instance, error) {
	lines, err := nonBlankLines(r)
	if err != nil {
		return nil, err
	}
	if len(lines) < 2 {
		return nil, lp.Malformedf("expected two permutation lines, got %d", len(lines))
	}
	if len(lines) > 3 {
		return nil, lp.Malformedf("unexpected line %d: %q", 4, lines[3])
	}

	inst := new(Instance)
	if inst.First, err = parsePermutationLine(lines[0], 1); err != nil {
		return nil, err
	}
	if inst.Second, err = parsePermutationLine(lines[1], 2); err != nil {
		return nil, err
	}
	if inst.First.Len() != inst.Second.Len() {
		return nil, lp.Malformedf("permutation lengths differ: %d and %d", inst.First.Len(), inst.Second.Len())
	}

	objective := ""
	if len(lines) == 3 {
		objective = lines[2]
	}
	if inst.Costs, err = ParseObjective(objective, inst.Len()); err != nil {
		return nil, err
	}
	return inst, nil
}

func ParseInstance(text string) (*Instance, error) {
	return ReadInstance(strings.NewReader(text))
}

// FormatObjective renders costs in the grammar accepted by ParseObjective.
func FormatObjective(costs []float64, n int) string {
	s := new(strings.Builder)
	for j, a := range costs {
		if a == 0 {
			continue
		}
		switch {
		case s.Len() == 0 && a < 0:
			s.WriteString("-")
		case s.Len() > 0 && a < 0:
			s.WriteString(" - ")
		case s.Len() > 0:
			s.WriteString(" + ")
		}
		if a < 0 {
			a = -a
		}
		if a != 1 {
			s.WriteString(strconv.FormatFloat(a, 'g', -1, 64))
			s.WriteString(" ")
		}
		if j < n {
			fmt.Fprintf(s, "x_%d", j+1)
		} else {
			fmt.Fprintf(s, "y_%d", j-n+1)
		}
	}
	return s.String()
}

func (inst *Instance) Format() string {
	return fmt.Sprintf("%v\n%v\n%s\n", inst.First, inst.Second, FormatObjective(inst.Costs, inst.Len()))
}
