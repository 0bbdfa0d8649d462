// Package maincmd implements the Super INI CLI contract (spec section 6):
// `program input_file [output_file]` with `--help|-h` and `--dump`.
//
// Follows the same Cmd struct shape used by github.com/mna/nenuphar's
// internal/maincmd package (flag-tagged fields, SetArgs/SetFlags/Validate/
// Main), and the same github.com/mna/mainer.Parser/Stdio/ExitCode
// plumbing. nenuphar dispatches to one of several subcommands (parse,
// resolve, tokenize) via reflection because it exposes several compiler
// phases as CLI verbs; Super INI has exactly one verb (compile), so the
// reflection dispatch table is dropped in favor of a single code path.
package maincmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/stillwwater/superini/lang/compiler"
	"github.com/stillwwater/superini/lang/diag"
	"github.com/stillwwater/superini/lang/emit"
)

const binName = "superini"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <input_file> [<output_file>]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <input_file> [<output_file>]
       %[1]s -h|--help

Compiles a Super INI source file into plain INI.

If output_file is omitted, the destination is taken from the source's
environment.output key (set via the setenv closure); if neither is
present, output is written next to input_file with a .ini extension.

Valid flag options are:
       -h --help                 Show this help and exit.
       --dump                    Write the compiled output to standard
                                 output instead of a file.
       --sorted                  Force alphabetical scope ordering in the
                                 output, overriding setenv(sorted=False).

Flags can also be set from the environment, prefixed SUPERINI_, e.g.
SUPERINI_SORTED=true.
`, binName)
)

type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help   bool `flag:"h,help"`
	Dump   bool `flag:"dump"`
	Sorted bool `flag:"sorted"`

	args []string
}

func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

func (c *Cmd) SetFlags(map[string]bool) {}

func (c *Cmd) Validate() error {
	if c.Help {
		return nil
	}
	if len(c.args) == 0 {
		return errors.New("no input file specified")
	}
	if len(c.args) > 2 {
		return fmt.Errorf("too many arguments: %v", c.args[2:])
	}
	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   true,
		EnvPrefix: "SUPERINI_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	if c.Help {
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	}

	_ = mainer.CancelOnSignal(context.Background(), os.Interrupt)

	return c.run(stdio)
}

func (c *Cmd) run(stdio mainer.Stdio) mainer.ExitCode {
	input := c.args[0]

	result, diags, err := compiler.Compile(input)
	printDiags(stdio, diags)
	if err != nil {
		return mainer.Failure
	}

	if c.Sorted && !result.Env.Sorted {
		result.Env.Sorted = true
		var buf bytes.Buffer
		if werr := emit.Write(&buf, result.GLUT, result.Env); werr != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", binName, werr)
			return mainer.Failure
		}
		result.Output = buf.String()
	}

	if c.Dump {
		fmt.Fprint(stdio.Stdout, result.Output)
		return mainer.Success
	}

	out := outputPath(c.args, input, result)
	if werr := os.WriteFile(out, []byte(result.Output), 0o644); werr != nil {
		fmt.Fprintf(stdio.Stderr, "%s: %s\n", binName, werr)
		return mainer.Failure
	}
	return mainer.Success
}

// outputPath resolves the destination file: the CLI argument wins over
// environment.output (spec section 6); failing both, input_file with its
// extension replaced by .ini.
func outputPath(args []string, input string, result *compiler.Result) string {
	if len(args) > 1 {
		return args[1]
	}
	if result.Env.Output != "" {
		return result.Env.Output
	}
	return replaceExt(input, ".ini")
}

func replaceExt(path, ext string) string {
	for i := len(path) - 1; i >= 0 && path[i] != '/'; i-- {
		if path[i] == '.' {
			return path[:i] + ext
		}
	}
	return path + ext
}

func printDiags(stdio mainer.Stdio, diags *diag.List) {
	if diags == nil {
		return
	}
	for _, d := range diags.All() {
		fmt.Fprintln(stdio.Stderr, d.Error())
	}
}
