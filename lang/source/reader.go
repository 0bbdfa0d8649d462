// Package source implements the Source Reader: loading a file into an
// ordered sequence of lines, and the recursive splicing performed by the
// include closure before scope tables are built (spec section 4.3.1).
package source

import (
	"bufio"
	"os"
	"strings"

	"github.com/stillwwater/superini/lang/token"
)

// ReadFile loads path into an ordered slice of token.Lines, registering
// each line with fset under a new token.File named path. Both LF and CRLF
// line endings are accepted (spec section 6); maximum line length is
// unbounded, so the scanner's buffer is allowed to grow accordingly.
func ReadFile(fset *token.FileSet, path string) ([]token.Line, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return readBytes(fset, path, b), nil
}

func readBytes(fset *token.FileSet, name string, b []byte) []token.Line {
	f := fset.AddFile(name)

	var lines []token.Line
	sc := bufio.NewScanner(strings.NewReader(string(b)))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<30)
	for sc.Scan() {
		text := strings.TrimSuffix(sc.Text(), "\r")
		pos := f.AddLine()
		lines = append(lines, token.Line{Text: text, Num: f.LineCount(), Pos: pos})
	}
	return lines
}
