// Package cerrors formats fatal pipeline errors with source context
// for the CLI: a file:line:col header, the offending source line, and
// a caret pointing at the column.
package cerrors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/sigil/internal/lexer"
)

// CompilerError is a single fatal error with enough context to print a
// caret diagnostic: its message, the full source it came from, the
// file name to show (the CLI passes "<eval>" for a `-e` literal; empty
// omits it from the header), and its position.
type CompilerError struct {
	Message string
	Source  string
	File    string
	Pos     lexer.Position
}

// New wraps message at pos with the source/file needed to render it.
func New(pos lexer.Position, message, source, file string) *CompilerError {
	return &CompilerError{Message: message, Source: source, File: file, Pos: pos}
}

func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format renders a "file:line:col" header (or "line:col" with no
// file), the source line, and a caret under the offending column. If
// color is true, the caret is wrapped in ANSI codes.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "%s:%d:%d: error: ", e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "%d:%d: error: ", e.Pos.Line, e.Pos.Column)
	}
	sb.WriteString(e.Message)
	sb.WriteString("\n")

	if line := e.sourceLine(e.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

func (e *CompilerError) sourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FromError wraps any error whose message ends in " at LINE:COLUMN"
// (sigil's own XError convention, e.g. *parser.ParseError,
// *checker.TypecheckError) into a CompilerError carrying source/file
// context for display. Errors with no recognizable position are
// reported at 1:1.
func FromError(err error, source, file string) *CompilerError {
	pos, message := parsePosition(err.Error())
	return New(pos, message, source, file)
}

func parsePosition(errStr string) (lexer.Position, string) {
	atIndex := strings.LastIndex(errStr, " at ")
	if atIndex == -1 {
		return lexer.Position{Line: 1, Column: 1}, errStr
	}

	message := strings.TrimSpace(errStr[:atIndex])
	posStr := errStr[atIndex+len(" at "):]

	var line, column int
	if _, err := fmt.Sscanf(posStr, "%d:%d", &line, &column); err != nil {
		return lexer.Position{Line: 1, Column: 1}, errStr
	}
	return lexer.Position{Line: line, Column: column}, message
}
