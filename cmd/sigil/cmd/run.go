package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/sigil/internal/cerrors"
	"github.com/cwbudde/sigil/internal/diagnostics"
	"github.com/cwbudde/sigil/pkg/sigil"
	"github.com/spf13/cobra"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a sigil file or expression",
	Long: `Execute a sigil program from a file or inline expression.

Examples:
  # Run a script file
  sigil run script.sigil

  # Evaluate an inline expression
  sigil run -e "print((1 + 2))"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "run inline code instead of reading from file")
}

// cliHost is the Host a CLI invocation builds: source read from a file
// or -e literal, the default embedded prelude, stdout, and a fresh
// diagnostics sink for the single run.
type cliHost struct {
	src   string
	diags diagnostics.Diagnostics
}

func (h *cliHost) Source() string                        { return h.src }
func (h *cliHost) Prelude() map[string]string            { return nil }
func (h *cliHost) Stdout() io.Writer                     { return os.Stdout }
func (h *cliHost) Diagnostics() *diagnostics.Diagnostics { return &h.diags }

func runScript(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	h := &cliHost{src: input}
	if runErr := sigil.Run(h); runErr != nil {
		ce := cerrors.FromError(runErr, input, filename)
		fmt.Fprintln(os.Stderr, ce.Format(true))
		return fmt.Errorf("run failed")
	}

	for _, item := range h.diags.Items() {
		fmt.Fprintf(os.Stderr, "%s: %s: %s at %s\n", item.Level, item.Code, item.Message, item.Pos)
	}

	return nil
}

// readSource resolves the CLI's input precedence: -e literal, else the
// single file argument, else an error (no stdin fallback; unlike
// parse, run and lex always need a named source).
func readSource(eval string, args []string) (input, filename string, err error) {
	if eval != "" {
		return eval, "<eval>", nil
	}
	if len(args) == 1 {
		content, readErr := os.ReadFile(args[0])
		if readErr != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], readErr)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e flag for inline code")
}
