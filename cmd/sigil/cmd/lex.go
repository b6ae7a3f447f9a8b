package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/sigil/internal/cerrors"
	"github.com/cwbudde/sigil/internal/lexer"
	"github.com/spf13/cobra"
)

var (
	lexEval  string
	showPos  bool
	showKind bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a sigil file or expression",
	Long: `Tokenize (lex) a sigil program and print the resulting tokens.

This command is useful for debugging the lexer and understanding how
sigil source code is tokenized.

Examples:
  # Tokenize a script file
  sigil lex script.sigil

  # Tokenize an inline expression
  sigil lex -e "let x: Int = 1"

  # Show token kinds and positions
  sigil lex --show-kind --show-pos script.sigil`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showKind, "show-kind", false, "show token kind names")
}

func lexScript(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(lexEval, args)
	if err != nil {
		return err
	}

	toks, err := lexer.Tokenize(input)
	if err != nil {
		ce := cerrors.FromError(err, input, filename)
		fmt.Fprintln(os.Stderr, ce.Format(true))
		return fmt.Errorf("lexing failed")
	}

	for _, tok := range toks {
		printToken(tok)
	}

	return nil
}

func printToken(tok lexer.Token) {
	var output string

	if showKind {
		output = fmt.Sprintf("[%-7s]", tok.Kind)
	}

	if tok.Kind == lexer.EOF {
		output += " EOF"
	} else {
		output += fmt.Sprintf(" %q", tok.Text)
	}

	if showPos {
		output += fmt.Sprintf(" @%s", tok.Pos)
	}

	fmt.Println(output)
}
