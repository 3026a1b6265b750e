package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metaphox/kaleido/lexer"
)

func newTokensCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file|-]",
		Short: "Print the token stream of a source file",
		Long: `Tokenizes the input and prints one token per line.

Examples:
  kaleido tokens fib.k
  echo "def f(x) x + 1" | kaleido tokens`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.session(cmd)
			if err != nil {
				return err
			}

			name, src, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			s.logger.Debug("read source", "source", name, "bytes", len(src))

			toks, err := lexer.Tokenize(src)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			s.logger.Debug("tokenized", "source", name, "tokens", len(toks))

			w := cmd.OutOrStdout()
			for _, tok := range toks {
				fmt.Fprintln(w, tok)
			}
			return nil
		},
	}
}
