package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/metaphox/kaleido/ast"
	"github.com/metaphox/kaleido/lexer"
	"github.com/metaphox/kaleido/parser"
)

func newParseCmd(opts *options) *cobra.Command {
	var (
		output   string
		maxDepth int
	)

	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Print the syntax tree of a source file",
		Long: `Parses the input and prints the indented syntax tree.

Examples:
  kaleido parse fib.k
  kaleido parse -o fib.ast fib.k
  kaleido parse --max-depth 64 deep.k`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.session(cmd)
			if err != nil {
				return err
			}
			if output == "" {
				output = s.cfg.Output
			}
			if maxDepth <= 0 {
				maxDepth = s.cfg.MaxDepth
			}

			name, src, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			toks, err := lexer.Tokenize(src)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			s.logger.Debug("tokenized", "source", name, "tokens", len(toks))

			unit, err := parser.Parse(parser.NewStream(toks), name,
				parser.WithLogger(s.logger),
				parser.WithMaxDepth(maxDepth),
			)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}

			if output == "" {
				return ast.Fprint(cmd.OutOrStdout(), unit)
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := ast.Fprint(f, unit); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			s.logger.Info("wrote syntax tree", "source", name, "output", output,
				"functions", len(unit.Functions), "externs", len(unit.Externs))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the tree to this file instead of stdout")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "maximum expression nesting (default from config)")
	return cmd
}
