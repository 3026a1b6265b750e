package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/metaphox/kaleido/internal/config"
	"github.com/metaphox/kaleido/internal/logging"
)

// stdinName is the source name reported for input read from stdin.
const stdinName = "<stdin>"

var errorStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#EF4444"))

// options holds the persistent flags shared by every subcommand.
type options struct {
	cfgFile  string
	verbose  bool
	logLevel string
}

// session is the per-invocation state built from flags and config.
type session struct {
	cfg    *config.Config
	logger *logging.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "kaleido",
		Short: "Kaleido language front end",
		Long: `kaleido tokenizes and parses Kaleido source files.

Commands:
  tokens  - print the token stream
  parse   - print the syntax tree

Examples:
  kaleido tokens fib.k
  kaleido parse -o fib.ast fib.k
  cat fib.k | kaleido parse -`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (.toml, .yaml or .yml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output (debug logging)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(newTokensCmd(opts))
	root.AddCommand(newParseCmd(opts))
	return root
}

// Execute runs the kaleido command line and reports a failure on stderr.
func Execute() error {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		printError(root.ErrOrStderr(), err)
		return err
	}
	return nil
}

// session loads the configuration and builds the invocation logger. Flags
// override the config file: --verbose wins over --log-level, which wins over
// log_level.
func (o *options) session(cmd *cobra.Command) (*session, error) {
	cfg := config.Default()
	if o.cfgFile != "" {
		loaded, err := config.Load(o.cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	level := cfg.Level()
	if o.logLevel != "" {
		l, ok := logging.ParseLevel(o.logLevel)
		if !ok {
			return nil, fmt.Errorf("invalid --log-level %q", o.logLevel)
		}
		level = l
	}
	if o.verbose {
		level = logging.LevelDebug
	}

	logger := logging.New("kaleido").
		WithOutput(cmd.ErrOrStderr()).
		WithLevel(level).
		WithField("compile_id", uuid.New().String())

	if o.cfgFile != "" {
		logger.Debug("loaded config", "path", o.cfgFile, "max_depth", cfg.MaxDepth)
	}
	return &session{cfg: cfg, logger: logger}, nil
}

// readSource returns the name and contents of the input. No argument or "-"
// reads stdin.
func readSource(cmd *cobra.Command, args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return stdinName, string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", err
	}
	return args[0], string(data), nil
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errorStyle.Render("error:"), err)
}
