package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"athena/pkg/config"
)

const banner = `
 █████╗ ████████╗██╗  ██╗███████╗███╗   ██╗ █████╗
██╔══██╗╚══██╔══╝██║  ██║██╔════╝████╗  ██║██╔══██╗
███████║   ██║   ███████║█████╗  ██╔██╗ ██║███████║
██╔══██║   ██║   ██╔══██║██╔══╝  ██║╚██╗██║██╔══██║
██║  ██║   ██║   ██║  ██║███████╗██║ ╚████║██║  ██║
╚═╝  ╚═╝   ╚═╝   ╚═╝  ╚═╝╚══════╝╚═╝  ╚═══╝╚═╝  ╚═╝

Declarative infrastructure DSL compiler
`

// Exit codes per the external-interfaces contract: 0 success, 1 compile
// error, 2 I/O error, 64 usage error.
const (
	exitOK          = 0
	exitCompileErr  = 1
	exitIOErr       = 2
	exitUsageErr    = 64
)

var (
	cfg        *config.Config
	logger     = logrus.New()
	outputFlag string
	verbose    bool
	quiet      bool

	// commandRan flips true once a subcommand clears flag/arg validation and
	// reaches PersistentPreRunE. Cobra's own flag-parsing and Args failures
	// never get this far, so exitFromError can tell a bad invocation (exit
	// 64) apart from a failure inside the command itself.
	commandRan bool

	rootCmd = &cobra.Command{
		Use:   "athena",
		Short: "Athena compiles .ath deployment DSL files into Docker Compose manifests",
		Long: banner + `
Usage examples:
  athena build app.ath                # compile app.ath -> app.yml
  athena build a.ath b.ath -o out/     # compile several files
  athena validate app.ath              # check without emitting output
  athena info                          # list supported directives`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			commandRan = true
			loaded, err := config.Load("")
			if err != nil {
				return err
			}
			cfg = loaded
			level := logrus.InfoLevel
			if verbose {
				level = logrus.DebugLevel
			}
			if quiet {
				level = logrus.ErrorLevel
			}
			logger.SetLevel(level)
			logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: !verbose})
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(infoCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitFromError(err))
	}
}

// exitFromError maps a returned command error to one of the four contract
// exit codes. *usageError and *ioError carry their own code; an error that
// never made it past flag/arg parsing (commandRan still false) is also a
// usage error; anything else that ran and failed is a compile error.
func exitFromError(err error) int {
	switch err.(type) {
	case *usageError:
		return exitUsageErr
	case *ioError:
		return exitIOErr
	default:
		if !commandRan {
			return exitUsageErr
		}
		return exitCompileErr
	}
}

type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

type ioError struct{ msg string }

func (e *ioError) Error() string { return e.msg }
