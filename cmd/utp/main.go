package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"utp/internal/cli"
	"utp/internal/cli/commands"
	"utp/internal/config"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "utp",
		Short:   "Parallel unit test processor",
		Long:    `A parallel processor for native unit test binaries. Discovers CppUnit and GoogleTest style executables, runs them across a worker pool, and collects their XML reports into a single set of results.`,
		Version: version,
	}

	config.LoadEnv()
	cfg := config.New()

	var flags cli.Flags

	rootCmd.PersistentFlags().BoolVar(&flags.Verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if flags.Verbose {
			log.SetLevel(log.DebugLevel)
		}
	}

	cmds := commands.NewCommands(cfg)
	cmds.Register(rootCmd, &flags, cfg)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
