package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/DavidOsipov/Aegis-Animator/internal/cli"
	"github.com/DavidOsipov/Aegis-Animator/internal/logging"
)

// runCmd replays a scenario file and prints the transition log.
var runCmd = &cobra.Command{
	Use:   "run <scenario.yaml>",
	Short: "Replay an animation scenario against the in-memory host",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger := logging.New(logLevel(cmd))

		sc, err := cli.LoadScenario(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		printer := cli.NewPrinter(os.Stdout)
		session, err := cli.NewSession(sc, logger, printer)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		defer session.Close()

		if err := session.Run(); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Println()
		session.PrintSummary(os.Stdout)
	},
}

func logLevel(cmd *cobra.Command) slog.Level {
	raw, _ := cmd.Flags().GetString("log-level")
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelWarn
	}
	return level
}

func init() {
	rootCmd.AddCommand(runCmd)
}
