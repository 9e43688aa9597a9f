package main

import (
	"fmt"

	aegis "github.com/DavidOsipov/Aegis-Animator"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of aegis",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("aegis version %s\n", aegis.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
