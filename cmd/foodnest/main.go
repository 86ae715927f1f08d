package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "foodnest",
	Short: "Foodnest — marketplace backend CLI",
	Long:  "Foodnest is a wholesale/retail marketplace backend. Use this CLI to run the server and manage the database.",
}

func init() {
	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(dbIndexCmd)
	rootCmd.AddCommand(dbSeedCmd)
}
