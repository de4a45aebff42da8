package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "caseroom",
		Short: "MedFlow AI case room demo server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(replayCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the landing page, workspace API and alert feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func replayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Play the scripted alert feed and print the resulting workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			speed, _ := cmd.Flags().GetFloat64("speed")
			return runReplay(cmd.Context(), cmd.OutOrStdout(), speed)
		},
	}
	cmd.Flags().Float64("speed", 1.0, "Divide every scripted delay by this factor")
	return cmd
}
