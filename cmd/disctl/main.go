package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "disctl: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "disctl",
		Short: "Encode, decode and capture DIS protocol data units",
		Long: `disctl works with IEEE 1278.1 (DIS version 6) PDUs.

It decodes captured or hand-written datagrams, produces sample PDUs,
listens for live exercise traffic over UDP and replays captures.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		typesCmd(),
		decodeCmd(),
		sampleCmd(),
		sendCmd(),
		listenCmd(),
		replayCmd(),
		configCmd(),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "disctl %s (%s)\n", version, commit)
		},
	}
}
