package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:     "mlrig",
	Short:   "Set up and verify a CUDA machine-learning development environment",
	Long:    "mlrig orchestrates the cleanup, installation, and verification of a Python + CUDA + PyTorch development environment on Windows 11.",
	Version: Version,

	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
