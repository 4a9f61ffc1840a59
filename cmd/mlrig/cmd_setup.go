package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vertti/mlrig/pkg/output"
	"github.com/vertti/mlrig/pkg/platform"
	"github.com/vertti/mlrig/pkg/reqcheck"
	"github.com/vertti/mlrig/pkg/setup"
)

var (
	setupClean        bool
	setupVerifyClean  bool
	setupInstall      bool
	setupCudnn        bool
	setupVerify       bool
	setupFull         bool
	setupRequirements bool
	setupScriptsDir   string
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Run the environment setup pipeline",
	Long: `Run the selected setup phases in order:

  --clean           remove existing Visual Studio, Python, and CUDA installs
  --verify-cleanup  verify the cleanup left no components behind
  --install         install the development environment
  --cudnn           configure cuDNN (requires a manual download)
  --verify          verify the finished environment
  --full            all of the above, halting on a failed mandatory phase

With no flags the command prints this help. Cleanup and installation require
Windows and an elevated shell.`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVar(&setupClean, "clean", false, "run the cleanup phase only")
	setupCmd.Flags().BoolVar(&setupVerifyClean, "verify-cleanup", false, "verify the cleanup only")
	setupCmd.Flags().BoolVar(&setupInstall, "install", false, "run the install phase only")
	setupCmd.Flags().BoolVar(&setupCudnn, "cudnn", false, "configure cuDNN only")
	setupCmd.Flags().BoolVar(&setupVerify, "verify", false, "verify the environment only")
	setupCmd.Flags().BoolVar(&setupFull, "full", false, "run the whole pipeline")
	setupCmd.Flags().BoolVar(&setupRequirements, "requirements", false, "show the system requirements and probe disk/memory")
	setupCmd.Flags().StringVar(&setupScriptsDir, "scripts", ".", "directory holding the installer scripts")
	rootCmd.AddCommand(setupCmd)
}

// setupSelection maps the phase flags onto the pipeline selection.
func setupSelection() setup.Selection {
	return setup.Selection{
		Clean:       setupClean,
		VerifyClean: setupVerifyClean,
		Install:     setupInstall,
		Cudnn:       setupCudnn,
		Verify:      setupVerify,
		Full:        setupFull,
	}
}

func runSetup(cmd *cobra.Command, _ []string) error {
	sel := setupSelection()

	if !sel.Any() && !setupRequirements {
		return cmd.Help()
	}

	// Informational: prints the requirements and exits, ignoring phase flags.
	if setupRequirements {
		printRequirements()
		return nil
	}

	if !platform.IsWindows() {
		output.PrintError("this setup pipeline targets Windows only")
		return ErrPrereqFailed
	}
	if !platform.IsElevated() {
		output.PrintError("setup requires an elevated shell, run it as Administrator")
		return ErrPrereqFailed
	}

	output.PrintBanner("ML development environment setup")

	pipeline := &setup.Pipeline{
		ScriptsDir: setupScriptsDir,
		Scripts:    &setup.PowerShellRunner{},
		Prompt:     &setup.StdinPrompter{},
		Reboot:     &setup.SystemRebooter{},
		Verifier:   runVerifySuite,
	}

	ok, err := pipeline.Run(sel)
	if errors.Is(err, setup.ErrRebootScheduled) {
		return nil
	}
	if err != nil {
		return err
	}

	if !ok {
		output.PrintBanner("Setup finished with errors")
		return ErrCheckFailed
	}
	output.PrintBanner("Setup finished successfully")
	return nil
}

// printRequirements mirrors the documentation shipped with the installer
// scripts, then probes disk and memory against it.
func printRequirements() {
	output.PrintBanner("System requirements")
	fmt.Println(`For a successful installation the machine needs:
 1. Windows 11 (64-bit)
 2. At least 50 GB of free disk space
 3. At least 8 GB of RAM (16 GB recommended)
 4. An Internet connection
 5. A CUDA-capable NVIDIA graphics card
 6. An elevated shell (Administrator)

Installing cuDNN additionally needs:
 1. A free NVIDIA Developer account
 2. A manually downloaded cuDNN package matching CUDA 12.4

The cleanup phase removes existing installations of Visual Studio, Python,
and CUDA. Back up anything important before running it.`)

	result := (&reqcheck.Check{}).Run()
	output.PrintResult(result)
}
