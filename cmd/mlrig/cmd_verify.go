package main

import (
	"github.com/spf13/cobra"

	"github.com/vertti/mlrig/pkg/check"
	"github.com/vertti/mlrig/pkg/libscheck"
	"github.com/vertti/mlrig/pkg/output"
	"github.com/vertti/mlrig/pkg/platform"
	"github.com/vertti/mlrig/pkg/pythoncheck"
	"github.com/vertti/mlrig/pkg/sysinfo"
	"github.com/vertti/mlrig/pkg/toolkitcheck"
	"github.com/vertti/mlrig/pkg/torchcheck"
	"github.com/vertti/mlrig/pkg/vscheck"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the installed development environment",
	Long: `Verify every component of the environment: the Python runtime and pip,
Visual Studio 2022 and its workloads, the CUDA toolkit and cuDNN, PyTorch
CUDA support, and the auxiliary ML libraries. A system information summary
is printed first for diagnostic context.`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(_ *cobra.Command, _ []string) error {
	if !platform.IsWindows() {
		output.PrintError("this verifier targets Windows only")
		return ErrPrereqFailed
	}
	if !platform.IsElevated() {
		output.PrintWarning("running without elevation, some checks may report less than they could")
	}

	if !runVerifySuite() {
		return ErrCheckFailed
	}
	return nil
}

// runVerifySuite prints the system summary and runs the five verification
// checks. The setup pipeline's verify phase uses the same suite.
func runVerifySuite() bool {
	output.PrintBanner("System information")
	sysinfo.Print(sysinfo.Collect(nil))

	output.PrintBanner("Environment verification")
	return runCheckers(verifyCheckers())
}

func verifyCheckers() []check.Checker {
	return []check.Checker{
		&pythoncheck.Check{},
		&vscheck.Check{},
		&toolkitcheck.Check{},
		&torchcheck.Check{},
		&libscheck.Check{},
	}
}
