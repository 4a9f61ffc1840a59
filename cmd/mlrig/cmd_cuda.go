package main

import (
	"github.com/spf13/cobra"

	"github.com/vertti/mlrig/pkg/check"
	"github.com/vertti/mlrig/pkg/compilecheck"
	"github.com/vertti/mlrig/pkg/drivercheck"
	"github.com/vertti/mlrig/pkg/output"
	"github.com/vertti/mlrig/pkg/platform"
	"github.com/vertti/mlrig/pkg/toolkitcheck"
	"github.com/vertti/mlrig/pkg/torchcheck"
)

var (
	cudaDriver  bool
	cudaNvcc    bool
	cudaTorch   bool
	cudaCompile bool
)

var cudaCmd = &cobra.Command{
	Use:   "cuda",
	Short: "Probe CUDA capability: driver, compiler, PyTorch, and a compiled kernel",
	Long: `Run the CUDA capability probes. With no flags all four probes run:

  --driver   query nvidia-smi for driver, CUDA version, and GPU model
  --nvcc     query the CUDA compiler version
  --torch    probe PyTorch CUDA support and time a GPU-vs-CPU matmul
  --compile  compile and run a minimal CUDA kernel

Each probe is independent; a failure does not stop the others.`,
	RunE: runCudaProbes,
}

func init() {
	cudaCmd.Flags().BoolVar(&cudaDriver, "driver", false, "probe the NVIDIA driver only")
	cudaCmd.Flags().BoolVar(&cudaNvcc, "nvcc", false, "probe the CUDA compiler only")
	cudaCmd.Flags().BoolVar(&cudaTorch, "torch", false, "probe PyTorch CUDA support only")
	cudaCmd.Flags().BoolVar(&cudaCompile, "compile", false, "compile and run the test kernel only")
	rootCmd.AddCommand(cudaCmd)
}

func runCudaProbes(_ *cobra.Command, _ []string) error {
	if !platform.IsWindows() {
		output.PrintWarning("these probes target Windows, results elsewhere are advisory")
	}
	if !platform.IsElevated() {
		output.PrintWarning("running without elevation, some probes may report less than they could")
	}

	output.PrintBanner("CUDA capability probes")
	if !runCheckers(cudaProbes(cudaDriver, cudaNvcc, cudaTorch, cudaCompile)) {
		return ErrCheckFailed
	}
	return nil
}

// cudaProbes builds the probe list for the given flag selection. No flags
// selects the whole battery.
func cudaProbes(driver, nvcc, torch, compile bool) []check.Checker {
	all := !driver && !nvcc && !torch && !compile

	var checkers []check.Checker
	if driver || all {
		checkers = append(checkers, &drivercheck.Check{})
	}
	if nvcc || all {
		checkers = append(checkers, &toolkitcheck.Check{})
	}
	if torch || all {
		checkers = append(checkers, &torchcheck.Check{Benchmark: true})
	}
	if compile || all {
		checkers = append(checkers, &compilecheck.Check{})
	}
	return checkers
}
