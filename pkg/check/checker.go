package check

// Checker is implemented by all check types.
// Each check validates a specific aspect of the ML development environment
// and returns a Result indicating success or failure.
//
// Implementations:
//   - drivercheck.Check: queries the NVIDIA driver via nvidia-smi
//   - toolkitcheck.Check: verifies the CUDA toolkit installation
//   - pythoncheck.Check: verifies the Python runtime and pip
//   - vscheck.Check: verifies Visual Studio and its workloads
//   - torchcheck.Check: probes PyTorch CUDA support and performance
//   - compilecheck.Check: compiles and runs a minimal CUDA kernel
//   - libscheck.Check: imports the auxiliary ML libraries
//   - reqcheck.Check: probes disk and memory against system requirements
type Checker interface {
	Run() Result
}
