// Package compilecheck verifies the CUDA toolchain end to end: it writes a
// minimal vector-add kernel, compiles it with nvcc, runs the binary, and
// looks for the success marker in its output.
package compilecheck

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/vertti/mlrig/pkg/check"
	"github.com/vertti/mlrig/pkg/cmdrunner"
)

// SuccessMarker is printed by the kernel binary when the device-computed
// result verifies. The check requires both a clean exit and this marker in
// stdout: a clean exit without the marker is still a failure.
const SuccessMarker = "Test PASSED"

const kernelSource = `#include <cstddef>
#include <stdio.h>

__global__ void vectorAdd(const float *A, const float *B, float *C, int numElements)
{
    int i = blockDim.x * blockIdx.x + threadIdx.x;
    if (i < numElements)
    {
        C[i] = A[i] + B[i];
    }
}

int main(void)
{
    int numElements = 50000;
    size_t size = numElements * sizeof(float);
    printf("[Vector addition of %d elements]\n", numElements);

    float *h_A = (float *)malloc(size);
    float *h_B = (float *)malloc(size);
    float *h_C = (float *)malloc(size);

    for (int i = 0; i < numElements; ++i)
    {
        h_A[i] = rand()/(float)RAND_MAX;
        h_B[i] = rand()/(float)RAND_MAX;
    }

    float *d_A = NULL;
    float *d_B = NULL;
    float *d_C = NULL;
    cudaMalloc((void **)&d_A, size);
    cudaMalloc((void **)&d_B, size);
    cudaMalloc((void **)&d_C, size);

    cudaMemcpy(d_A, h_A, size, cudaMemcpyHostToDevice);
    cudaMemcpy(d_B, h_B, size, cudaMemcpyHostToDevice);

    int threadsPerBlock = 256;
    int blocksPerGrid = (numElements + threadsPerBlock - 1) / threadsPerBlock;
    printf("CUDA kernel launch with %d blocks of %d threads\n", blocksPerGrid, threadsPerBlock);

    vectorAdd<<<blocksPerGrid, threadsPerBlock>>>(d_A, d_B, d_C, numElements);

    cudaError_t err = cudaGetLastError();
    if (err != cudaSuccess) {
        fprintf(stderr, "Failed to launch vectorAdd kernel (error code %s)!\n", cudaGetErrorString(err));
        exit(EXIT_FAILURE);
    }

    cudaMemcpy(h_C, d_C, size, cudaMemcpyDeviceToHost);

    for (int i = 0; i < numElements; ++i)
    {
        if (fabs(h_A[i] + h_B[i] - h_C[i]) > 1e-5)
        {
            fprintf(stderr, "Result verification failed at element %d!\n", i);
            exit(EXIT_FAILURE);
        }
    }

    printf("Test PASSED\n");

    cudaFree(d_A);
    cudaFree(d_B);
    cudaFree(d_C);

    free(h_A);
    free(h_B);
    free(h_C);

    printf("Done\n");
    return 0;
}
`

// Check compiles and runs the vector-add kernel.
type Check struct {
	Compiler string // CUDA compiler command (default: nvcc)
	WorkDir  string // where source and binary are written (default: os.TempDir)
	Runner   cmdrunner.Runner
}

// Run executes the compile check.
func (c *Check) Run() check.Result {
	result := check.Result{
		Name: "compile: vector_add",
	}

	runner := c.Runner
	if runner == nil {
		runner = &cmdrunner.RealRunner{}
	}
	compiler := c.Compiler
	if compiler == "" {
		compiler = "nvcc"
	}
	workDir := c.WorkDir
	if workDir == "" {
		workDir = filepath.Join(os.TempDir(), "mlrig_cuda")
	}

	if err := os.MkdirAll(workDir, 0o750); err != nil {
		return result.Failf("could not create work dir: %v", err)
	}

	sourcePath := filepath.Join(workDir, "vector_add.cu")
	if err := os.WriteFile(sourcePath, []byte(kernelSource), 0o600); err != nil {
		return result.Failf("could not write kernel source: %v", err)
	}
	result.AddDetailf("source: %s", sourcePath)

	binaryPath := filepath.Join(workDir, binaryName())
	_, stderr, err := runner.Run(compiler, sourcePath, "-o", binaryPath)
	if err != nil {
		result.AddDetailf("compilation failed: %v", err)
		if stderr != "" {
			result.AddDetailf("stderr: %s", strings.TrimSpace(stderr))
		}
		result.Status = check.StatusFail
		result.Err = err
		return result
	}
	result.AddDetailf("binary: %s", binaryPath)

	stdout, stderr, err := runner.Run(binaryPath)
	if err != nil {
		result.AddDetailf("execution failed: %v", err)
		if stderr != "" {
			result.AddDetailf("stderr: %s", strings.TrimSpace(stderr))
		}
		result.Status = check.StatusFail
		result.Err = err
		return result
	}
	if !strings.Contains(stdout, SuccessMarker) {
		if stderr != "" {
			result.AddDetailf("stderr: %s", strings.TrimSpace(stderr))
		}
		return result.Failf("success marker %q not found in output", SuccessMarker)
	}

	result.AddDetailf("output: %s", SuccessMarker)
	return result.Pass()
}

func binaryName() string {
	if runtime.GOOS == "windows" {
		return "vector_add.exe"
	}
	return "vector_add"
}
