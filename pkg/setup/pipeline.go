// Package setup sequences the environment setup pipeline: cleanup, cleanup
// verification, installation, cuDNN configuration, and final verification.
// Each script phase delegates to a vendor-provided PowerShell script; the
// pipeline only maps exit codes to phase outcomes and gates the flow on
// operator decisions.
package setup

import (
	"errors"
	"path/filepath"

	"github.com/vertti/mlrig/pkg/output"
)

// Script names invoked by the pipeline, resolved against ScriptsDir.
const (
	CleanScript       = "cleanup.ps1"
	VerifyCleanScript = "verify_cleanup.ps1"
	InstallScript     = "install.ps1"
	CudnnScript       = "setup_cudnn.ps1"
)

// ErrRebootScheduled is returned when the operator chose to reboot; the
// remaining phases must not run and the process exits cleanly.
var ErrRebootScheduled = errors.New("reboot scheduled")

// Selection holds the phase flags from the command line.
type Selection struct {
	Clean       bool
	VerifyClean bool
	Install     bool
	Cudnn       bool
	Verify      bool
	Full        bool
}

// Any reports whether at least one phase was selected.
func (s Selection) Any() bool {
	return s.Clean || s.VerifyClean || s.Install || s.Cudnn || s.Verify || s.Full
}

// Pipeline runs the selected setup phases in order.
type Pipeline struct {
	ScriptsDir string       // directory holding the PowerShell scripts
	Scripts    ScriptRunner // injected for testing
	Prompt     Prompter     // injected for testing
	Reboot     Rebooter     // injected for testing
	Verifier   func() bool  // runs the installation verification checks
}

// Run executes the selected phases. It returns true when every executed phase
// succeeded. ErrRebootScheduled is returned when the pipeline stopped early
// for a reboot.
func (p *Pipeline) Run(sel Selection) (bool, error) {
	if sel.Full {
		sel.Clean = true
		sel.VerifyClean = true
		sel.Install = true
		sel.Cudnn = true
		sel.Verify = true
	}

	success := true

	if sel.Clean {
		ok, err := p.runClean()
		if err != nil {
			return false, err
		}
		success = success && ok
		if sel.Full && !ok {
			output.PrintError("cleanup failed, not continuing with installation")
			return false, nil
		}
	}

	if sel.VerifyClean {
		ok := p.runVerifyClean()
		success = success && ok
		if sel.Full && !ok {
			if !p.Prompt.Confirm("Cleanup verification failed. Continue anyway?") {
				output.PrintInfo("installation cancelled by operator")
				return false, nil
			}
			// The override continues the pipeline; the failed verification
			// still counts against the aggregate outcome.
		}
	}

	if sel.Install {
		success = p.runInstall() && success
	}

	if sel.Cudnn {
		success = p.runCudnn() && success
	}

	if sel.Verify {
		output.PrintBanner("Verifying environment")
		success = p.Verifier() && success
	}

	return success, nil
}

// runClean executes the cleanup script, verifies the result, and offers the
// operator a retry loop, an override, and a reboot.
func (p *Pipeline) runClean() (bool, error) {
	output.PrintBanner("Cleaning existing installations")

	for {
		if err := p.runScript(CleanScript); err != nil {
			output.PrintError("cleanup script failed: %v", err)
			return false, nil
		}

		if p.runVerifyClean() {
			break
		}

		output.PrintWarning("cleanup verification found components still present")
		if p.Prompt.Confirm("Run the cleanup script again?") {
			continue
		}
		output.PrintWarning("remove the remaining components manually before installing")
		if !p.Prompt.Confirm("Continue anyway?") {
			output.PrintInfo("installation cancelled by operator")
			return false, nil
		}
		break
	}

	output.PrintWarning("a reboot is recommended before installing")
	if p.Prompt.Confirm("Reboot now?") {
		if err := p.Reboot.Reboot(); err != nil {
			output.PrintError("reboot failed: %v", err)
			return false, nil
		}
		output.PrintInfo("the system will reboot shortly, run setup again afterwards")
		return false, ErrRebootScheduled
	}

	return true, nil
}

func (p *Pipeline) runVerifyClean() bool {
	output.PrintBanner("Verifying system cleanup")

	if err := p.runScript(VerifyCleanScript); err != nil {
		output.PrintWarning("cleanup verification reported components still present: %v", err)
		return false
	}
	output.PrintInfo("system is clean")
	return true
}

func (p *Pipeline) runInstall() bool {
	output.PrintBanner("Installing the development environment")

	if err := p.runScript(InstallScript); err != nil {
		output.PrintError("install script failed: %v", err)
		return false
	}
	output.PrintInfo("installation completed, cuDNN still requires manual download")
	return true
}

// runCudnn guides the operator through the manual cuDNN step. Declining is
// not a failure: the download is manual and can happen later.
func (p *Pipeline) runCudnn() bool {
	output.PrintBanner("Configuring cuDNN")
	output.PrintInfo("cuDNN requires a manual download from https://developer.nvidia.com/cudnn")
	output.PrintInfo("sign in with a free NVIDIA Developer account and fetch the build matching CUDA 12.4")

	if !p.Prompt.Confirm("Have you downloaded cuDNN and want to install it now?") {
		output.PrintInfo("run setup --cudnn again once the package is downloaded")
		return true
	}

	if err := p.runScript(CudnnScript); err != nil {
		output.PrintError("cuDNN setup script failed: %v", err)
		return false
	}
	output.PrintInfo("cuDNN configured")
	return true
}

func (p *Pipeline) runScript(name string) error {
	path := filepath.Join(p.ScriptsDir, name)
	output.PrintInfo("running: %s", name)
	return p.Scripts.RunScript(path)
}
