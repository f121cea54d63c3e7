package main

import (
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/grovetools/tend/pkg/harness"
)

// findPromptsBinary finds the prompts binary under test. The PATH must
// include the directory the binary was built into.
func findPromptsBinary() (string, error) {
	path, err := exec.LookPath("prompts")
	if err != nil {
		return "", fmt.Errorf("could not find 'prompts' binary in PATH; build it with 'go build -o bin/prompts ./cmd/prompts' and add bin to PATH")
	}
	return path, nil
}

// storePath is the snapshot file shared by the steps of one scenario.
func storePath(ctx *harness.Context) string {
	return filepath.Join(ctx.RootDir, "store.json")
}

// runOutput is what one prompts invocation produced.
type runOutput struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// runPrompts runs the binary against the scenario's snapshot and echoes its
// output into the scenario log.
func runPrompts(ctx *harness.Context, args ...string) (runOutput, error) {
	bin, err := findPromptsBinary()
	if err != nil {
		return runOutput{}, err
	}
	cmd := ctx.Command(bin, append([]string{"--store", storePath(ctx)}, args...)...).Dir(ctx.RootDir)
	result := cmd.Run()
	ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)
	return runOutput{Stdout: result.Stdout, Stderr: result.Stderr, ExitCode: result.ExitCode}, nil
}

// mustSucceed runs prompts and fails unless it exits cleanly.
func mustSucceed(ctx *harness.Context, args ...string) (string, error) {
	out, err := runPrompts(ctx, args...)
	if err != nil {
		return "", err
	}
	if out.ExitCode != 0 {
		return "", fmt.Errorf("prompts %v failed (exit %d): %s", args, out.ExitCode, out.Stderr)
	}
	return out.Stdout, nil
}
