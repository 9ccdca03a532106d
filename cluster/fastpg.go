package cluster

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/grailbio/base/log"
)

// DefaultProgram is the interpreter used to launch the clustering script.
const DefaultProgram = "Rscript"

// Runner starts an external program with the given argument vector, waits
// for it, and returns the captured stdout and stderr. Tests substitute a
// fake so invocation can be exercised without R installed.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)
}

// ExecRunner is the Runner used outside of tests. It runs the program as a
// child process and blocks until it exits or ctx is cancelled.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// Invocation carries everything needed to launch one FastPG run.
type Invocation struct {
	// Program is the interpreter to launch. Empty means DefaultProgram.
	Program string
	// Script is the path to the runFastPG.r script.
	Script string
	// CleanPath is the cleaned expression table to cluster.
	CleanPath string
	// OutputDir is where the script writes the cells and clusters files.
	OutputDir string
	// Cells and Clusters are the output file names, without directory.
	Cells    string
	Clusters string
	// Transform states whether the script log-transforms the data first.
	Transform TransformMode
	Opts      Opts
}

// Args returns the script's positional arguments in the order it expects:
// cleaned table, neighbors, threads, output dir, cells file, clusters file,
// method flag, transform mode.
func (inv Invocation) Args() []string {
	return []string{
		inv.CleanPath,
		strconv.Itoa(inv.Opts.Neighbors),
		strconv.Itoa(inv.Opts.Threads),
		inv.OutputDir,
		inv.Cells,
		inv.Clusters,
		strconv.FormatBool(inv.Opts.Method),
		string(inv.Transform),
	}
}

// RunFastPG launches the clustering script and returns the modularity score
// it prints on stdout. The call blocks until the script exits; Opts.Timeout,
// when set, bounds the wait. Files the script has already written are left
// in place on failure, since the script owns them once launched.
func RunFastPG(ctx context.Context, r Runner, inv Invocation) (float64, error) {
	prog := inv.Program
	if prog == "" {
		prog = DefaultProgram
	}
	if inv.Opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, inv.Opts.Timeout)
		defer cancel()
	}
	args := append([]string{inv.Script}, inv.Args()...)
	log.Debug.Printf("running %s %s", prog, strings.Join(args, " "))
	stdout, stderr, err := r.Run(ctx, prog, args...)
	if err != nil {
		code := -1
		if ee, ok := err.(*exec.ExitError); ok {
			code = ee.ExitCode()
		}
		return 0, &ExternalProcessError{
			Prog:     prog,
			ExitCode: code,
			Stderr:   strings.TrimSpace(stderr),
			Reason:   err.Error(),
			Err:      err,
		}
	}
	modularity, err := strconv.ParseFloat(strings.TrimSpace(stdout), 64)
	if err != nil {
		return 0, &ExternalProcessError{
			Prog:   prog,
			Stderr: strings.TrimSpace(stderr),
			Reason: fmt.Sprintf("modularity not numeric: %q", strings.TrimSpace(stdout)),
			Err:    err,
		}
	}
	log.Debug.Printf("modularity: %v", modularity)
	return modularity, nil
}
