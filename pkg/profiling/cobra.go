package profiling

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/spf13/cobra"
)

// CobraProfiler wires pprof output and span timing to command flags.
type CobraProfiler struct {
	cpuFile *os.File
	cpuPath string
	memPath string
	timing  bool
}

func NewCobraProfiler() *CobraProfiler {
	return &CobraProfiler{}
}

// Attach registers --cpu-profile, --mem-profile and --timing on cmd and
// installs the persistent hooks that act on them.
func (p *CobraProfiler) Attach(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&p.cpuPath, "cpu-profile", "", "Write a CPU profile to this file")
	flags.StringVar(&p.memPath, "mem-profile", "", "Write a heap profile to this file on exit")
	flags.BoolVar(&p.timing, "timing", false, "Print a timing summary to stderr on exit")
	cmd.PersistentPreRunE = p.PreRun
	cmd.PersistentPostRun = p.PostRun
}

func (p *CobraProfiler) PreRun(cmd *cobra.Command, args []string) error {
	if p.timing {
		Enable()
	}
	if p.cpuPath == "" {
		return nil
	}
	f, err := os.Create(p.cpuPath)
	if err != nil {
		return fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return fmt.Errorf("could not start CPU profile: %w", err)
	}
	p.cpuFile = f
	return nil
}

// PostRun stops profiling and reports to the command's stderr. It only runs
// after a successful command.
func (p *CobraProfiler) PostRun(cmd *cobra.Command, args []string) {
	errOut := cmd.ErrOrStderr()

	if p.cpuFile != nil {
		pprof.StopCPUProfile()
		p.cpuFile.Close()
		p.cpuFile = nil
		fmt.Fprintf(errOut, "CPU profile written to %s\n", p.cpuPath)
	}

	if p.memPath != "" {
		if err := writeHeapProfile(p.memPath); err != nil {
			fmt.Fprintf(errOut, "could not write memory profile: %v\n", err)
		} else {
			fmt.Fprintf(errOut, "Memory profile written to %s\n", p.memPath)
		}
	}

	if p.timing {
		Summarize(errOut)
	}
}

func writeHeapProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}
