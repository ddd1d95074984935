package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	benchResultsDir  = "benchmarks/results"
	benchProfilesDir = "benchmarks/profiles"
	benchTime        = "-benchtime=2s"

	// benchstat is pinned in tools.go
	benchstatPkg = "golang.org/x/perf/cmd/benchstat"
)

// hotPaths are the benchmarks guarding box opening and the token ledger
var hotPaths = []struct{ dir, pattern string }{
	{"./internal/lootbox", "BenchmarkSelectTier"},
	{"./internal/lootbox", "BenchmarkOpenBox"},
	{"./internal/token", "BenchmarkTransfer"},
}

type BenchCommand struct{}

func (c *BenchCommand) Name() string {
	return "bench"
}

func (c *BenchCommand) Description() string {
	return "Run and compare benchmarks (run, hot, save, baseline, compare, profile)"
}

func (c *BenchCommand) Run(args []string) error {
	if len(args) == 0 {
		return c.runAll()
	}

	switch args[0] {
	case "run":
		return c.runAll()
	case "hot":
		return c.runHot()
	case "save":
		return c.runAndSave(time.Now().Format("20060102-150405") + ".txt")
	case "baseline":
		return c.runAndSave("baseline.txt")
	case "compare":
		return c.compare()
	case "profile":
		return c.profile()
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}
}

func (c *BenchCommand) runAll() error {
	PrintHeader("Running all benchmarks...")
	return runCommandVerbose("go", "test", "-run=^$", "-bench=.", "-benchmem", benchTime, "./...")
}

func (c *BenchCommand) runHot() error {
	PrintHeader("Running hot path benchmarks...")
	for _, hp := range hotPaths {
		fmt.Printf("  → %s %s\n", hp.dir, hp.pattern)
		if err := runCommandVerbose("go", "test", "-run=^$", "-bench="+hp.pattern, "-benchmem", benchTime, hp.dir); err != nil {
			return err
		}
	}
	return nil
}

func (c *BenchCommand) runAndSave(filename string) error {
	PrintHeader("Running benchmarks and saving results...")
	if err := os.MkdirAll(benchResultsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	path := filepath.Join(benchResultsDir, filename)
	if err := runCommandToFile(path, "go", "test", "-run=^$", "-bench=.", "-benchmem", "-count=5", benchTime, "./..."); err != nil {
		return fmt.Errorf("benchmark execution failed: %w", err)
	}

	PrintSuccess("Results saved to %s", path)
	return nil
}

func (c *BenchCommand) compare() error {
	baseline := filepath.Join(benchResultsDir, "baseline.txt")
	if _, err := os.Stat(baseline); os.IsNotExist(err) {
		return fmt.Errorf("no baseline found, run 'devtool bench baseline' first")
	}

	if err := c.runAndSave("current.txt"); err != nil {
		return err
	}

	PrintHeader("Comparing to baseline...")
	return runCommandVerbose("go", "run", benchstatPkg, baseline, filepath.Join(benchResultsDir, "current.txt"))
}

func (c *BenchCommand) profile() error {
	PrintHeader("Profiling box opening...")
	if err := os.MkdirAll(benchProfilesDir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	cpu := filepath.Join(benchProfilesDir, "cpu.prof")
	mem := filepath.Join(benchProfilesDir, "mem.prof")
	if err := runCommandVerbose("go", "test", "-run=^$", "-bench=BenchmarkOpenBox",
		"-cpuprofile="+cpu, "-memprofile="+mem, "-benchmem", "./internal/lootbox"); err != nil {
		return err
	}

	PrintSuccess("Profiles saved to %s", benchProfilesDir)
	fmt.Println("View with:")
	fmt.Println("  go tool pprof -http=:8081 " + cpu)
	fmt.Println("  go tool pprof -http=:8081 " + mem)
	return nil
}
