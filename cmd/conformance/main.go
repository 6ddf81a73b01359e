package main

import (
	"fmt"
	"log"
	"os"
	"time"

	arg "github.com/alexflint/go-arg"
	"go.uber.org/zap"

	"github.com/example/jsparse/conformance"
)

func main() {
	args := struct {
		Dir     string        `arg:"positional" help:"directory of fixtures with YAML frontmatter"`
		Filter  string        `help:"only run fixtures whose path contains this substring"`
		Limit   int           `help:"maximum number of fixtures to run (0 = all)"`
		Timeout time.Duration `help:"per-fixture parse timeout"`
		Verbose bool          `arg:"-v" help:"print each result as it completes and log debug events"`
	}{
		Dir:     "fixtures",
		Timeout: conformance.DefaultTimeout,
	}
	arg.MustParse(&args)

	logger := zap.NewNop()
	if args.Verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			log.Fatalln(err)
		}
	}
	defer logger.Sync()

	if _, err := os.Stat(args.Dir); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: fixture directory not found at %s\n", args.Dir)
		os.Exit(1)
	}

	cfg := conformance.Config{
		Dir:     args.Dir,
		Filter:  args.Filter,
		Limit:   args.Limit,
		Timeout: args.Timeout,
		Verbose: args.Verbose,
	}
	cfg.Options.Logger = logger

	results, summary, err := conformance.Run(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !args.Verbose {
		for _, r := range results {
			if r.Result == conformance.Pass {
				continue
			}
			msg := ""
			if r.Message != "" {
				msg = " " + r.Message
			}
			fmt.Printf("%s %s%s\n", r.Result, r.Path, msg)
		}
	}

	fmt.Println()
	fmt.Println("=== Conformance Summary ===")
	fmt.Printf("Total:   %d\n", summary.Total)
	fmt.Printf("Passed:  %d\n", summary.Passed)
	fmt.Printf("Failed:  %d\n", summary.Failed)
	fmt.Printf("Skipped: %d\n", summary.Skipped)
	fmt.Printf("Errors:  %d\n", summary.Errors)
	if run := summary.Total - summary.Skipped; run > 0 {
		fmt.Printf("Pass rate: %.1f%% (%d/%d excluding skipped)\n",
			float64(summary.Passed)/float64(run)*100, summary.Passed, run)
	}
	fmt.Printf("Elapsed: %s\n", summary.Elapsed)

	if summary.Failed > 0 || summary.Errors > 0 {
		os.Exit(1)
	}
}
