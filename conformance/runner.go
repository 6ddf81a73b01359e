// Package conformance runs the parser over a directory of JavaScript
// fixtures and checks each against the outcome declared in its YAML
// frontmatter.
package conformance

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/example/jsparse/ast"
	"github.com/example/jsparse/lexer"
	"github.com/example/jsparse/parser"
)

type Result int

const (
	Pass Result = iota
	Fail
	Skip
	Error
)

func (r Result) String() string {
	switch r {
	case Pass:
		return "PASS"
	case Fail:
		return "FAIL"
	case Skip:
		return "SKIP"
	case Error:
		return "ERROR"
	}
	return "UNKNOWN"
}

type TestResult struct {
	Path    string
	Result  Result
	Message string
	Elapsed time.Duration
}

type Summary struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
	Errors  int
	Elapsed time.Duration
}

// DefaultTimeout bounds the time spent parsing one fixture.
const DefaultTimeout = 5 * time.Second

type Config struct {
	Dir     string // fixture root, searched recursively for .js files
	Filter  string // only run fixtures whose relative path contains Filter
	Limit   int    // run at most Limit fixtures when positive
	Timeout time.Duration
	Verbose bool
	Output  io.Writer // verbose output; os.Stdout when nil
	Options parser.Options
}

// Run discovers and parses the fixtures under cfg.Dir, returning one
// result per fixture and a summary. The error is non-nil only when the
// fixture directory cannot be walked.
func Run(cfg Config) ([]TestResult, Summary, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	log := cfg.Options.Logger
	if log == nil {
		log = zap.NewNop()
	}

	var files []string
	err := filepath.Walk(cfg.Dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".js") {
			return nil
		}
		if cfg.Filter != "" {
			rel, _ := filepath.Rel(cfg.Dir, path)
			if !strings.Contains(rel, cfg.Filter) {
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, Summary{}, errors.Wrapf(err, "walking fixtures in %s", cfg.Dir)
	}

	if cfg.Limit > 0 && len(files) > cfg.Limit {
		files = files[:cfg.Limit]
	}
	log.Debug("discovered fixtures", zap.String("dir", cfg.Dir), zap.Int("count", len(files)))

	start := time.Now()
	var results []TestResult
	summary := Summary{Total: len(files)}

	for _, path := range files {
		rel, _ := filepath.Rel(cfg.Dir, path)
		tr := runFixture(path, cfg)
		tr.Path = rel
		results = append(results, tr)

		switch tr.Result {
		case Pass:
			summary.Passed++
		case Fail:
			summary.Failed++
		case Skip:
			summary.Skipped++
		case Error:
			summary.Errors++
		}

		log.Debug("fixture done",
			zap.String("path", rel),
			zap.Stringer("result", tr.Result),
			zap.Duration("elapsed", tr.Elapsed))
		if cfg.Verbose {
			msg := ""
			if tr.Message != "" {
				msg = " " + tr.Message
			}
			fmt.Fprintf(cfg.Output, "%s %s%s\n", tr.Result, rel, msg)
		}
	}

	summary.Elapsed = time.Since(start)
	return results, summary, nil
}

type parseResult struct {
	prog *ast.Program
	err  error
}

func runFixture(path string, cfg Config) TestResult {
	source, err := ioutil.ReadFile(path)
	if err != nil {
		return TestResult{Result: Error, Message: "read error: " + err.Error()}
	}

	meta, err := parseMetadata(string(source))
	if err != nil {
		return TestResult{Result: Error, Message: err.Error()}
	}

	for _, feat := range meta.Features {
		if isUnsupportedFeature(feat) {
			return TestResult{Result: Skip, Message: "unsupported feature: " + feat}
		}
	}
	for _, flag := range meta.Flags {
		if flag == "module" {
			return TestResult{Result: Skip, Message: "module test"}
		}
	}

	start := time.Now()
	resultCh := make(chan parseResult, 1)
	go func() {
		prog, err := parser.ParseWithOptions(string(source), cfg.Options)
		resultCh <- parseResult{prog: prog, err: err}
	}()

	var res parseResult
	select {
	case res = <-resultCh:
	case <-time.After(cfg.Timeout):
		return TestResult{
			Result:  Error,
			Message: fmt.Sprintf("timeout (%s)", cfg.Timeout),
			Elapsed: time.Since(start),
		}
	}
	elapsed := time.Since(start)

	phase := failurePhase(res.err)
	if meta.Negative != nil && expectsFailure(meta.Negative.Phase) {
		if phase == meta.Negative.Phase {
			return TestResult{Result: Pass, Elapsed: elapsed}
		}
		msg := fmt.Sprintf("expected %s error", meta.Negative.Phase)
		if res.err != nil {
			msg += ", got " + res.err.Error()
		}
		return TestResult{Result: Fail, Message: msg, Elapsed: elapsed}
	}

	if res.err != nil {
		return TestResult{Result: Fail, Message: res.err.Error(), Elapsed: elapsed}
	}
	return TestResult{Result: Pass, Elapsed: elapsed}
}

// failurePhase names the stage that produced err, or "" for success.
func failurePhase(err error) string {
	switch errors.Cause(err).(type) {
	case nil:
		return ""
	case *lexer.Error:
		return PhaseLex
	case *parser.SyntaxError:
		return PhaseParse
	}
	return "unknown"
}
