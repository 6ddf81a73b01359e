package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"time"

	arg "github.com/alexflint/go-arg"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/example/jsparse/ast"
	"github.com/example/jsparse/lexer"
	"github.com/example/jsparse/parsecache"
	"github.com/example/jsparse/parser"
	"github.com/example/jsparse/token"
)

func main() {
	os.Exit(run())
}

// run returns the process exit status.
func run() int {
	args := struct {
		File     string `arg:"positional" help:"JavaScript source file"`
		Eval     string `arg:"-e" help:"parse inline source instead of a file"`
		Tokens   bool   `help:"print the token stream as JSON instead of parsing"`
		JSON     bool   `help:"print the AST as JSON"`
		Print    bool   `help:"print the AST as an indented tree"`
		Repeat   int    `help:"parse the same source repeatedly and report timings"`
		Cache    bool   `help:"route repeated parses through the parse cache"`
		Trace    bool   `help:"trace parser productions to stdout"`
		MaxDepth int    `help:"maximum production nesting, negative to disable"`
		Verbose  bool   `arg:"-v" help:"log debug events to stderr"`
	}{
		JSON:   true,
		Repeat: 1,
	}
	p := arg.MustParse(&args)
	if args.Eval == "" && args.File == "" {
		p.Fail("either a file or --eval is required")
	}

	var logger *zap.Logger
	var err error
	if args.Verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Println(err)
		return 1
	}
	defer logger.Sync()

	name := "<eval>"
	source := args.Eval
	if args.Eval == "" {
		buf, err := ioutil.ReadFile(args.File)
		if err != nil {
			logger.Error("reading source", zap.Error(err))
			return 1
		}
		name, source = args.File, string(buf)
	}

	if args.Tokens {
		toks, err := lexer.Tokenize(source)
		if err != nil {
			return report(name, source, err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(toks); err != nil {
			logger.Error("encoding tokens", zap.Error(err))
			return 1
		}
		return 0
	}

	opts := parser.DefaultOptions
	opts.Trace = args.Trace
	opts.Logger = logger
	if args.MaxDepth != 0 {
		opts.MaxDepth = args.MaxDepth
	}

	parse := func(src string) (*ast.Program, error) {
		return parser.ParseWithOptions(src, opts)
	}
	var cache *parsecache.Cache
	if args.Cache {
		cache, err = parsecache.NewWithOptions(parsecache.DefaultSize, opts)
		if err != nil {
			logger.Error("creating parse cache", zap.Error(err))
			return 1
		}
		parse = cache.Parse
	}

	var times []float64
	var prog *ast.Program
	for i := 0; i < args.Repeat || i == 0; i++ {
		begin := time.Now()
		prog, err = parse(source)
		if err != nil {
			return report(name, source, err)
		}
		times = append(times, float64(time.Since(begin)))
	}

	if args.Print {
		if err := ast.Fprint(os.Stdout, prog, "  "); err != nil {
			logger.Error("printing AST", zap.Error(err))
			return 1
		}
	} else if args.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(prog); err != nil {
			logger.Error("encoding AST", zap.Error(err))
			return 1
		}
	}

	if args.Repeat > 1 {
		fmt.Fprintf(os.Stderr, "Parse time over %d runs:\n", len(times))
		f, _ := stats.Median(times)
		fmt.Fprintf(os.Stderr, "  Median: %v\n", time.Duration(f))
		f, _ = stats.Mean(times)
		fmt.Fprintf(os.Stderr, "  Mean: %v\n", time.Duration(f))
		f, _ = stats.StdDevS(times)
		fmt.Fprintf(os.Stderr, "  StdDev: %v\n", time.Duration(f))
		f, _ = stats.Min(times)
		fmt.Fprintf(os.Stderr, "  Min: %v\n", time.Duration(f))
		f, _ = stats.Max(times)
		fmt.Fprintf(os.Stderr, "  Max: %v\n", time.Duration(f))
		if cache != nil {
			s := cache.Stats()
			fmt.Fprintf(os.Stderr, "  Cache: %d hits, %d misses\n", s.Hits, s.Misses)
		}
	}
	return 0
}

// report prints err with a line:column position when it carries an
// offset and returns the exit status for a failed parse.
func report(name, source string, err error) int {
	offset := -1
	switch e := errors.Cause(err).(type) {
	case *lexer.Error:
		offset = e.From
	case *parser.SyntaxError:
		offset = e.Got.From
	}
	if offset >= 0 {
		line, col := token.Position(source, offset)
		fmt.Fprintf(os.Stderr, "%s:%d:%d: %v\n", name, line, col, err)
	} else {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
	}
	return 1
}
