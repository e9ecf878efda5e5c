package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"arith/batch"
	"arith/calc"
	"arith/remote"
)

var (
	prometheusUrl *string
	configFile    *string
	strict        *bool
	maxDepth      *int
	luaCheck      *bool
)

func init() {
	prometheusUrl = flag.String("prometheus.url", "", "prometheus http url, results are pushed via remote write when set")
	configFile = flag.String("config.file", "", "batch config file location, lines are read from stdin when empty")
	strict = flag.Bool("strict", false, "reject unknown characters while scanning")
	maxDepth = flag.Int("max.depth", calc.DefaultMaxDepth, "maximum nesting of parentheses and unary signs")
	luaCheck = flag.Bool("lua.check", false, "cross-check batch results with the embedded lua interpreter")
}

// evalLines evaluates one expression per input line until EOF.
func evalLines(in io.Reader, out io.Writer) error {
	scanner := calc.NewScanner()
	if *strict {
		scanner = calc.NewStrictScanner()
	}
	parser := calc.NewParser(nil).WithMaxDepth(*maxDepth)

	lines := bufio.NewScanner(in)
	for lines.Scan() {
		tokens, err := scanner.Scan(lines.Text())
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		parser.Reset(tokens)
		value, err := parser.Parse()
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		fmt.Fprintln(out, value)
	}
	return lines.Err()
}

func runBatch(ctx context.Context) {
	cfg, err := batch.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}
	cfg.Strict = cfg.Strict || *strict
	cfg.LuaCheck = cfg.LuaCheck || *luaCheck
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = *maxDepth
	}

	results, err := batch.Run(ctx, cfg)
	if err != nil {
		log.Fatalf("error evaluating batch: %v", err)
	}

	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("%v: %v: %v\n", r.Series, r.Expression, r.Err)
		} else {
			fmt.Printf("%v: %v = %v\n", r.Series, r.Expression, r.Value)
		}
		if r.Mismatch != nil {
			log.Println(fmt.Sprintf("lua disagrees: %v", r.Mismatch))
		}
	}

	if *prometheusUrl == "" {
		return
	}

	writer, err := remote.NewWriter(*prometheusUrl)
	if err != nil {
		log.Fatalf("error creating remote writer: %v", err)
	}
	err = writer.Write(ctx, batch.Samples(results, time.Now()))
	if err != nil {
		log.Fatalf("error writing results to %v: %v", writer.URL(), err)
	}
	log.Println("done writing results")
}

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGABRT, syscall.SIGINT)
	defer stop()

	if *configFile != "" {
		runBatch(ctx)
		return
	}

	if err := evalLines(os.Stdin, os.Stdout); err != nil {
		log.Fatalf("error reading input: %v", err)
	}
}
