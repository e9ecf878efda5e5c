// Package batch evaluates the expressions of a config file in parallel.
package batch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.buf.build/protocolbuffers/go/prometheus/prometheus"

	"arith/calc"
	"arith/oracle"
	"arith/remote"
	"arith/series"
)

type Result struct {
	Series     string
	Expression string
	Labels     []*prometheus.Label
	Value      float64
	Err        error
	Mismatch   *oracle.Mismatch
}

func labels(e ConfigExpression) ([]*prometheus.Label, error) {
	if e.Series == "" {
		return []*prometheus.Label{
			{Name: series.NameLabel, Value: DefaultSeries},
			{Name: "expression", Value: e.Expression},
		}, nil
	}
	ts, err := series.ParseSelector(e.Series)
	if err != nil {
		return nil, err
	}
	return ts.Labels, nil
}

func evaluate(cfg *Config, e ConfigExpression, r *Result) {
	scanner := calc.NewScanner()
	if cfg.Strict {
		scanner = calc.NewStrictScanner()
	}

	tokens, err := scanner.Scan(e.Expression)
	if err != nil {
		r.Err = err
		return
	}
	r.Value, r.Err = calc.NewParser(tokens).WithMaxDepth(cfg.MaxDepth).Parse()

	if cfg.LuaCheck {
		r.Mismatch = oracle.New().Check(tokens, r.Value, r.Err)
	}
}

// Run evaluates every expression in its own goroutine. Results keep the
// config order. A bad series selector fails the whole run before anything
// is evaluated.
func Run(ctx context.Context, cfg *Config) ([]Result, error) {
	results := make([]Result, len(cfg.Expressions))
	for i, e := range cfg.Expressions {
		l, err := labels(e)
		if err != nil {
			return nil, fmt.Errorf("expression %v: %w", i, err)
		}
		name := e.Series
		if name == "" {
			name = DefaultSeries
		}
		results[i] = Result{
			Series:     name,
			Expression: e.Expression,
			Labels:     l,
		}
	}

	wg := sync.WaitGroup{}
	for i := range cfg.Expressions {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			evaluate(cfg, cfg.Expressions[i], &results[i])
		}(i)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-done:
		return results, nil
	}
}

// Samples converts successful results into remote write samples.
func Samples(results []Result, at time.Time) []remote.Sample {
	var samples []remote.Sample
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		samples = append(samples, remote.Sample{
			Labels:    r.Labels,
			Value:     r.Value,
			Timestamp: at.UnixMilli(),
		})
	}
	return samples
}
