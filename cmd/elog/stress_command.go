package main

import (
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/trickstertwo/elog"
	"github.com/trickstertwo/elog/interceptor"
)

// countingSink counts lines and drops them.
type countingSink struct {
	lines   atomic.Uint64
	markers atomic.Uint64
}

func (s *countingSink) Write(_ int, _ string, text string) {
	s.lines.Add(1)
	if text == "" {
		s.markers.Add(1)
	}
}

type stressResult struct {
	stats    elog.Stats
	lines    uint64
	markers  uint64
	perLevel map[elog.Level]uint64
	elapsed  time.Duration
}

func newStressCommand(ctx *commandContext) *cobra.Command {
	var events, concurrency int

	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Emit events concurrently and report pipeline counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			if events < 1 || concurrency < 1 {
				return fmt.Errorf("--events and --concurrency must be positive")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			sink := &countingSink{}
			counter := interceptor.NewCounter()
			p, err := buildPipeline(cfg, sink, counter)
			if err != nil {
				return err
			}

			res, err := runStress(cmd, p, events, concurrency)
			_ = p.Close()
			if err != nil {
				return err
			}
			res.lines = sink.lines.Load()
			res.markers = sink.markers.Load()
			res.perLevel = counter.Snapshot()

			fmt.Fprintln(cmd.OutOrStdout(), renderStress(res, events))
			return nil
		},
	}

	cmd.Flags().IntVarP(&events, "events", "n", 10000, "Number of events to emit")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", 8, "Concurrent emitters")
	return cmd
}

func runStress(cmd *cobra.Command, p *elog.Pipeline, events, concurrency int) (stressResult, error) {
	g, gctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(concurrency)

	start := time.Now()
	for i := 0; i < events; i++ {
		ev := elog.Event{
			Level:   elog.Level(i % int(elog.LevelAssert+1)),
			Tag:     "Stress",
			Message: "event " + strconv.Itoa(i),
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p.EmitContext(gctx, ev)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return stressResult{}, err
	}
	return stressResult{stats: p.Stats(), elapsed: time.Since(start)}, nil
}

func renderStress(res stressResult, events int) string {
	rate := 0.0
	if secs := res.elapsed.Seconds(); secs > 0 {
		rate = float64(events) / secs
	}
	u := func(v uint64) string { return strconv.FormatUint(v, 10) }

	rows := [][]string{
		{"Events", u(res.stats.Events)},
		{"Continued", u(res.stats.Continued)},
		{"Stopped", u(res.stats.Stopped)},
		{"Interceptor failures", u(res.stats.InterceptorFailures)},
		{"Print failures", u(res.stats.PrintFailures)},
		{"Aborted", u(res.stats.Aborted)},
		{"Sink lines", u(res.lines)},
		{"Completion markers", u(res.markers)},
	}
	for l := elog.LevelVerbose; l <= elog.LevelAssert; l++ {
		rows = append(rows, []string{"Seen " + l.String(), u(res.perLevel[l])})
	}
	rows = append(rows,
		[]string{"Elapsed", res.elapsed.Round(time.Microsecond).String()},
		[]string{"Events/sec", strconv.FormatFloat(rate, 'f', 0, 64)},
	)
	return renderTable([]string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight})
}
