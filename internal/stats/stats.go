// Package stats accumulates timing and progress counters for one benchmark
// workload and prints the periodic progress lines and final summary.
package stats

import (
	"fmt"
	"io"
	"time"
)

// Accumulator tracks operations, bytes, and elapsed engine time for the
// workload currently executing. It is purely observational: nothing in the
// run depends on its state. Not safe for concurrent use; the driver owns
// exactly one per run.
type Accumulator struct {
	w          io.Writer
	done       int
	nextReport int
	bytes      int64
	elapsed    time.Duration
	message    string
}

// New returns an accumulator that writes progress and summary lines to w.
func New(w io.Writer) *Accumulator {
	return &Accumulator{w: w, nextReport: 100}
}

// Start resets all counters for the upcoming workload.
func (a *Accumulator) Start() {
	a.done = 0
	a.nextReport = 100
	a.bytes = 0
	a.elapsed = 0
	a.message = ""
}

// FinishOp records one completed operation and emits a progress line when
// the count crosses the current report threshold. The threshold grows
// geometrically at first and then in fixed steps of 100,000, so progress
// output stays sparse on multi-million-entry runs.
func (a *Accumulator) FinishOp() {
	a.done++
	if a.done < a.nextReport {
		return
	}
	switch {
	case a.nextReport < 1000:
		a.nextReport += 100
	case a.nextReport < 5000:
		a.nextReport += 500
	case a.nextReport < 10000:
		a.nextReport += 1000
	case a.nextReport < 50000:
		a.nextReport += 5000
	case a.nextReport < 100000:
		a.nextReport += 10000
	case a.nextReport < 500000:
		a.nextReport += 50000
	default:
		a.nextReport += 100000
	}
	fmt.Fprintf(a.w, "... finished %d ops%30s\r", a.done, "")
}

// AddBytes records n bytes processed by the workload.
func (a *Accumulator) AddBytes(n int64) {
	a.bytes += n
}

// AddTime records engine time spent on one chunk of the workload.
func (a *Accumulator) AddTime(d time.Duration) {
	a.elapsed += d
}

// SetMessage attaches an operation-specific note, e.g. "(1000 ops)" when a
// workload runs fewer entries than the configured total.
func (a *Accumulator) SetMessage(msg string) {
	a.message = msg
}

// Done returns the number of operations completed since Start.
func (a *Accumulator) Done() int {
	return a.done
}

// Bytes returns the number of bytes recorded since Start.
func (a *Accumulator) Bytes() int64 {
	return a.bytes
}

// Elapsed returns the accumulated engine time since Start.
func (a *Accumulator) Elapsed() time.Duration {
	return a.elapsed
}

// Stop finalizes the workload: when bytes were recorded, throughput in MB/s
// is prepended to the message, then the per-operation and total microsecond
// lines are printed.
func (a *Accumulator) Stop(name string) {
	done := a.done
	if done < 1 {
		done = 1
	}

	totalMicros := float64(a.elapsed.Nanoseconds()) / 1e3
	if a.bytes > 0 {
		seconds := totalMicros / 1e6
		if seconds <= 0 {
			seconds = 1e-9
		}
		rate := fmt.Sprintf("%6.1f MB/s", float64(a.bytes)/1048576.0/seconds)
		if a.message == "" {
			a.message = rate
		} else {
			a.message = rate + " " + a.message
		}
	}

	if a.message != "" {
		fmt.Fprintf(a.w, "%-12s : %.3f micros/op; %s\n", name, totalMicros/float64(done), a.message)
	} else {
		fmt.Fprintf(a.w, "%-12s : %.3f micros/op;\n", name, totalMicros/float64(done))
	}
	fmt.Fprintf(a.w, "%-12s : %.3f micros in total;\n", name, totalMicros)
}
