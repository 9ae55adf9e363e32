package main

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/term"
)

const (
	progressUpdateInterval = 100 * time.Millisecond
	clearLineSequence      = "\r\033[K"
)

// ProgressPrinter displays a single-line progress message with elapsed time
// on stderr. It stays silent when stderr is not a terminal, so piped and
// scripted runs see clean output.
//
// A ProgressPrinter is single-use: Start at most once, Stop exactly once.
type ProgressPrinter struct {
	prefix    string
	phase     atomic.Value // string
	startTime time.Time
	ticker    atomic.Pointer[time.Ticker]
	stopChan  chan struct{}
	done      chan struct{}
	started   atomic.Bool
	enabled   bool
}

// NewProgressPrinter creates a progress printer for the given operation.
func NewProgressPrinter(prefix, phase string) *ProgressPrinter {
	p := &ProgressPrinter{
		prefix:  prefix,
		enabled: term.IsTerminal(int(os.Stderr.Fd())),
	}
	p.phase.Store(phase)
	return p
}

// SetPhase updates the displayed phase name. Safe from any goroutine.
func (p *ProgressPrinter) SetPhase(phase string) {
	p.phase.Store(phase)
}

// Start begins displaying progress updates in a background goroutine.
// Panics if called more than once.
func (p *ProgressPrinter) Start() {
	if !p.started.CompareAndSwap(false, true) {
		panic("ProgressPrinter.Start called more than once")
	}
	if !p.enabled {
		return
	}

	p.stopChan = make(chan struct{})
	p.done = make(chan struct{})
	p.startTime = time.Now()
	ticker := time.NewTicker(progressUpdateInterval)
	p.ticker.Store(ticker)

	fmt.Fprintf(os.Stderr, "\r%s (%s...)   ", p.prefix, p.phase.Load().(string))

	go func() {
		defer close(p.done)
		for {
			select {
			case <-p.stopChan:
				return
			case <-ticker.C:
				elapsed := int(time.Since(p.startTime).Seconds())
				if elapsed > 0 {
					fmt.Fprintf(os.Stderr, "\r%s (%s %ds)   ", p.prefix, p.phase.Load().(string), elapsed)
				} else {
					fmt.Fprintf(os.Stderr, "\r%s (%s...)   ", p.prefix, p.phase.Load().(string))
				}
			}
		}
	}()
}

// Stop stops the progress display and clears the line. Safe to call multiple
// times; only the first call does the work.
func (p *ProgressPrinter) Stop() {
	ticker := p.ticker.Swap(nil)
	if ticker == nil {
		return
	}

	ticker.Stop()
	close(p.stopChan)
	<-p.done
	p.stopChan = nil

	fmt.Fprint(os.Stderr, clearLineSequence)
}
