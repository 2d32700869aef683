package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const (
	// DefaultSettleDelay is the fixed wait after a creation event
	// before reading the file, so the writer can finish flushing.
	// A pragmatic guard, not a correctness guarantee: a large,
	// slowly-written document can still be read prematurely.
	DefaultSettleDelay = 3 * time.Second

	// DefaultWorkerCount is the number of concurrent document runs.
	DefaultWorkerCount = 4

	// queueSize buffers discovered documents between the watch loop
	// and the workers.
	queueSize = 100
)

// job is one discovered document. settle marks live events, which wait
// out the settle delay before extraction; backlog documents do not.
type job struct {
	path   string
	settle bool
}

// Dispatcher observes the vault directory and drives each discovered
// document through the processor on a bounded worker pool. Detection is
// decoupled from processing latency by a buffered job channel.
type Dispatcher struct {
	processor   DocumentProcessor
	vaultDir    string
	settleDelay time.Duration
	workers     int
	queue       chan job
	wg          sync.WaitGroup
	log         zerolog.Logger
}

// NewDispatcher creates a dispatcher watching vaultDir with workers
// concurrent document runs.
func NewDispatcher(processor DocumentProcessor, vaultDir string, workers int, settleDelay time.Duration, log zerolog.Logger) *Dispatcher {
	if workers <= 0 {
		workers = DefaultWorkerCount
	}
	return &Dispatcher{
		processor:   processor,
		vaultDir:    vaultDir,
		settleDelay: settleDelay,
		workers:     workers,
		queue:       make(chan job, queueSize),
		log:         log,
	}
}

// Run processes the startup backlog, then watches for creation events
// until ctx is canceled. On cancellation it stops accepting events,
// lets in-flight documents finish or be abandoned, and returns nil.
func (d *Dispatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("dispatcher: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(d.vaultDir); err != nil {
		return fmt.Errorf("dispatcher: watch %s: %w", d.vaultDir, err)
	}

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(ctx)
	}

	d.scanBacklog(ctx)

	d.log.Info().Str("dir", d.vaultDir).Msg("MONITORING ACTIVE")

loop:
	for {
		select {
		case <-ctx.Done():
			break loop

		case event, ok := <-watcher.Events:
			if !ok {
				break loop
			}
			if !event.Op.Has(fsnotify.Create) || !isDocument(event.Name) {
				continue
			}
			d.log.Info().Str("document", filepath.Base(event.Name)).Msg("new document detected")
			d.enqueue(ctx, job{path: event.Name, settle: true})

		case werr, ok := <-watcher.Errors:
			if !ok {
				break loop
			}
			d.log.Error().Err(werr).Msg("watcher error")
		}
	}

	close(d.queue)
	d.wg.Wait()
	return nil
}

// scanBacklog enqueues every matching document already present in the
// vault, in filesystem enumeration order.
func (d *Dispatcher) scanBacklog(ctx context.Context) {
	entries, err := os.ReadDir(d.vaultDir)
	if err != nil {
		d.log.Error().Err(err).Str("dir", d.vaultDir).Msg("backlog scan failed")
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || !isDocument(entry.Name()) {
			continue
		}
		d.enqueue(ctx, job{path: filepath.Join(d.vaultDir, entry.Name())})
	}
}

func (d *Dispatcher) enqueue(ctx context.Context, j job) {
	select {
	case d.queue <- j:
	case <-ctx.Done():
	}
}

// worker consumes jobs until the queue closes or ctx is canceled. One
// document's failure is logged and never halts the pool.
func (d *Dispatcher) worker(ctx context.Context) {
	defer d.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return

		case j, ok := <-d.queue:
			if !ok {
				return
			}
			if j.settle && d.settleDelay > 0 {
				select {
				case <-time.After(d.settleDelay):
				case <-ctx.Done():
					return
				}
			}
			if err := d.processor.ProcessDocument(ctx, j.path); err != nil {
				d.log.Error().Err(err).Str("document", filepath.Base(j.path)).Msg("document processing failed")
			}
		}
	}
}

func isDocument(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".pdf")
}
