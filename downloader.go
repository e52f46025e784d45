package main

import (
	"context"
	"os"
	"sync"
	"time"
)

// AssetSink accepts download tasks without blocking the caller
type AssetSink interface {
	Enqueue(task DownloadTask)
}

// assetStore is the storage side of a download
type assetStore interface {
	FetchAndStore(ctx context.Context, url, destination string) error
}

// Downloader runs download tasks in the background with bounded concurrency.
// Failures are reported to the diagnostics channel and never stop the caller.
type Downloader struct {
	ctx       context.Context
	store     assetStore
	sink      RecordSink
	timeout   time.Duration
	overwrite bool

	slots   chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	results []DownloadResult
}

func NewDownloader(ctx context.Context, store assetStore, sink RecordSink, workers int, timeout time.Duration, overwrite bool) *Downloader {
	if workers < 1 {
		workers = 1
	}
	return &Downloader{
		ctx:       ctx,
		store:     store,
		sink:      sink,
		timeout:   timeout,
		overwrite: overwrite,
		slots:     make(chan struct{}, workers),
	}
}

// Enqueue schedules task and returns immediately
func (d *Downloader) Enqueue(task DownloadTask) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		select {
		case d.slots <- struct{}{}:
		case <-d.ctx.Done():
			d.finish(task, StatusError, d.ctx.Err())
			return
		}
		defer func() { <-d.slots }()

		d.run(task)
	}()
}

func (d *Downloader) run(task DownloadTask) {
	if !d.overwrite {
		if _, err := os.Stat(task.Destination); err == nil {
			debugLog("skipping %s: file exists", task.Destination)
			d.finish(task, StatusSkipped, nil)
			return
		}
	}

	ctx := d.ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	if err := d.store.FetchAndStore(ctx, task.SourceURL, task.Destination); err != nil {
		d.finish(task, StatusError, err)
		return
	}
	d.finish(task, StatusSuccess, nil)
}

func (d *Downloader) finish(task DownloadTask, status DownloadStatus, err error) {
	if status == StatusError {
		d.sink.Diagnostic("download failed for %s: %v", task.SourceURL, err)
	}

	d.mu.Lock()
	d.results = append(d.results, DownloadResult{Task: task, Status: status, Error: err})
	d.mu.Unlock()
}

// Wait blocks until every enqueued task has finished and returns their results
func (d *Downloader) Wait() []DownloadResult {
	d.wg.Wait()

	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]DownloadResult(nil), d.results...)
}
