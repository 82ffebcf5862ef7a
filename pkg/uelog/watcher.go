package uelog

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/nxadm/tail"

	"github.com/uelog/uelog-go/internal/scan"
	"github.com/uelog/uelog-go/pkg/uelog/record"
)

// watcherErrBuffer is the buffer size for the error channel. A small buffer
// prevents error loss while the consumer is busy processing records.
const watcherErrBuffer = 16

// Watcher follows a growing Unreal Engine log file and emits one Record
// per logical entry as it is written.
//
// The file is always read from its beginning: the timezone announcement
// appears once near the start, and records seen before it cannot be
// resolved. A record stays open while continuation lines may still arrive;
// it is emitted when the next header appears or when no line has arrived
// for the configured flush interval.
type Watcher struct {
	path string
	cfg  watchConfig
	log  *slog.Logger

	mu       sync.Mutex
	closed   bool
	watching bool
	cancel   context.CancelFunc
	doneCh   chan struct{}
}

// NewWatcher prepares a watcher for the log file at path.
func NewWatcher(path string, opts ...WatchOption) (*Watcher, error) {
	cfg := applyWatchOptions(opts)
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logger := cfg.logger
	if logger == nil {
		logger = discardLogger
	}

	return &Watcher{path: path, cfg: *cfg, log: logger}, nil
}

// Watch starts following the file and returns the record and error
// channels. Both channels close when ctx is cancelled, the watcher is
// closed, or a fatal error occurs (the error is sent first). Watch can be
// called once per Watcher.
func (w *Watcher) Watch(ctx context.Context) (<-chan record.Record, <-chan error, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, nil, ErrWatcherClosed
	}
	if w.watching {
		return nil, nil, ErrAlreadyWatching
	}
	w.watching = true

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.doneCh = make(chan struct{})

	recCh := make(chan record.Record)
	errCh := make(chan error, watcherErrBuffer)

	go w.run(ctx, recCh, errCh)

	return recCh, errCh, nil
}

// Close stops the watcher and blocks until its goroutine has exited.
// Safe to call multiple times.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.cancel != nil {
		w.cancel()
	}
	doneCh := w.doneCh
	w.mu.Unlock()

	if doneCh != nil {
		<-doneCh
	}
	return nil
}

func (w *Watcher) run(ctx context.Context, recCh chan<- record.Record, errCh chan<- error) {
	defer close(w.doneCh)
	defer close(recCh)
	defer close(errCh)

	t, err := tail.TailFile(w.path, tail.Config{
		Follow:    true,
		ReOpen:    w.cfg.reopen,
		MustExist: true,
		Poll:      w.cfg.poll,
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		sendError(ctx, errCh, err)
		return
	}
	defer func() {
		_ = t.Stop()
		t.Cleanup()
	}()
	w.log.Debug("started tailing", "path", w.path)

	var (
		loc     *time.Location
		open    *record.Record
		first   = true
		scanned int
	)

	flushTicker := time.NewTicker(w.cfg.flushInterval)
	defer flushTicker.Stop()
	lastLine := time.Now()

	emit := func(rec *record.Record) bool {
		select {
		case recCh <- *rec:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		select {
		case <-ctx.Done():
			return

		case line, ok := <-t.Lines:
			if !ok {
				if open != nil {
					emit(open)
				}
				return
			}
			if line.Err != nil {
				sendError(ctx, errCh, line.Err)
				continue
			}
			lastLine = time.Now()

			text := strings.TrimRight(line.Text, "\r")
			if first {
				first = false
				text = strings.TrimPrefix(text, "\ufeff")
			}

			// Before the timezone is known nothing can be resolved. A
			// header arriving first means the announcement is missing.
			if loc == nil {
				seconds, found, ok := scan.RawOffset(text)
				switch {
				case found && !ok:
					sendError(ctx, errCh, &InitError{Err: ErrMalformedOffset})
					return
				case found:
					loc = time.FixedZone(offsetName(seconds), seconds)
					w.log.Debug("resolved log timezone", "offset", offsetName(seconds))
				case scan.IsHeader(text):
					sendError(ctx, errCh, &InitError{Err: ErrTimezoneNotFound})
					return
				default:
					scanned++
					if w.cfg.scanLimit > 0 && scanned >= w.cfg.scanLimit {
						sendError(ctx, errCh, &InitError{Err: ErrTimezoneNotFound})
						return
					}
				}
				continue
			}

			hdr, isHeader := scan.ParseHeader(text)
			if !isHeader {
				if open != nil {
					open.RawText += "\n" + text
					open.Body += "\n" + text
				}
				continue
			}

			if open != nil {
				if !emit(open) {
					return
				}
				open = nil
			}

			category, sev, body, ok := scan.SplitTail(hdr.Rest)
			if !ok {
				w.log.Debug("skipping header line without category", "line", text)
				continue
			}
			open = &record.Record{
				Timestamp: headerTime(hdr, loc),
				Severity:  sev,
				Category:  category,
				RawText:   hdr.Rest,
				Body:      body,
			}

		case <-flushTicker.C:
			if open != nil && time.Since(lastLine) >= w.cfg.flushInterval {
				if !emit(open) {
					return
				}
				open = nil
			}
		}
	}
}

// sendError delivers err unless ctx is done first.
func sendError(ctx context.Context, errCh chan<- error, err error) {
	select {
	case errCh <- err:
	case <-ctx.Done():
	}
}
