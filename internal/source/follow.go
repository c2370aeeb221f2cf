package source

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/multierr"
)

// Follow keeps reading a file source past EOF, like tail -f. When the inner
// source runs dry it waits for the file to be written and reads again. The
// writer is expected to append whole lines.
type Follow struct {
	inner   Source
	watcher *fsnotify.Watcher
	path    string
}

func NewFollow(inner Source, path string) (*Follow, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(path); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("source: watch %s: %w", path, err)
	}
	return &Follow{inner: inner, watcher: w, path: path}, nil
}

func (f *Follow) Read(ctx context.Context) (Buffers, error) {
	for {
		b, err := f.inner.Read(ctx)
		if !errors.Is(err, io.EOF) {
			return b, err
		}
		if err := f.wait(ctx); err != nil {
			return Buffers{}, err
		}
	}
}

// wait blocks until the file grows. A removed or renamed file ends the stream.
func (f *Follow) wait(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-f.watcher.Events:
			if !ok {
				return io.EOF
			}
			switch {
			case ev.Has(fsnotify.Write):
				return nil
			case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
				return io.EOF
			}
		case err, ok := <-f.watcher.Errors:
			if !ok {
				return io.EOF
			}
			return fmt.Errorf("source: watch %s: %w", f.path, err)
		}
	}
}

func (f *Follow) Close() error {
	return multierr.Append(f.watcher.Close(), f.inner.Close())
}
