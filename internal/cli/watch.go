// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

// =============================================================================
// FSNOTIFY WATCHER
// =============================================================================

// fileWatcher reports changes to a single file.
//
// The parent directory is watched rather than the file itself so that
// editors which save by writing a temp file and renaming it over the
// original keep triggering events.
type fileWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	limiter *rate.Limiter
}

// newFileWatcher watches path and allows at most one change callback per
// interval.
func newFileWatcher(path string, interval time.Duration) (*fileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, err
	}

	return &fileWatcher{
		path:    abs,
		watcher: watcher,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}, nil
}

// Run calls onChange after writes to the watched file until ctx is done.
// Bursts of events are coalesced into one call.
func (fw *fileWatcher) Run(ctx context.Context, onChange func()) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if !fw.relevant(event) {
				continue
			}
			if err := fw.limiter.Wait(ctx); err != nil {
				return nil
			}
			fw.drain()
			onChange()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("WATCH_ERROR | path=%s error=%v", fw.path, err)
		}
	}
}

func (fw *fileWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != fw.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// drain discards events queued while waiting on the limiter.
func (fw *fileWatcher) drain() {
	for {
		select {
		case <-fw.watcher.Events:
		default:
			return
		}
	}
}

// Close stops watching.
func (fw *fileWatcher) Close() error {
	return fw.watcher.Close()
}
