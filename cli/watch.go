package cli

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/atlas/config"
	"github.com/teranos/atlas/errors"
	"github.com/teranos/atlas/logger"
)

// watchDebounce coalesces editor save bursts into one regeneration
const watchDebounce = 500 * time.Millisecond

// runWatch regenerates the output whenever the input file changes. A
// failing regeneration is reported and watching continues; only watcher
// setup errors are fatal.
func runWatch(cfg *config.Config) error {
	if err := generateOnce(cfg); err != nil {
		// surface the first pass immediately but keep watching; the
		// next save may fix the input
		logger.Errorf("generation failed: %v", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create fsnotify watcher")
	}
	defer watcher.Close()

	if err := watcher.Add(flagInput); err != nil {
		return errors.NewFileError(err, "watching "+flagInput)
	}
	logger.Infow("Watching for changes", "input", flagInput, "output", flagOutput)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	var debounce *time.Timer
	regenerate := make(chan struct{}, 1)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				logger.Debugw("Input changed", "file", event.Name, "op", event.Op.String())
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(watchDebounce, func() {
					select {
					case regenerate <- struct{}{}:
					default:
					}
				})
				// editors that replace the file drop the watch; re-add
				if event.Op&fsnotify.Create == fsnotify.Create {
					_ = watcher.Add(flagInput)
				}
			}

		case <-regenerate:
			if err := generateOnce(cfg); err != nil {
				logger.Errorf("generation failed: %v", err)
				continue
			}
			logger.Infow("Regenerated", "output", flagOutput)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Errorf("watch error: %v", err)

		case <-interrupt:
			logger.Infof("Stopping watcher")
			return nil
		}
	}
}
