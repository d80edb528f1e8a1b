package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"sablec/report"
)

// Watch compiles the root source file and then recompiles it whenever it
// changes on disk, until the process is interrupted.
func (c *Compiler) Watch() int {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		report.ReportFatal("unable to start file watcher: %s", err.Error())
	}
	defer watcher.Close()

	// Editors commonly replace the file instead of writing it in place, so
	// the containing directory is watched and events are filtered by path.
	if err := watcher.Add(filepath.Dir(c.srcPath)); err != nil {
		report.ReportFatal("unable to watch `%s`: %s", c.srcPath, err.Error())
	}

	c.Compile()
	fmt.Printf("watching %s for changes\n", c.reprPath)

	// Saves often arrive as several events in quick succession; the timer
	// coalesces them into one rebuild.
	var rebuild <-chan time.Time

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return 0
			}

			if event.Name != c.srcPath {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				rebuild = time.After(50 * time.Millisecond)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return 0
			}

			fmt.Printf("watch error: %s\n", err.Error())
		case <-rebuild:
			rebuild = nil
			c.Compile()
		}
	}
}
