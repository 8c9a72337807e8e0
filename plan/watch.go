package plan

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle is how long Watch waits after the last event before reporting, so
// that an editor's write-rename-chmod burst triggers one rebuild.
const settle = 150 * time.Millisecond

// Sources returns the resolved paths of the plan's table source files.
func (p *Plan) Sources() []string {
	var out []string
	seen := make(map[string]bool)
	for _, s := range p.Slides {
		if s.Source == "" {
			continue
		}
		path := s.Source
		if !filepath.IsAbs(path) && p.dir != "" {
			path = filepath.Join(p.dir, path)
		}
		if !seen[path] {
			seen[path] = true
			out = append(out, path)
		}
	}
	return out
}

// Watch calls onChange with the changed file each time one of paths is
// written, created or renamed over. It blocks until ctx is done.
func Watch(ctx context.Context, paths []string, onChange func(path string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		watched[abs] = true
		// fsnotify watches directories for file events
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	timer := time.NewTimer(settle)
	if !timer.Stop() {
		<-timer.C
	}
	pending := ""
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			abs, _ := filepath.Abs(event.Name)
			if !watched[abs] {
				continue
			}
			pending = abs
			timer.Reset(settle)
		case <-timer.C:
			if pending != "" {
				onChange(pending)
				pending = ""
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher: %w", err)
		}
	}
}
