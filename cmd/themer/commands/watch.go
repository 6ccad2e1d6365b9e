package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/abdul-hamid-achik/themer/pkg/state"
	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-install the installed theme on every change",
	Long: `Watch the theme repository and re-install the installed theme when a
value, template or hook changes.

Example:
  themer watch
  themer watch --debounce 500ms`,
	Args: cobra.NoArgs,
	Run:  runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 200*time.Millisecond, "Delay before re-installing after a change")
	rootCmd.AddCommand(watchCmd)
}

// watchDirs returns dir and its subdirectories, skipping hidden ones
// (including the .cache state directory).
func watchDirs(dir string) []string {
	var dirs []string
	_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	return dirs
}

// relevantEvent reports whether event should trigger a re-install.
func relevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	base := filepath.Base(event.Name)
	// Editor swap and backup files
	return !strings.HasPrefix(base, ".") && !strings.HasSuffix(base, "~")
}

func runWatch(cmd *cobra.Command, args []string) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	dir, err := cfg.RequireDir()
	if err != nil {
		exitWithError(err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		exitWithError(fmt.Errorf("failed to create file watcher: %w", err))
	}
	defer func() { _ = watcher.Close() }()

	for _, d := range watchDirs(dir) {
		if err := watcher.Add(d); err != nil {
			logger.Warnf("cannot watch %s: %v", d, err)
		}
	}

	fmt.Printf("  %s Watching %s for changes...\n", green("✓"), cyan(dir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Re-installs run on this goroutine only, one at a time
	reinstall := make(chan struct{}, 1)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-reinstall:
			}

			timestamp := time.Now().Format("15:04:05")
			m, err := openManager()
			if err != nil {
				fmt.Printf("  [%s] %s %v\n", timestamp, red("✗"), err)
				continue
			}

			fmt.Printf("  [%s] %s Re-installing...\n", timestamp, yellow("→"))
			name, _, err := m.Update(ctx)
			switch {
			case errors.Is(err, state.ErrNotInstalled):
				fmt.Printf("  [%s] %s No theme installed\n", timestamp, yellow("!"))
			case err != nil:
				fmt.Printf("  [%s] %s %v\n", timestamp, red("✗"), err)
			default:
				fmt.Printf("  [%s] %s Installed %s\n", timestamp, green("✓"), cyan(name))
			}
		}
	}()

	var debounceTimer *time.Timer

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !relevantEvent(event) {
				continue
			}

			// New directories are watched too
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					for _, d := range watchDirs(event.Name) {
						_ = watcher.Add(d)
					}
				}
			}

			logger.Debugf("changed %s", event.Name)
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(watchDebounce, func() {
				select {
				case reinstall <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			fmt.Printf("  %s Watcher error: %v\n", yellow("Warning:"), err)

		case <-signals:
			fmt.Println("\n  Shutting down...")
			return
		}
	}
}
