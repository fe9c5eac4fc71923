package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/quillcheck/quill/lint"
	"github.com/quillcheck/quill/logger"
	"github.com/quillcheck/quill/render"
	"github.com/quillcheck/quill/watch"
)

// WatchCmd represents the watch command
var WatchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Re-lint documents as they change on disk",
	Long: `Re-lint documents as they change on disk.

Each save goes through the incremental cache, so only the edited lines are
reprocessed. Stop with Ctrl-C.`,

	RunE: runWatchCommand,
}

func runWatchCommand(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}

	r, err := s.runner(false)
	if err != nil {
		return err
	}

	minLevel := lint.Severity(s.cfg.MinAlertLevel)
	onResult := func(result *lint.Result) {
		if err := render.Results(os.Stdout, []*lint.Result{result}, s.cfg.Output, minLevel); err != nil {
			logger.Errorw("failed to render result", "file", result.File, "error", err)
		}
	}

	watcher, err := watch.New(r, s.cfg.Watch, s.cfg.Extensions, roots, onResult, logger.Logger)
	if err != nil {
		return err
	}
	defer watcher.Close()
	watcher.Start()

	pterm.Info.Printfln("Watching %d root(s), press Ctrl-C to stop", len(roots))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	pterm.Println()
	pterm.Info.Println("Stopping watch")
	return nil
}
