package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/abhisek/studynav/internal/upload"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <paths...>",
	Short: "Run course materials through the intake simulation",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		q := upload.NewQueue()
		for _, path := range args {
			f, err := upload.Inspect(path)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Skipping:", err)
				continue
			}
			f = q.Add(f)
			if f.Status == upload.StatusError {
				fmt.Printf("%s %s  rejected: %s\n", f.Kind().Icon(), f.Name, f.Err)
				continue
			}
			fmt.Printf("%s %s  %s  %s\n", f.Kind().Icon(), f.Name, upload.FormatSize(f.Size), f.Type)
		}

		last := make(map[string]upload.File)
		err := upload.Simulate(ctx, q, cfg.Upload.Tick, func(files []upload.File) {
			for _, f := range files {
				prev, seen := last[f.ID]
				last[f.ID] = f
				if seen && prev.Status == f.Status && prev.Progress == f.Progress {
					continue
				}
				printProgress(f)
			}
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}

		counts := q.Counts()
		fmt.Printf("\n%d complete, %d rejected\n", counts[upload.StatusComplete], counts[upload.StatusError])
		logger.WithField("files", q.Len()).Info("upload simulation finished")
		return nil
	},
}

func printProgress(f upload.File) {
	switch f.Status {
	case upload.StatusUploading:
		fmt.Printf("  %-32s uploading %3d%%\n", truncate(f.Name, 32), f.Progress)
	case upload.StatusProcessing:
		fmt.Printf("  %-32s processing\n", truncate(f.Name, 32))
	case upload.StatusComplete:
		fmt.Printf("  %-32s ready\n", truncate(f.Name, 32))
	}
}
