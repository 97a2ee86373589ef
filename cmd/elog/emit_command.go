package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trickstertwo/elog"
)

func newEmitCommand(ctx *commandContext) *cobra.Command {
	var levelFlag, tagFlag, errFlag string
	var progress bool

	cmd := &cobra.Command{
		Use:   "emit [flags] MESSAGE...",
		Short: "Emit one event through the configured pipeline",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			level, ok := elog.ParseLevel(levelFlag)
			if !ok {
				return fmt.Errorf("unknown level %q", levelFlag)
			}
			if cmd.Flags().Changed("progress") {
				cfg.Pipeline.ShowProgress = progress
			}

			sink, err := buildSink(cfg, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			p, err := buildPipeline(cfg, sink)
			if err != nil {
				return err
			}
			defer p.Close()

			ev := elog.Event{
				Level:   level,
				Tag:     strings.TrimSpace(tagFlag),
				Message: strings.Join(args, " "),
			}
			if errFlag != "" {
				ev.Err = errors.New(errFlag)
			}
			p.EmitContext(cmd.Context(), ev)

			if s, ok := sink.(interface{ Sync() error }); ok {
				_ = s.Sync()
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&levelFlag, "level", "l", "info", "Event level (verbose|debug|info|warn|error|assert)")
	cmd.Flags().StringVarP(&tagFlag, "tag", "t", "", "Explicit tag; inferred from the call site when empty")
	cmd.Flags().StringVarP(&errFlag, "error", "e", "", "Attach an error with this message")
	cmd.Flags().BoolVar(&progress, "progress", false, "Override pipeline.show_progress")
	return cmd
}
