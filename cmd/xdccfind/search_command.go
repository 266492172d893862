package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xdccfind/xdccfind/internal/config"
	"github.com/xdccfind/xdccfind/internal/finder"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var (
		resolution string
		episode    finder.EpisodeNumber
		output     string
		finders    []string
	)

	cmd := &cobra.Command{
		Use:   "search <terms...>",
		Short: "Search for packages",
		Long: `Search the configured XDCC indexes.

The episode selector accepts "latest" or an episode number. Without it
every episode is returned.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("resolution") {
				resolution = cfg.Search.Resolution
			}
			if output == "" {
				output = cfg.Search.Output
			}
			if !config.IsKnownOutput(output) {
				return fmt.Errorf("unknown output format %q", output)
			}

			log, err := ctx.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer log.Close()

			svc, err := ctx.newSearchService(log, finders)
			if err != nil {
				return err
			}

			q := finder.NewQuery(strings.Join(args, " "), resolution, episode)
			result, err := svc.Search(cmd.Context(), q)
			if err != nil {
				return err
			}

			return renderResult(cmd.OutOrStdout(), result, output)
		},
	}

	cmd.Flags().StringVarP(&resolution, "resolution", "r", "", "Resolution to search for, e.g. 1080p (default from search.resolution)")
	cmd.Flags().VarP(&episode, "episode", "e", `Episode to return: "latest" or a number (default all)`)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output format: table, plain, json, yaml (default from search.output)")
	cmd.Flags().StringSliceVar(&finders, "finder", nil, "Finder to query, repeatable (default from search.finders)")

	return cmd
}
