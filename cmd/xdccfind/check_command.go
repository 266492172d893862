package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var finders []string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that the configured finders are reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := ctx.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer log.Close()

			svc, err := ctx.newSearchService(log, finders)
			if err != nil {
				return err
			}

			statuses := svc.Check(cmd.Context())
			rows := make([][]string, 0, len(statuses))
			failed := 0
			for _, st := range statuses {
				state := "skipped"
				switch {
				case st.Checked && st.Healthy:
					state = "ok"
				case st.Checked:
					state = "failed"
					failed++
				}
				rows = append(rows, []string{st.Name, state, strconv.FormatInt(st.ElapsedMs, 10) + "ms", st.Error})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(checkColumns, rows))

			if failed > 0 {
				return fmt.Errorf("%d finder(s) failed the check", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&finders, "finder", nil, "Finder to check, repeatable (default from search.finders)")

	return cmd
}
