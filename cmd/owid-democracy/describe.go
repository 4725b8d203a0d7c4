package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/invertedv/owid/mem"
)

func newDescribeCmd(opts *options) *cobra.Command {
	var skip []string

	cmd := &cobra.Command{
		Use:   "describe <csv>",
		Short: "Print summary statistics of a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, e := opts.config(cmd); e != nil {
				return e
			}

			df, e := mem.LoadFile(args[0])
			if e != nil {
				return e
			}

			if len(skip) > 0 {
				if e = df.DropColumns(skip...); e != nil {
					return fmt.Errorf("skip: %w", e)
				}
			}

			fmt.Fprint(cmd.OutOrStdout(), mem.Summary(df))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&skip, "skip", nil, "columns to leave out of the summary")

	return cmd
}
