package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmlarkin/tridentine-calendar/internal/calendar"
	"github.com/jmlarkin/tridentine-calendar/internal/ics"
)

func newGenerateCmd() *cobra.Command {
	var (
		output    string
		html      bool
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "generate [flags] YEAR [YEAR...]",
		Short: "Generate an iCalendar file for one or more liturgical years",
		Long: `Generate computes the named liturgical years and writes them to an
iCalendar (.ics) file. A liturgical year is named for the civil year it
mostly overlaps: year 2025 runs from the First Sunday of Advent in 2024
through the Saturday before the First Sunday of Advent in 2025.

If the output file already exists, the new years are appended to it and
years it already contains are skipped. Pass --overwrite to replace the
file instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			years := make([]int, 0, len(args))
			for _, arg := range args {
				year, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("invalid year %q", arg)
				}
				if err := calendar.ValidateYear(year); err != nil {
					return err
				}
				years = append(years, year)
			}

			reg, err := calendar.LoadRegistry()
			if err != nil {
				return err
			}
			computed, err := calendar.ComputeYears(reg, years)
			if err != nil {
				return err
			}

			if _, err := os.Stat(output); err == nil && !overwrite {
				if err := ics.ExtendFile(output, computed); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", output)
				return nil
			}

			if err := ics.WriteFile(output, computed, html, overwrite); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "tridentine_calendar.ics", "output .ics file")
	cmd.Flags().BoolVar(&html, "html", false, "include HTML links in event descriptions")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace the output file if it exists")

	return cmd
}
