// Package main is the entry point for the litcal command, a calendar
// generator and API server for the 1962 Roman Catholic liturgical
// calendar.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "litcal",
		Short: "1962 Roman Catholic liturgical calendar",
		Long: `litcal computes the liturgical calendar in use among Roman Catholics
before the reforms of the Second Vatican Council, still observed
wherever the 1962 Roman Missal is in use.

Calendars can be exported as iCalendar (.ics) files or served over a
JSON HTTP API.`,
		SilenceUsage: true,
	}

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newServeCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
