package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"hargaemas/internal/gold"
)

func init() {
	rootCmd.AddCommand(ubsCmd)
}

var ubsCmd = &cobra.Command{
	Use:   "ubs [start] [end]",
	Short: "Fetch harga buyback from the UBS chart feed and append it to the dataset.",
	Long: `Fetch harga buyback from the UBS chart feed and append it to the dataset.

With no arguments the current date in the configured timezone is
recorded. With one date only that date is recorded, skipped if the feed
has not published it yet. With two dates every published entry between
them, inclusive, is recorded.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		switch len(args) {
		case 0:
			return a.RunUBSToday(cmd.Context())
		case 1:
			target, err := parseDate(args[0])
			if err != nil {
				return err
			}
			return a.RunUBSDate(cmd.Context(), target)
		default:
			start, err := parseDate(args[0])
			if err != nil {
				return err
			}
			end, err := parseDate(args[1])
			if err != nil {
				return err
			}
			if end.Before(start) {
				return fmt.Errorf("end date %s is before start date %s", args[1], args[0])
			}
			return a.RunUBSRange(cmd.Context(), start, end)
		}
	},
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(gold.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}
