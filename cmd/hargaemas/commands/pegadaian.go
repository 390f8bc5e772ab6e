package commands

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(pegadaianCmd)
}

var pegadaianCmd = &cobra.Command{
	Use:   "pegadaian",
	Short: "Scrape harga emas from the pawnshop page and append it to the dataset.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		return a.RunPegadaian(cmd.Context())
	},
}
