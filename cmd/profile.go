package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/tmdb"
)

// profileCmd represents the profile command
var profileCmd = &cobra.Command{
	Use:     "profile",
	Short:   "Show your TMDB account profile",
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		view := browser.Profile(cmd.Context())

		return render(formatter.FormatProfile(view.Account), struct {
			DisplayName string        `json:"display_name"`
			Account     *tmdb.Account `json:"account"`
		}{view.DisplayName(), view.Account})
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
}
