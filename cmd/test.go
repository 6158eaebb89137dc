package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/browse"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:     "test",
	Short:   "Test the connection to TMDB",
	Long:    `Test the connection to TMDB and check that the configured token and account work.`,
	PreRunE: initializeApp,
	RunE:    runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	fmt.Printf("Testing connection to TMDB at %s...\n", cfg.TMDB.BaseURL)

	genres, err := tmdbClient.ListGenres(ctx)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	fmt.Println("✓ Connection successful!")
	fmt.Printf("- Genres available: %d\n", len(genres))

	account := tmdbClient.GetAccountProfile(ctx)
	if account == nil {
		fmt.Printf("✗ Could not load account %s, check tmdb.account_id\n", cfg.TMDB.AccountID)
		return fmt.Errorf("account check failed")
	}
	fmt.Printf("✓ Account: %s\n", browse.ProfileView{Account: account}.DisplayName())
	fmt.Printf("- Favourite movies: %d\n", len(tmdbClient.ListFavorites(ctx)))

	if len(cfg.Filter.Presets) > 0 {
		fmt.Printf("\nFilter presets:\n")
		for _, name := range filters.ListFilters() {
			fmt.Printf("  • %s: %s\n", name, cfg.Filter.Presets[name].Description)
		}
	}

	return nil
}
