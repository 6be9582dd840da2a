package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"clscraper/pkg/auth"
)

// authCmd groups API token management
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the CourtListener API token",
	Long: `Manage the CourtListener API token used to authenticate requests.

The token is stored in the system keychain when one is available. On
headless machines set CLSCRAPER_API_TOKEN instead.`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store the API token",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Print("CourtListener API token: ")
		tokenBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}

		token := strings.TrimSpace(string(tokenBytes))
		if token == "" {
			return fmt.Errorf("token cannot be empty")
		}

		mgr, err := auth.NewManager()
		if err != nil {
			return fmt.Errorf("failed to initialize credential store: %w", err)
		}
		if err := mgr.Store(token); err != nil {
			return fmt.Errorf("failed to store token: %w", err)
		}

		fmt.Println("Token stored.")
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether an API token is configured",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := auth.NewManager()
		if err != nil {
			return fmt.Errorf("failed to initialize credential store: %w", err)
		}

		if mgr.Exists() {
			fmt.Println("An API token is configured.")
		} else {
			fmt.Println("No API token found. Run 'clscraper auth login' or set CLSCRAPER_API_TOKEN.")
		}
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored API token",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := auth.NewManager()
		if err != nil {
			return fmt.Errorf("failed to initialize credential store: %w", err)
		}
		if err := mgr.Delete(); err != nil {
			return fmt.Errorf("failed to remove token: %w", err)
		}

		fmt.Println("Token removed.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLogoutCmd)
}
