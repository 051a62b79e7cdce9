package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the console API",
	Long: `Authenticate against the console API and persist the session.

On success the session is scoped to the first organization of your account;
use 'consolectl org switch' to change it.

Examples:
  consolectl login --email admin@example.com
  consolectl login --email admin@example.com --password secret`,
	RunE: runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	displayAppname(cfg.GetAppName())

	reader := bufio.NewReader(cmd.InOrStdin())
	email := loginEmail
	if email == "" {
		fmt.Print("Email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		email = strings.TrimSpace(line)
	}
	password := loginPassword
	if password == "" {
		fmt.Print("Password: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		password = strings.TrimSpace(line)
	}

	if err := ctrl.Login(cmd.Context(), email, password); err != nil {
		return err
	}

	snapshot := ctrl.Snapshot()
	if snapshot.Profile != nil {
		fmt.Printf("Logged in as %s (organization: %s)\n", snapshot.Email, snapshot.Profile.OrganizationName)
	} else {
		fmt.Printf("Logged in as %s (no organizations)\n", snapshot.Email)
	}
	return nil
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the current session",
	Long:  `Revoke the session token (best-effort) and clear all persisted session state.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl.Logout(cmd.Context())
		fmt.Println("Logged out.")
		return nil
	},
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
