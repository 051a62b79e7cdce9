package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	usersCmd.AddCommand(usersListCmd)
	rootCmd.AddCommand(usersCmd)
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "View the current organization's members",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users in the current organization",
	Long: `List the members of the organization the session is scoped to.

Requires the users:view permission.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requirePermission("users:view"); err != nil {
			return err
		}

		users, err := api.FetchUsers(cmd.Context(), currentOrgID())
		if err != nil {
			return err
		}

		if outputFormat != "table" {
			return formatOutput(users)
		}

		if len(users) == 0 {
			fmt.Println("No users.")
			return nil
		}
		fmt.Printf("%-24s %-32s %s\n", "ID", "EMAIL", "ROLE")
		for _, user := range users {
			fmt.Printf("%-24s %-32s %s\n", user.ID, user.Email, user.RoleID)
		}
		return nil
	},
}
