package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rolesCmd.AddCommand(rolesListCmd)
	rootCmd.AddCommand(rolesCmd)
}

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "View the current organization's roles",
}

var rolesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List roles and their permissions",
	Long: `List the roles of the organization the session is scoped to, with the
permissions each one bundles.

Requires the roles:view permission.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requirePermission("roles:view"); err != nil {
			return err
		}

		roles, err := api.FetchRoles(cmd.Context(), currentOrgID())
		if err != nil {
			return err
		}

		if outputFormat != "table" {
			return formatOutput(roles)
		}

		if len(roles) == 0 {
			fmt.Println("No roles.")
			return nil
		}
		for _, role := range roles {
			names := make([]string, 0, len(role.Permissions))
			for _, perm := range role.Permissions {
				names = append(names, perm.Name)
			}
			fmt.Printf("%-24s %-16s %s\n", role.ID, role.Name, strings.Join(names, ", "))
		}
		return nil
	},
}
