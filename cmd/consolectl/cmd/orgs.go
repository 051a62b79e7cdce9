package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	orgsCmd.AddCommand(orgsListCmd)
	orgsCmd.AddCommand(orgsCreateCmd)
	rootCmd.AddCommand(orgsCmd)
}

// orgsCmd is the admin view over the organizations collection, distinct from
// 'org', which manages the session's own context.
var orgsCmd = &cobra.Command{
	Use:   "orgs",
	Short: "Administer organizations",
}

var orgsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List organizations",
	Long: `List the organizations visible to the current context.

Requires the org:view or org:create permission.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requirePermission("org:view", "org:create"); err != nil {
			return err
		}

		orgs, err := api.FetchOrganizations(cmd.Context(), currentOrgID())
		if err != nil {
			return err
		}

		if outputFormat != "table" {
			return formatOutput(orgs)
		}

		if len(orgs) == 0 {
			fmt.Println("No organizations.")
			return nil
		}
		fmt.Printf("%-24s %s\n", "ID", "NAME")
		for _, org := range orgs {
			fmt.Printf("%-24s %s\n", org.ID, org.Name)
		}
		return nil
	},
}

var orgsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an organization",
	Long: `Create a new organization.

Requires the org:create permission.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requirePermission("org:create"); err != nil {
			return err
		}

		org, err := api.CreateOrganization(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if outputFormat != "table" {
			return formatOutput(org)
		}
		fmt.Printf("Created organization %s (%s)\n", org.Name, org.ID)
		return nil
	},
}
