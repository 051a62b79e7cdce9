package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	orgCmd.AddCommand(orgListCmd)
	orgCmd.AddCommand(orgSwitchCmd)
	rootCmd.AddCommand(orgCmd)
}

var orgCmd = &cobra.Command{
	Use:   "org",
	Short: "Manage the session's organization context",
}

// OrgOutput represents one entry of the session's organization list.
type OrgOutput struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Current bool   `json:"current" yaml:"current"`
}

var orgListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the organizations the identity belongs to",
	Long: `List the organizations fetched at login, marking the one the session is
currently scoped to. The list is held for the session's lifetime; log in again
to refresh it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}

		snapshot := ctrl.Snapshot()
		output := make([]OrgOutput, 0, len(snapshot.Organizations))
		for _, org := range snapshot.Organizations {
			output = append(output, OrgOutput{
				ID:      org.ID,
				Name:    org.Name,
				Current: org.ID == snapshot.CurrentOrganizationID(),
			})
		}

		if outputFormat != "table" {
			return formatOutput(output)
		}

		if len(output) == 0 {
			fmt.Println("No organizations.")
			return nil
		}
		for _, org := range output {
			marker := " "
			if org.Current {
				marker = "*"
			}
			fmt.Printf("%s %-24s %s\n", marker, org.ID, org.Name)
		}
		return nil
	},
}

var orgSwitchCmd = &cobra.Command{
	Use:   "switch <organization-id>",
	Short: "Switch the session to another organization",
	Long: `Re-scope the session to another organization. The profile, roles, and
permissions are replaced with the ones the identity holds there; the token is
untouched. On failure the current context is kept.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}

		if err := ctrl.SwitchOrgContext(cmd.Context(), args[0]); err != nil {
			return err
		}

		profile := ctrl.Snapshot().Profile
		if profile == nil {
			// No profile means there was nothing to switch.
			fmt.Println("No active profile; log in first.")
			return nil
		}
		name := profile.OrganizationName
		if name == "" {
			name = "(unknown organization)"
		}
		fmt.Printf("Switched to %s (%s)\n", name, profile.OrganizationID)
		return nil
	},
}
