package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/consolehq/go-console-client/internal/utils"
)

var (
	inviteeEmail string
	inviteeRole  string
)

func init() {
	inviteesAddCmd.Flags().StringVar(&inviteeEmail, "email", "", "Email address to invite")
	inviteesAddCmd.Flags().StringVar(&inviteeRole, "role", "", "Role id to grant on acceptance")
	_ = inviteesAddCmd.MarkFlagRequired("email")
	_ = inviteesAddCmd.MarkFlagRequired("role")

	inviteesCmd.AddCommand(inviteesListCmd)
	inviteesCmd.AddCommand(inviteesAddCmd)
	rootCmd.AddCommand(inviteesCmd)
}

var inviteesCmd = &cobra.Command{
	Use:   "invitees",
	Short: "View and create invitations for the current organization",
}

var inviteesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pending and accepted invitations",
	Long: `List the invitations of the organization the session is scoped to.

Requires the invite:view permission.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requirePermission("invite:view", "invite:create"); err != nil {
			return err
		}

		invitees, err := api.FetchInvitees(cmd.Context(), currentOrgID())
		if err != nil {
			return err
		}

		if outputFormat != "table" {
			return formatOutput(invitees)
		}

		if len(invitees) == 0 {
			fmt.Println("No invitees.")
			return nil
		}
		fmt.Printf("%-24s %-32s %-10s %s\n", "ID", "EMAIL", "STATUS", "ROLE")
		for _, invitee := range invitees {
			fmt.Printf("%-24s %-32s %-10s %s\n", invitee.ID, invitee.Email, invitee.Status, utils.First(invitee.RoleIDs))
		}
		return nil
	},
}

var inviteesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Invite a user into the current organization",
	Long: `Create an invitation for the organization the session is scoped to.

Requires the invite:create permission.

Examples:
  consolectl invitees add --email new.user@example.com --role role2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requirePermission("invite:create"); err != nil {
			return err
		}

		invitee, err := api.CreateInvitee(cmd.Context(), currentOrgID(), inviteeEmail, inviteeRole)
		if err != nil {
			return err
		}

		if outputFormat != "table" {
			return formatOutput(invitee)
		}
		fmt.Printf("Invited %s (%s)\n", invitee.Email, invitee.Status)
		return nil
	},
}
