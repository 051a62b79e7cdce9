package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// WhoamiOutput represents the JSON/YAML output for whoami command.
type WhoamiOutput struct {
	Email            string   `json:"email" yaml:"email"`
	UserID           string   `json:"userId,omitempty" yaml:"userId,omitempty"`
	OrganizationID   string   `json:"organizationId,omitempty" yaml:"organizationId,omitempty"`
	OrganizationName string   `json:"organizationName,omitempty" yaml:"organizationName,omitempty"`
	Roles            []string `json:"roles,omitempty" yaml:"roles,omitempty"`
	Permissions      []string `json:"permissions,omitempty" yaml:"permissions,omitempty"`
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current authenticated identity",
	Long: `Display the authenticated identity, its current organization context,
and the roles and permissions it holds there.

Returns a non-zero exit code if not authenticated.

Examples:
  consolectl whoami
  consolectl whoami -o json`,
	RunE: runWhoami,
}

func runWhoami(cmd *cobra.Command, args []string) error {
	if err := requireSession(); err != nil {
		return err
	}

	snapshot := ctrl.Snapshot()
	output := WhoamiOutput{Email: snapshot.Email}
	if profile := snapshot.Profile; profile != nil {
		output.UserID = profile.UserID
		output.OrganizationID = profile.OrganizationID
		output.OrganizationName = profile.OrganizationName
		for _, role := range profile.Roles {
			output.Roles = append(output.Roles, role.Name)
		}
		output.Permissions = profile.PermissionNames()
	}

	if outputFormat != "table" {
		return formatOutput(output)
	}

	fmt.Printf("Email:        %s\n", output.Email)
	if output.OrganizationID == "" {
		fmt.Println("Organization: (none)")
		return nil
	}
	fmt.Printf("Organization: %s (%s)\n", output.OrganizationName, output.OrganizationID)
	fmt.Printf("Roles:        %s\n", strings.Join(output.Roles, ", "))
	fmt.Printf("Permissions:  %s\n", strings.Join(output.Permissions, ", "))
	return nil
}
