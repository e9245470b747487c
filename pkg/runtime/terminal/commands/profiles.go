package commands

import (
	"fmt"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/config"
	"github.com/spf13/cobra"
)

func NewProfilesCmd(session *Session) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the analysis endpoints declared in the profiles file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := config.NewRegistry(session.ProfilesPath)
			if err != nil {
				return fmt.Errorf("failed to load profiles: %w", err)
			}
			profiles, err := registry.GetProfiles(cmd.Context())
			if err != nil {
				return err
			}

			section := domain.ReportSection{
				Title:   session.ProfilesPath,
				Headers: []string{"Name", "Base URL", "Timeout"},
				Empty:   "No profiles defined.",
			}
			for _, p := range profiles {
				timeout := "default"
				if p.Timeout > 0 {
					timeout = p.Timeout.String()
				}
				section.Rows = append(section.Rows, []interface{}{p.Name, p.BaseURL, timeout})
			}
			return session.Reporter.Handle(&domain.Report{
				Title:    "Endpoint Profiles",
				Sections: []domain.ReportSection{section},
			})
		},
	}
}
