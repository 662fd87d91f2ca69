package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gymstack/gymcore/app/repositories"
	"github.com/gymstack/gymcore/app/services"
	"github.com/gymstack/gymcore/pkg/database"
)

var adminCreate struct {
	gymID    uint
	name     string
	email    string
	password string
}

// Super-admins cannot be created over HTTP; this is the bootstrap path.
var adminCreateCmd = &cobra.Command{
	Use:   "admin:create",
	Short: "Create a super-admin member in an existing gym",
	RunE: func(cmd *cobra.Command, args []string) error {
		if adminCreate.gymID == 0 || adminCreate.email == "" || len(adminCreate.password) < 6 {
			return errors.New("--gym, --email and a --password of at least 6 characters are required")
		}
		if err := bootDB(); err != nil {
			return err
		}
		defer database.Close(database.DB)

		svc := services.NewAdminService(
			repositories.NewGymRepository(database.DB),
			repositories.NewMemberRepository(database.DB),
			nil,
		)
		m, err := svc.CreateSuperAdmin(cmd.Context(), services.CreateAdminInput{
			GymID:    adminCreate.gymID,
			Name:     adminCreate.name,
			Email:    adminCreate.email,
			Password: adminCreate.password,
		})
		if err != nil {
			return fmt.Errorf("admin:create: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created super-admin %s (member %d, gym %d)\n", m.Email, m.ID, m.GymID)
		return nil
	},
}

func init() {
	f := adminCreateCmd.Flags()
	f.UintVar(&adminCreate.gymID, "gym", 0, "gym id the admin belongs to")
	f.StringVar(&adminCreate.name, "name", "Administrator", "display name")
	f.StringVar(&adminCreate.email, "email", "", "login email")
	f.StringVar(&adminCreate.password, "password", "", "login password")
}
