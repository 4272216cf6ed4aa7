package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/benela/benela_backend/models"
	"github.com/benela/benela_backend/utils"
	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	var input models.NewAdminUser
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Create an admin console user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if input.Email == "" || input.Password == "" {
				return errors.New("--email and --password are required")
			}
			if len(input.Password) < 8 {
				return errors.New("--password must be at least 8 characters")
			}
			if input.Name == "" {
				input.Name = "Benela Admin"
			}
			if err := connect(); err != nil {
				return err
			}
			admin, err := models.CreateAdminUser(context.Background(), &input)
			if errors.Is(err, utils.ErrConstraintViolation) {
				fmt.Printf("Admin %s already exists.\n", input.Email)
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Printf("Admin %s created (id=%d).\n", admin.Email, admin.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&input.Email, "email", "", "admin email")
	cmd.Flags().StringVar(&input.Name, "name", "", "display name")
	cmd.Flags().StringVar(&input.Password, "password", "", "initial password (min 8 chars)")
	return cmd
}
