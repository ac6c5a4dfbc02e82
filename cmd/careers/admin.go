package main

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/jonathan/careers-portal/internal/config"
	"github.com/jonathan/careers-portal/internal/db"
	"github.com/jonathan/careers-portal/internal/observability"
)

func newAdminCmd(configPath *string) *cobra.Command {
	admin := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts for the local identity provider",
	}
	admin.AddCommand(newAdminCreateCmd(configPath))
	return admin
}

func newAdminCreateCmd(configPath *string) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an admin, or reset the password of an existing one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			email = strings.TrimSpace(email)
			passwords, err := config.NewPasswordConfig()
			if err != nil {
				return fmt.Errorf("failed to create password config: %w", err)
			}
			if err := validateAdminInput(passwords, email, password); err != nil {
				return err
			}

			cfg, logger, err := loadRuntime(*configPath)
			if err != nil {
				return err
			}
			if err := requireDatabase(cfg); err != nil {
				return err
			}

			hash, err := passwords.HashPassword(password)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			database, err := db.Connect(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer database.Close()

			user, err := database.CreateAdminUser(ctx, email, hash)
			if err != nil {
				return err
			}

			logger.WithField("user_id", user.ID).Info("admin user saved")
			observability.NewPrinter(cmd.OutOrStdout()).PrintAdminUser(user)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Admin email address")
	cmd.Flags().StringVar(&password, "password", "", "Admin password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func validateAdminInput(passwords *config.PasswordConfig, email, password string) error {
	v := validator.New()
	if err := v.Var(email, "required,email"); err != nil {
		return fmt.Errorf("invalid --email %q", email)
	}
	if err := passwords.CheckPolicy(password); err != nil {
		return fmt.Errorf("invalid --password: %w", err)
	}
	return nil
}
