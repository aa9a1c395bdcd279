package main

import (
	"fmt"
	"strings"

	"github.com/intraportal/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the default menus and demo content into an empty portal",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, gdb, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		result, err := service.NewSeedService(gdb).Seed(service.SeedOptions{
			AdminEmail:    cfg.AdminEmail,
			AdminPassword: cfg.AdminPassword,
		})
		if err != nil {
			return err
		}
		logger.Info(result.Message,
			zap.Bool("menus_seeded", result.MenusSeeded),
			zap.Bool("data_seeded", result.DataSeeded),
		)
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var userFlags struct {
	email    string
	name     string
	password string
	role     string
}

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a portal account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, logger, gdb, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		name := strings.TrimSpace(userFlags.name)
		if name == "" {
			name, _, _ = strings.Cut(userFlags.email, "@")
		}
		user, err := service.NewUserService(gdb).Create(service.UserInput{
			Email:    userFlags.email,
			Name:     name,
			Password: userFlags.password,
			Role:     userFlags.role,
		})
		if err != nil {
			return err
		}
		logger.Info("user created", zap.Uint("id", user.ID), zap.String("email", user.Email), zap.String("role", user.Role))
		fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", user.Email, user.Role)
		return nil
	},
}

func init() {
	flags := createUserCmd.Flags()
	flags.StringVar(&userFlags.email, "email", "", "login email")
	flags.StringVar(&userFlags.name, "name", "", "display name")
	flags.StringVar(&userFlags.password, "password", "", "initial password")
	flags.StringVar(&userFlags.role, "role", "editor", "admin or editor")
	_ = createUserCmd.MarkFlagRequired("email")
	_ = createUserCmd.MarkFlagRequired("password")
}
