package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/tracker/internal/tracker/app"
	"github.com/aussiebroadwan/tracker/internal/tracker/service"
	"github.com/aussiebroadwan/tracker/pkg/cryptox"
	"github.com/aussiebroadwan/tracker/pkg/slogx"
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap-admin",
	Short: "Create the first admin user",
	Long: `Creates an admin account when the database has no users yet. Without
--password a random password is generated and printed once.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")

		cfg := app.LoadConfig()
		ctx := slogx.WithContext(cmd.Context(), app.NewLogger(cfg))

		db, err := app.OpenStore(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		hasher, err := app.LoadHasher(cfg)
		if err != nil {
			return err
		}

		generated := password == ""
		if generated {
			if password, err = cryptox.GeneratePassword(); err != nil {
				return err
			}
		}

		users := &service.UserService{Store: db, Hasher: hasher}
		u, err := users.BootstrapAdmin(ctx, username, password)
		if errors.Is(err, service.ErrAlreadyBootstrapped) {
			slogx.FromContext(ctx).Info("users already exist, nothing to do")
			return nil
		}
		if err != nil {
			return err
		}

		slogx.FromContext(ctx).Info("admin created", slog.String("user_id", u.ID))
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "admin user %q created\n", u.Username)
		if generated {
			fmt.Fprintf(out, "password: %s\n", password)
		}
		return nil
	},
}

func init() {
	bootstrapCmd.Flags().String("username", "admin", "admin username")
	bootstrapCmd.Flags().String("password", "", "admin password (generated when empty)")
	rootCmd.AddCommand(bootstrapCmd)
}
