package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	intconfig "househunters/internal/config"
	intdb "househunters/internal/db"
	"househunters/internal/domain/models"
	"househunters/internal/repositories"
	"househunters/internal/services"
	"househunters/internal/utils"
)

// readSecret returns flagVal, then the env var, then one line of stdin.
func readSecret(in io.Reader, out io.Writer, flagVal, envKey, prompt string) (string, error) {
	if flagVal != "" {
		return flagVal, nil
	}
	if v := os.Getenv(envKey); v != "" {
		return v, nil
	}
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("password is required")
	}
	return line, nil
}

func newCreateAdminCmd() *cobra.Command {
	var username, email, password, role, dsn string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account directly in the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dsn == "" {
				dsn = os.Getenv("DATABASE_DSN")
			}
			if dsn == "" {
				return errors.New("--dsn or DATABASE_DSN is required")
			}
			pw, err := readSecret(cmd.InOrStdin(), cmd.ErrOrStderr(), password, "HH_ADMIN_PASSWORD", "Password: ")
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			conn, err := intconfig.ConnectDB(ctx, dsn)
			if err != nil {
				return err
			}
			defer conn.Close()

			log := utils.NewLogger("warn")
			if err := intdb.EnsureSchema(ctx, conn, log); err != nil {
				return err
			}
			auth := services.AuthService{Admins: repositories.AdminSQLRepository{DB: conn}, Log: log}
			admin, err := auth.CreateAdmin(ctx, models.RegisterAdminInput{
				Username: username, Email: email, Password: pw, Role: role,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s %q (id %d)\n", admin.Role, admin.Username, admin.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "Login name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password (env: HH_ADMIN_PASSWORD, otherwise read from stdin)")
	cmd.Flags().StringVar(&role, "role", "admin", "Role: super_admin|admin|editor")
	cmd.Flags().StringVar(&dsn, "dsn", "", "MySQL DSN (env: DATABASE_DSN)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLoginCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in and store the access token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := readSecret(cmd.InOrStdin(), cmd.ErrOrStderr(), password, "HH_PASSWORD", "Password: ")
			if err != nil {
				return err
			}
			res, err := apiClient.Admin.Login(context.Background(), args[0], pw)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s (%s), token valid for %ds\n",
				res.Admin.Username, res.Admin.Role, res.ExpiresIn)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "Password (env: HH_PASSWORD, otherwise read from stdin)")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient.Admin.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in admin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := apiClient.Admin.Me(context.Background())
			if err != nil {
				return err
			}
			if flagFmt == "json" {
				return formatJSON(cmd.OutOrStdout(), me)
			}
			formatTable(cmd.OutOrStdout(), []string{"ID", "USERNAME", "EMAIL", "ROLE"},
				[][]string{{fmt.Sprint(me.ID), me.Username, me.Email, string(me.Role)}})
			return nil
		},
	}
}
