package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the bearer token",
	Long: `Log in against the project API and store the returned token, username
and role in the local session database.

The password is read from the first line of stdin when --password is omitted.`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored credentials",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := openClient(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		if err := c.sessions.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (default: read from stdin)")
	_ = loginCmd.MarkFlagRequired("email")
}

func runLogin(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	password := loginPassword
	if password == "" {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	c, err := openClient(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	creds, err := c.api.Login(ctx, strings.TrimSpace(loginEmail), password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if err := c.sessions.Login(ctx, creds); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", creds.Username, creds.Role)
	return nil
}
