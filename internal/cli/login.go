package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bialog/bialog/internal/api"
	"github.com/bialog/bialog/internal/config"
	"github.com/bialog/bialog/internal/session"
	"github.com/bialog/bialog/internal/tui"
)

// NewLoginCmd creates the login command. Without flags on a terminal it opens
// the login form.
func NewLoginCmd() *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the access token",
		Example: `  # Sign in with a username and password
  bialog login --username hanako --password secret

  # Store a token issued elsewhere
  bialog login --token eyJhbGciOi...`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, _ := cmd.Flags().GetString(flagToken)
			if token != "" && (username != "" || password != "") {
				return errors.New("--token cannot be combined with --username or --password")
			}
			if token == "" && username == "" && password == "" && isInteractive(cmd) {
				return runApp(cmd, tui.AppOptions{Start: tui.TargetLogin})
			}
			return login(cmd, username, password, token)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "user name")
	cmd.Flags().StringVar(&password, "password", "", "password")
	return cmd
}

func login(cmd *cobra.Command, username, password, token string) error {
	cfg := config.GetGlobalConfig()
	store, err := fileCredentials(cfg)
	if err != nil {
		return err
	}

	token = strings.TrimSpace(token)
	if token == "" {
		d, depsErr := newDeps(cmd)
		if depsErr != nil {
			return depsErr
		}
		issued, loginErr := d.client.Login(cmd.Context(), strings.TrimSpace(username), password)
		if loginErr != nil {
			if errors.Is(loginErr, api.ErrUnauthorized) {
				return fmt.Errorf("login failed, check user name and password: %w", loginErr)
			}
			return fmt.Errorf("login failed: %w", loginErr)
		}
		token = issued.AccessToken
	}

	subject, err := session.Subject(token)
	if err != nil {
		return fmt.Errorf("invalid access token: %w", err)
	}
	if storeErr := store.Store(token); storeErr != nil {
		return fmt.Errorf("saving credentials: %w", storeErr)
	}

	logger.Info().Ctx(cmd.Context()).Str("subject", subject).Msg("credentials stored")
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in. Credentials saved to %s\n", store.FilePath())
	return nil
}

// NewLogoutCmd creates the logout command.
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored access token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := fileCredentials(config.GetGlobalConfig())
			if err != nil {
				return err
			}
			if _, logoutErr := session.Logout(store); logoutErr != nil {
				return logoutErr
			}
			logger.Info().Ctx(cmd.Context()).Msg("credentials removed")
			fmt.Fprintln(cmd.OutOrStdout(), tui.WelcomeMessage(session.LoggedOut{}))
			return nil
		},
	}
}
