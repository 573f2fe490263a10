package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bialog/bialog/internal/session"
	"github.com/bialog/bialog/internal/tui"
)

// printHome writes the greeting for the resolved session.
func printHome(cmd *cobra.Command, d *deps) error {
	state, err := session.Resolve(cmd.Context(), d.credentials, d.client.CurrentUserName)
	if err != nil {
		logger.Warn().Ctx(cmd.Context()).Err(err).Msg("session resolution failed")
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, tui.WelcomeMessage(state))
	if !session.IsLoggedIn(state) {
		fmt.Fprintln(w, "Run 'bialog login' to sign in.")
		return nil
	}
	fmt.Fprintln(w, "Commands: bialog purchaselog, bialog profile, bialog logout")
	return nil
}
