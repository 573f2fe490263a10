package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bialog/bialog/internal/tui"
)

// isInteractive reports whether the command writes to a terminal.
func isInteractive(cmd *cobra.Command) bool {
	return tui.DetectOutputMode(cmd.OutOrStdout(), false) == tui.OutputModeInteractive
}

// runApp opens the client on opts.Start. Without a terminal it prints the
// welcome line instead.
func runApp(cmd *cobra.Command, opts tui.AppOptions) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if !isInteractive(cmd) {
		return printHome(cmd, d)
	}

	opts.WindowSize = d.cfg.Pagination.WindowSize
	app := tui.NewApp(ctx, d.client, d.credentials, opts)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, runErr := p.Run(); runErr != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", runErr)
	}
	logger.Debug().Ctx(ctx).Str("last_screen", string(app.Target())).Msg("interactive session ended")
	return nil
}
