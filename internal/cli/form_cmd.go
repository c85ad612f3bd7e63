package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newFormCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "form",
		Short: "Open the interactive prediction form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForm(cmd.Context(), app)
		},
	}
}

// runForm runs the full-screen form until the user quits.
func runForm(ctx context.Context, app *App) error {
	if app.LogToTerminal {
		quiet := *app
		quiet.LogOutput = nil
		app = &quiet
	}
	p := tea.NewProgram(newAppModel(ctx, app), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
