package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lmerten/studiplan/internal/interface/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive planner",
	Long: `Launch the interactive terminal planner.

Browse the catalog on the left, the semester plan on the right; number keys
place the selected course, u removes it, f toggles the favorite flag, p
shows graduation progress. The plan is written back to the save slot on
save and on quit.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	sess, store, cfg, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	model := tui.New(sess, store, cfg)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
