package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show graduation requirement progress",
	Long: `Show credit totals per semester and per graduation requirement
category for the current save slot.

Courses whose group maps to no requirement category are placed but count
toward nothing; they are listed separately.`,
	RunE: runProgress,
}

func init() {
	rootCmd.AddCommand(progressCmd)
}

func runProgress(cmd *cobra.Command, args []string) error {
	sess, store, _, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	fmt.Printf("Save slot: %s\n\n", sess.SlotName)

	for idx := 0; idx < sess.Planner.NumSlots(); idx++ {
		total := sess.Planner.TotalCredits(idx)
		fmt.Printf("%-14s %2d/%d LP", sess.Planner.Label(idx), total, sess.Planner.MaxCredits())
		if sess.Planner.OverLimit(idx) {
			fmt.Print("  (over limit)")
		}
		fmt.Println()
		for _, c := range sess.Planner.Courses(idx) {
			fmt.Printf("    %-50s %3d LP\n", c.Title, c.Credits)
		}
	}
	fmt.Println()

	r := sess.Report()
	fmt.Printf("Kernbereich %s %d/%d LP\n", bar(r.Kernbereich.Current, r.Kernbereich.Required), r.Kernbereich.Current, r.Kernbereich.Required)
	for _, b := range r.Buckets {
		indent := ""
		if b.Kern {
			indent = "  "
		}
		mark := ""
		if b.Satisfied() {
			mark = " ok"
		}
		fmt.Printf("%s%-28s %s %d/%d LP%s\n", indent, b.Name, bar(b.Current, b.Required), b.Current, b.Required, mark)
	}
	fmt.Printf("\nTotal %s %d/%d LP\n", bar(r.Total, r.Target), r.Total, r.Target)

	return nil
}

// bar renders a fixed-width text progress bar
func bar(current, required int) string {
	const width = 20
	filled := width
	if required > 0 && current < required {
		filled = current * width / required
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}
