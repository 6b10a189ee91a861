package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lmerten/studiplan/internal/core/plan"
)

var assignCmd = &cobra.Command{
	Use:   "assign <course> <semester-index>",
	Short: "Place a course into a semester slot",
	Long: `Place a course into a semester slot by index (0-based).

A course already placed elsewhere is moved. Courses restricted to summer or
winter semesters are rejected for slots of the other type. Exceeding the
per-semester credit threshold is allowed and only flagged in totals.

Examples:
  studiplan assign MA-305 0
  studiplan assign "Fachpraktikum" 4 --slot "Plan B"`,
	Args: cobra.ExactArgs(2),
	RunE: runAssign,
}

var unassignCmd = &cobra.Command{
	Use:   "unassign <course>",
	Short: "Remove a course from its semester slot",
	Long: `Remove a course from whichever semester slot holds it.

Removing a course that is not placed anywhere is a no-op.`,
	Args: cobra.ExactArgs(1),
	RunE: runUnassign,
}

var favoriteCmd = &cobra.Command{
	Use:   "favorite <course>",
	Short: "Toggle a course's favorite flag",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavorite,
}

func init() {
	rootCmd.AddCommand(assignCmd)
	rootCmd.AddCommand(unassignCmd)
	rootCmd.AddCommand(favoriteCmd)
}

func runAssign(cmd *cobra.Command, args []string) error {
	sess, store, _, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	course, err := findCourse(sess, args[0])
	if err != nil {
		return err
	}
	idx, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("semester index must be a number: %q", args[1])
	}

	if err := sess.Assign(course, idx); err != nil {
		if errors.Is(err, plan.ErrIncompatibleSemester) {
			return fmt.Errorf("%s is only offered in %s semesters", course.Title, course.Availability)
		}
		return err
	}

	if err := sess.Save(store); err != nil {
		return err
	}

	fmt.Printf("%s -> %s (%d/%d LP", course.Title, sess.Planner.Label(idx),
		sess.Planner.TotalCredits(idx), sess.Planner.MaxCredits())
	if sess.Planner.OverLimit(idx) {
		fmt.Print(", over limit")
	}
	fmt.Println(")")
	return nil
}

func runUnassign(cmd *cobra.Command, args []string) error {
	sess, store, _, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	course, err := findCourse(sess, args[0])
	if err != nil {
		return err
	}

	if !course.Assigned() {
		fmt.Printf("%s is not placed in any semester\n", course.Title)
		return nil
	}

	label := sess.Planner.Label(course.Slot)
	sess.Unassign(course)

	if err := sess.Save(store); err != nil {
		return err
	}

	fmt.Printf("Removed %s from %s\n", course.Title, label)
	return nil
}

func runFavorite(cmd *cobra.Command, args []string) error {
	sess, store, _, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	course, err := findCourse(sess, args[0])
	if err != nil {
		return err
	}

	fav := sess.ToggleFavorite(course)
	if err := sess.Save(store); err != nil {
		return err
	}

	if fav {
		fmt.Printf("Marked %s as favorite\n", course.Title)
	} else {
		fmt.Printf("Removed favorite mark from %s\n", course.Title)
	}
	return nil
}
