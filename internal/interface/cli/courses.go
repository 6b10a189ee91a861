package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lmerten/studiplan/internal/core/models"
	"github.com/lmerten/studiplan/internal/core/view"
)

var (
	coursesSearch    string
	coursesGroup     string
	coursesSemester  string
	coursesFavorites bool
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List catalog courses",
	Long: `List the course catalog grouped by requirement group.

Filters combine: a course is shown only if it matches every active filter.
The search matches case-insensitively against title, description, module
code and group.

Examples:
  studiplan courses
  studiplan courses --search optimierung
  studiplan courses --group 4. --semester SoSe
  studiplan courses --favorites`,
	RunE: runCourses,
}

func init() {
	rootCmd.AddCommand(coursesCmd)
	coursesCmd.Flags().StringVar(&coursesSearch, "search", "", "Search text")
	coursesCmd.Flags().StringVar(&coursesGroup, "group", "", "Filter by requirement group")
	coursesCmd.Flags().StringVar(&coursesSemester, "semester", "", "Filter by offering semester (SoSe or WiSe)")
	coursesCmd.Flags().BoolVar(&coursesFavorites, "favorites", false, "Show favorites only")
}

func runCourses(cmd *cobra.Command, args []string) error {
	sess, store, _, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	filter := view.Filter{
		Search:        coursesSearch,
		Group:         coursesGroup,
		Semester:      models.ParseAvailability(coursesSemester),
		FavoritesOnly: coursesFavorites,
	}

	filtered := filter.Apply(sess.Catalog.Courses)
	if len(filtered) == 0 {
		if sess.Catalog.Len() == 0 {
			fmt.Println("Catalog is empty. Put a courses.json into the data directory.")
		} else {
			fmt.Println("No courses match the filters.")
		}
		return nil
	}

	for _, group := range view.GroupCourses(filtered) {
		fmt.Printf("%s\n", group.Name)
		for _, c := range group.Courses {
			marker := " "
			if c.Favorite {
				marker = "*"
			}
			fmt.Printf("  %s %-12s %-50s %3d LP", marker, c.ModuleCode, c.Title, c.Credits)
			if avail := c.Availability.String(); avail != "" {
				fmt.Printf("  [%s]", avail)
			}
			if c.Assigned() {
				fmt.Printf("  -> %s", sess.Planner.Label(c.Slot))
			}
			fmt.Println()
		}
		fmt.Println()
	}

	fmt.Printf("%d course(s)\n", len(filtered))
	return nil
}
