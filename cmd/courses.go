package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studynav/internal/catalog"
	"github.com/abhisek/studynav/internal/ui/layout"
)

var coursesCmd = &cobra.Command{
	Use:   "courses [id]",
	Short: "List courses, or print one course's roadmap",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.LoadFile(cfg.Catalog)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		if len(args) == 0 {
			printCourses(cat)
			return nil
		}
		c, ok := cat.CourseByID(args[0])
		if !ok {
			return fmt.Errorf("course %q not found", args[0])
		}
		printRoadmap(c)
		return nil
	},
}

func printCourses(cat *catalog.Catalog) {
	fmt.Printf("%-8s  %-8s  %-32s  %8s  %7s  %s\n", "ID", "Code", "Name", "Progress", "Topics", "Next deadline")
	fmt.Println(strings.Repeat("─", 96))
	for _, c := range cat.Courses {
		fmt.Printf("%-8s  %-8s  %-32s  %7d%%  %3d/%-3d  %s\n",
			c.ID, c.Code, truncate(c.Name, 32), c.Progress, c.CompletedTopics, c.TotalTopics, c.NextDeadline)
	}
}

func printRoadmap(c catalog.Course) {
	fmt.Printf("%s %s (%s)\n", c.Icon, c.Name, c.Code)
	if c.Description != "" {
		fmt.Println(c.Description)
	}
	fmt.Printf("%d%% complete · %dh/week · %s\n\n", c.Progress, c.WeeklyHours, c.Difficulty)

	for i, t := range c.Topics {
		fmt.Printf("Module %-2d  %-12s  %-36s  %3d%%  %sh\n",
			i+1, "["+t.Status.Label()+"]", truncate(t.Name, 36), t.MasteryLevel, layout.FormatHours(t.EstimatedHours))
	}
}
