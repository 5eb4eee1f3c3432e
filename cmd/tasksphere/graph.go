package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Show the knowledge graph",
	RunE: func(cmd *cobra.Command, args []string) error {
		view, _ := cmd.Flags().GetString("view")

		g, err := api.GetGraph(context.Background(), view)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(g)
		} else {
			printGraphSummary(g)
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show entity counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := api.GetStats(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(stats)
			return nil
		}
		fmt.Printf("Projects: %d\n", stats.Projects)
		fmt.Printf("Tasks:    %d", stats.Tasks)
		if len(stats.TasksByStatus) > 0 {
			fmt.Printf("  (todo=%d inprogress=%d done=%d)",
				stats.TasksByStatus["Todo"],
				stats.TasksByStatus["InProgress"],
				stats.TasksByStatus["Done"])
		}
		fmt.Println()
		fmt.Printf("Notes:    %d\n", stats.Notes)
		fmt.Printf("Steps:    %d\n", stats.Steps)
		return nil
	},
}

func init() {
	graphCmd.Flags().String("view", "projects", `graph view ("projects" or "steps")`)
}
