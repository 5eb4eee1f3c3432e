package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aturzone/tasksphere/internal/client"
	"github.com/aturzone/tasksphere/internal/ui"
	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		sort, _ := cmd.Flags().GetString("sort")
		limit, _ := cmd.Flags().GetInt("limit")

		resp, err := api.ListProjects(context.Background(), &client.ListProjectsRequest{
			Search: search,
			Sort:   sort,
			Limit:  limit,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(resp.Projects)
		} else {
			printProjectListTable(resp.Projects)
		}
		return nil
	},
}

var projectCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a new project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")
		color, _ := cmd.Flags().GetString("color")

		p, err := api.CreateProject(context.Background(), &client.CreateProjectRequest{
			Title:       args[0],
			Description: description,
			Color:       color,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(p)
		} else {
			printProjectTable(p)
		}
		return nil
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := api.GetProject(context.Background(), args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(p)
		} else {
			printProjectTable(p)
		}
		return nil
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more projects",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, id := range args {
			if err := api.DeleteProject(context.Background(), id); err != nil {
				fmt.Fprintf(os.Stderr, "Error deleting %s: %v\n", id, err)
				os.Exit(1)
			}
			fmt.Printf("Deleted %s\n", id)
		}
		return nil
	},
}

var projectProgressCmd = &cobra.Command{
	Use:   "progress <id>",
	Short: "Show a project's completion percentage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pct, err := api.GetProgress(context.Background(), args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(map[string]any{"project_id": args[0], "progress": pct})
		} else {
			fmt.Println(ui.ProgressBar(pct, 20))
		}
		return nil
	},
}

func init() {
	projectListCmd.Flags().String("search", "", "substring match on title/description")
	projectListCmd.Flags().String("sort", "", "sort expression (e.g. -created_at)")
	projectListCmd.Flags().Int("limit", 0, "maximum number of projects to return")

	projectCreateCmd.Flags().StringP("description", "d", "", "project description")
	projectCreateCmd.Flags().String("color", "", "hex color (random palette pick when empty)")

	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectDeleteCmd)
	projectCmd.AddCommand(projectProgressCmd)
}
