package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aturzone/tasksphere/internal/client"
	"github.com/spf13/cobra"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetStringSlice("status")
		priority, _ := cmd.Flags().GetStringSlice("priority")
		projectID, _ := cmd.Flags().GetString("project")
		search, _ := cmd.Flags().GetString("search")
		sort, _ := cmd.Flags().GetString("sort")
		limit, _ := cmd.Flags().GetInt("limit")

		resp, err := api.ListTasks(context.Background(), &client.ListTasksRequest{
			ProjectID: projectID,
			Status:    status,
			Priority:  priority,
			Search:    search,
			Sort:      sort,
			Limit:     limit,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(resp.Tasks)
		} else {
			printTaskListTable(resp.Tasks)
		}
		return nil
	},
}

var taskCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a new task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")
		priority, _ := cmd.Flags().GetString("priority")
		projectID, _ := cmd.Flags().GetString("project")

		task, err := api.CreateTask(context.Background(), &client.CreateTaskRequest{
			Title:       args[0],
			Description: description,
			Priority:    priority,
			ProjectID:   projectID,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(task)
		} else {
			printTaskTable(task)
		}
		return nil
	},
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <id>...",
	Short: "Mark one or more tasks as done",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		status := "Done"
		for _, id := range args {
			if _, err := api.UpdateTask(context.Background(), id, &client.UpdateTaskRequest{
				Status: &status,
			}); err != nil {
				fmt.Fprintf(os.Stderr, "Error updating %s: %v\n", id, err)
				os.Exit(1)
			}
			fmt.Printf("Done %s\n", id)
		}
		return nil
	},
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, id := range args {
			if err := api.DeleteTask(context.Background(), id); err != nil {
				fmt.Fprintf(os.Stderr, "Error deleting %s: %v\n", id, err)
				os.Exit(1)
			}
			fmt.Printf("Deleted %s\n", id)
		}
		return nil
	},
}

func init() {
	taskListCmd.Flags().StringSliceP("status", "s", nil, "filter by status (repeatable)")
	taskListCmd.Flags().StringSliceP("priority", "p", nil, "filter by priority (repeatable)")
	taskListCmd.Flags().String("project", "", "filter by project id")
	taskListCmd.Flags().String("search", "", "substring match on title/description")
	taskListCmd.Flags().String("sort", "", "sort expression")
	taskListCmd.Flags().Int("limit", 0, "maximum number of tasks to return")

	taskCreateCmd.Flags().StringP("description", "d", "", "task description")
	taskCreateCmd.Flags().StringP("priority", "p", "Medium", "priority (Low, Medium, High)")
	taskCreateCmd.Flags().String("project", "", "owning project id")

	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskCreateCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskDeleteCmd)
}
