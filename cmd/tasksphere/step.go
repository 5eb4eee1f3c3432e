package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aturzone/tasksphere/internal/client"
	"github.com/spf13/cobra"
)

var stepCmd = &cobra.Command{
	Use:   "step",
	Short: "Manage weighted project steps",
}

var stepAddCmd = &cobra.Command{
	Use:   "add <project-id> <title>",
	Short: "Add a weighted step to a project",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		weight, _ := cmd.Flags().GetInt("weight")
		description, _ := cmd.Flags().GetString("description")

		step, err := api.CreateStep(context.Background(), args[0], &client.CreateStepRequest{
			Title:            args[1],
			Description:      description,
			WeightPercentage: weight,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(step)
		} else {
			fmt.Printf("Added %s (%d%%)\n", step.ID, step.WeightPercentage)
		}
		return nil
	},
}

var stepListCmd = &cobra.Command{
	Use:   "list <project-id>",
	Short: "List a project's steps",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, err := api.ListSteps(context.Background(), args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(steps)
		} else {
			printStepListTable(steps)
		}
		return nil
	},
}

var stepDoneCmd = &cobra.Command{
	Use:   "done <id>...",
	Short: "Mark one or more steps as done",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		status := "Done"
		for _, id := range args {
			step, err := api.UpdateStep(context.Background(), id, &client.UpdateStepRequest{
				Status: &status,
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error updating %s: %v\n", id, err)
				os.Exit(1)
			}
			fmt.Printf("Done %s (%d%%)\n", step.ID, step.WeightPercentage)
		}
		return nil
	},
}

var stepDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more steps",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, id := range args {
			if err := api.DeleteStep(context.Background(), id); err != nil {
				fmt.Fprintf(os.Stderr, "Error deleting %s: %v\n", id, err)
				os.Exit(1)
			}
			fmt.Printf("Deleted %s\n", id)
		}
		return nil
	},
}

func init() {
	stepAddCmd.Flags().IntP("weight", "w", 0, "weight percentage (1-100)")
	stepAddCmd.Flags().StringP("description", "d", "", "step description")
	_ = stepAddCmd.MarkFlagRequired("weight")

	stepCmd.AddCommand(stepAddCmd)
	stepCmd.AddCommand(stepListCmd)
	stepCmd.AddCommand(stepDoneCmd)
	stepCmd.AddCommand(stepDeleteCmd)
}
