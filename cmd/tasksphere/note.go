package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aturzone/tasksphere/internal/client"
	"github.com/spf13/cobra"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes",
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, _ := cmd.Flags().GetString("project")
		search, _ := cmd.Flags().GetString("search")
		limit, _ := cmd.Flags().GetInt("limit")

		resp, err := api.ListNotes(context.Background(), &client.ListNotesRequest{
			ProjectID: projectID,
			Search:    search,
			Limit:     limit,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(resp.Notes)
		} else {
			printNoteListTable(resp.Notes)
		}
		return nil
	},
}

var noteCreateCmd = &cobra.Command{
	Use:   "create <title> [content...]",
	Short: "Create a new note",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, _ := cmd.Flags().GetString("project")

		note, err := api.CreateNote(context.Background(), &client.CreateNoteRequest{
			Title:     args[0],
			Content:   strings.Join(args[1:], " "),
			ProjectID: projectID,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(note)
		} else {
			fmt.Printf("Created %s\n", note.ID)
		}
		return nil
	},
}

var noteDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more notes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, id := range args {
			if err := api.DeleteNote(context.Background(), id); err != nil {
				fmt.Fprintf(os.Stderr, "Error deleting %s: %v\n", id, err)
				os.Exit(1)
			}
			fmt.Printf("Deleted %s\n", id)
		}
		return nil
	},
}

func init() {
	noteListCmd.Flags().String("project", "", "filter by project id")
	noteListCmd.Flags().String("search", "", "substring match on title/content")
	noteListCmd.Flags().Int("limit", 0, "maximum number of notes to return")

	noteCreateCmd.Flags().String("project", "", "owning project id")

	noteCmd.AddCommand(noteListCmd)
	noteCmd.AddCommand(noteCreateCmd)
	noteCmd.AddCommand(noteDeleteCmd)
}
