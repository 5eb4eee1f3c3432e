package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/aturzone/tasksphere/internal/model"
	"github.com/aturzone/tasksphere/internal/ui"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n-3] + "..."
	}
	return s
}

func printProjectTable(p *model.Project) {
	fmt.Printf("ID:          %s\n", p.ID)
	fmt.Printf("Title:       %s\n", p.Title)
	if p.Description != "" {
		fmt.Printf("Description: %s\n", p.Description)
	}
	fmt.Printf("Color:       %s\n", p.Color)
	fmt.Printf("Progress:    %s\n", ui.ProgressBar(p.Progress, 20))
	if p.StartDate != nil {
		fmt.Printf("Start:       %s\n", p.StartDate.Format("2006-01-02"))
	}
	if p.EndDate != nil {
		fmt.Printf("End:         %s\n", p.EndDate.Format("2006-01-02"))
	}
	fmt.Printf("Created At:  %s\n", p.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Updated At:  %s\n", p.UpdatedAt.Format("2006-01-02 15:04:05"))
	if len(p.Steps) > 0 {
		fmt.Println("Steps:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, s := range p.Steps {
			fmt.Fprintf(w, "  %s\t%d%%\t%s\t%s\n", s.ID, s.WeightPercentage, ui.RenderStatus(string(s.Status)), s.Title)
		}
		w.Flush()
	}
}

func printProjectListTable(projects []*model.Project) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPROGRESS\tSTEPS\tTITLE")
	for _, p := range projects {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			p.ID,
			ui.ProgressBar(p.Progress, 10),
			len(p.Steps),
			truncate(p.Title, 50),
		)
	}
	w.Flush()
	fmt.Printf("\n%d projects\n", len(projects))
}

func printTaskTable(t *model.Task) {
	fmt.Printf("ID:          %s\n", t.ID)
	fmt.Printf("Title:       %s\n", t.Title)
	if t.Description != "" {
		fmt.Printf("Description: %s\n", t.Description)
	}
	fmt.Printf("Status:      %s\n", ui.RenderStatus(string(t.Status)))
	fmt.Printf("Priority:    %s\n", t.Priority)
	if t.ProjectID != "" {
		fmt.Printf("Project:     %s\n", t.ProjectID)
	}
	if t.DueDate != nil {
		fmt.Printf("Due:         %s\n", t.DueDate.Format("2006-01-02"))
	}
	fmt.Printf("Created At:  %s\n", t.CreatedAt.Format("2006-01-02 15:04:05"))
}

func printTaskListTable(tasks []*model.Task) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tPRIORITY\tPROJECT\tTITLE")
	for _, t := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			t.ID,
			ui.RenderStatus(string(t.Status)),
			t.Priority,
			t.ProjectID,
			truncate(t.Title, 50),
		)
	}
	w.Flush()
	fmt.Printf("\n%d tasks\n", len(tasks))
}

func printNoteListTable(notes []*model.Note) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPROJECT\tTITLE\tCONTENT")
	for _, n := range notes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			n.ID,
			n.ProjectID,
			truncate(n.Title, 30),
			truncate(n.Content, 50),
		)
	}
	w.Flush()
	fmt.Printf("\n%d notes\n", len(notes))
}

func printStepListTable(steps []*model.ProjectStep) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWEIGHT\tSTATUS\tTITLE")
	totalWeight := 0
	for _, s := range steps {
		totalWeight += s.WeightPercentage
		fmt.Fprintf(w, "%s\t%d%%\t%s\t%s\n",
			s.ID,
			s.WeightPercentage,
			ui.RenderStatus(string(s.Status)),
			truncate(s.Title, 50),
		)
	}
	w.Flush()
	fmt.Printf("\n%d steps, %d%% of budget assigned\n", len(steps), totalWeight)
}

func printGraphSummary(g *model.GraphResponse) {
	fmt.Printf("Nodes: %d   Edges: %d\n\n", len(g.Nodes), len(g.Edges))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tLABEL")
	for _, n := range g.Nodes {
		fmt.Fprintf(w, "%s\t%s\t%s\n", n.ID, n.Type, truncate(n.Label, 40))
	}
	w.Flush()
	if g.Stats != nil {
		fmt.Printf("\nprojects=%d tasks=%d notes=%d steps=%d (todo=%d done=%d)\n",
			g.Stats.Projects, g.Stats.Tasks, g.Stats.Notes, g.Stats.Steps,
			g.Stats.TasksTodo, g.Stats.TasksDone)
	}
}
