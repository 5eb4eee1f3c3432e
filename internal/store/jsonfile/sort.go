package jsonfile

import (
	"sort"
	"strings"

	"github.com/aturzone/tasksphere/internal/model"
)

// parseSort splits a sort expression like "-created_at" into field and
// direction. An empty expression keeps insertion (creation) order.
func parseSort(expr string) (field string, desc bool) {
	if strings.HasPrefix(expr, "-") {
		return expr[1:], true
	}
	return expr, false
}

func sortProjects(projects []*model.Project, expr string) {
	field, desc := parseSort(expr)
	if field == "" {
		return
	}
	sort.SliceStable(projects, func(i, j int) bool {
		a, b := projects[i], projects[j]
		var less bool
		switch field {
		case "title":
			less = a.Title < b.Title
		case "updated_at":
			less = a.UpdatedAt.Before(b.UpdatedAt)
		default: // created_at
			less = a.CreatedAt.Before(b.CreatedAt)
		}
		if desc {
			return !less
		}
		return less
	})
}

func sortTasks(tasks []*model.Task, expr string) {
	field, desc := parseSort(expr)
	if field == "" {
		return
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		var less bool
		switch field {
		case "title":
			less = a.Title < b.Title
		case "priority":
			less = priorityRank(a.Priority) < priorityRank(b.Priority)
		case "due_date":
			switch {
			case a.DueDate == nil:
				less = false
			case b.DueDate == nil:
				less = true
			default:
				less = a.DueDate.Before(*b.DueDate)
			}
		case "updated_at":
			less = a.UpdatedAt.Before(b.UpdatedAt)
		default:
			less = a.CreatedAt.Before(b.CreatedAt)
		}
		if desc {
			return !less
		}
		return less
	})
}

func sortNotes(notes []*model.Note, expr string) {
	field, desc := parseSort(expr)
	if field == "" {
		return
	}
	sort.SliceStable(notes, func(i, j int) bool {
		a, b := notes[i], notes[j]
		var less bool
		switch field {
		case "title":
			less = a.Title < b.Title
		case "updated_at":
			less = a.UpdatedAt.Before(b.UpdatedAt)
		default:
			less = a.CreatedAt.Before(b.CreatedAt)
		}
		if desc {
			return !less
		}
		return less
	})
}

func priorityRank(p model.TaskPriority) int {
	switch p {
	case model.PriorityHigh:
		return 2
	case model.PriorityMedium:
		return 1
	default:
		return 0
	}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
