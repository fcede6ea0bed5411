// Package stats derives dashboard and per-person numbers from a task snapshot.
// Every function is read-only over its input.
package stats

import "github.com/TWRT/equipeapp/internal/models"

// CountByStatus counts tasks per known status. Every status is present in the
// result, zero when absent from tasks.
func CountByStatus(tasks []models.Task) map[models.Status]int {
	counts := make(map[models.Status]int, len(models.Statuses))
	for _, s := range models.Statuses {
		counts[s] = 0
	}
	for _, t := range tasks {
		if t.Status.Valid() {
			counts[t.Status]++
		}
	}
	return counts
}

type AssigneeCounts struct {
	Total      int `json:"total"`
	InProgress int `json:"in_progress"`
	Done       int `json:"done"`
}

func CountByAssignee(tasks []models.Task, name string) AssigneeCounts {
	var c AssigneeCounts
	for _, t := range tasks {
		if t.Assignee != name {
			continue
		}
		c.Total++
		switch t.Status {
		case models.StatusInProgress:
			c.InProgress++
		case models.StatusDone:
			c.Done++
		}
	}
	return c
}

// Criteria selects tasks by exact, case-sensitive match. A nil field matches
// everything.
type Criteria struct {
	Status   *models.Status
	Assignee *string
}

func Filter(tasks []models.Task, c Criteria) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if c.Status != nil && t.Status != *c.Status {
			continue
		}
		if c.Assignee != nil && t.Assignee != *c.Assignee {
			continue
		}
		out = append(out, t)
	}
	return out
}

type Summary struct {
	Total      int `json:"total"`
	New        int `json:"new"`
	InProgress int `json:"in_progress"`
	Done       int `json:"done"`
}

func Dashboard(tasks []models.Task) Summary {
	counts := CountByStatus(tasks)
	return Summary{
		Total:      len(tasks),
		New:        counts[models.StatusNew],
		InProgress: counts[models.StatusInProgress],
		Done:       counts[models.StatusDone],
	}
}

type MemberStats struct {
	models.TeamMember
	AssigneeCounts
}

// TeamStats joins the roster to tasks by assignee name.
func TeamStats(tasks []models.Task, roster []models.TeamMember) []MemberStats {
	out := make([]MemberStats, 0, len(roster))
	for _, m := range roster {
		out = append(out, MemberStats{
			TeamMember:     m,
			AssigneeCounts: CountByAssignee(tasks, m.Name),
		})
	}
	return out
}

type Options struct {
	Statuses  []models.Status `json:"statuses"`
	Assignees []string        `json:"assignees"`
}

// FilterOptions lists the distinct statuses and assignees present in tasks,
// in first-seen order.
func FilterOptions(tasks []models.Task) Options {
	opts := Options{Statuses: []models.Status{}, Assignees: []string{}}
	seenStatus := make(map[models.Status]struct{})
	seenAssignee := make(map[string]struct{})

	for _, t := range tasks {
		if _, ok := seenStatus[t.Status]; !ok {
			seenStatus[t.Status] = struct{}{}
			opts.Statuses = append(opts.Statuses, t.Status)
		}
		if _, ok := seenAssignee[t.Assignee]; !ok {
			seenAssignee[t.Assignee] = struct{}{}
			opts.Assignees = append(opts.Assignees, t.Assignee)
		}
	}
	return opts
}
