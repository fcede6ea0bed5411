package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/TWRT/equipeapp/internal/models"
	"github.com/TWRT/equipeapp/internal/stats"
)

func newTaskCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Create, list and move tasks",
	}
	cmd.AddCommand(
		newTaskAddCommand(a),
		newTaskListCommand(a),
		newTaskShowCommand(a),
		newTaskStatusCommand(a),
	)
	return cmd
}

func newTaskAddCommand(a *app) *cobra.Command {
	var in models.NewTask
	var priority string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Priority = models.Priority(priority)
			task, err := a.service.CreateTask(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task #%d %q created\n", task.ID, task.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Title, "title", "", "task title")
	cmd.Flags().StringVar(&in.Description, "description", "", "task details")
	cmd.Flags().StringVar(&in.Assignee, "assignee", "", "team member responsible for the task ("+strings.Join(models.Assignees(), ", ")+")")
	cmd.Flags().StringVar(&priority, "priority", string(models.PriorityMedium), "High, Medium or Low")
	return cmd
}

func newTaskListCommand(a *app) *cobra.Command {
	var status, assignee string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, optionally filtered by status and assignee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var criteria stats.Criteria
			if cmd.Flags().Changed("status") {
				s := models.Status(status)
				criteria.Status = &s
			}
			if cmd.Flags().Changed("assignee") {
				criteria.Assignee = &assignee
			}

			tasks, err := a.service.FilterTasks(cmd.Context(), criteria)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks found.")
				return nil
			}
			printTasks(cmd.OutOrStdout(), tasks)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "only tasks with this status")
	cmd.Flags().StringVar(&assignee, "assignee", "", "only tasks assigned to this member")
	return cmd
}

func newTaskShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			task, err := a.service.GetTask(cmd.Context(), id)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "#%d - %s\n", task.ID, task.Title)
			if task.Description != "" {
				fmt.Fprintf(w, "%s\n", task.Description)
			}
			fmt.Fprintf(w, "Assignee: %s | Priority: %s | Status: %s\n", task.Assignee, task.Priority, task.Status)
			fmt.Fprintf(w, "Created: %s (%s)\n", task.CreatedAt.Local().Format(time.DateTime), humanize.Time(task.CreatedAt))
			fmt.Fprintf(w, "Updated: %s (%s)\n", task.UpdatedAt.Local().Format(time.DateTime), humanize.Time(task.UpdatedAt))
			return nil
		},
	}
}

func newTaskStatusCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Move a task to New, In Progress or Done",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			task, err := a.service.UpdateStatus(cmd.Context(), id, models.Status(args[1]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task #%d is now %s\n", task.ID, task.Status)
			return nil
		},
	}
}

func parseTaskID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid task id %q", models.ErrValidation, s)
	}
	return id, nil
}

func printTasks(w io.Writer, tasks []models.Task) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tASSIGNEE\tPRIORITY\tSTATUS\tCREATED")
	for _, t := range tasks {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Title, t.Assignee, t.Priority, t.Status, humanize.Time(t.CreatedAt))
	}
	tw.Flush()
}
