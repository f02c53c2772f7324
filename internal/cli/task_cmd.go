package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/rotina/internal/cli/formatter"
	"github.com/alexanderramin/rotina/internal/domain"
	"github.com/alexanderramin/rotina/internal/service"
)

// parseDate accepts either the canonical YYYY-MM-DD form or natural
// language ("tomorrow", "next friday").
func parseDate(input string) (string, error) {
	if input == "" {
		return "", nil
	}
	if _, err := time.Parse(domain.DateLayout, input); err == nil {
		return input, nil
	}
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	r, err := w.Parse(input, time.Now())
	if err != nil || r == nil {
		return "", fmt.Errorf("could not understand date %q", input)
	}
	return r.Time.Format(domain.DateLayout), nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage daily tasks",
	}
	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskDoneCmd(app),
		newTaskRemoveCmd(app),
	)
	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var jobID int64
	var taskType, date, at, description string
	var tagIDs []int64

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDate(date)
			if err != nil {
				return err
			}
			if jobID == 0 {
				jobs, err := app.Catalog.Jobs()
				if err != nil {
					return err
				}
				if len(jobs) == 0 {
					return fmt.Errorf("no jobs configured")
				}
				jobID = jobs[0].ID
			}
			task, err := app.Tasks.Add(domain.Task{
				Title:       args[0],
				Description: description,
				JobID:       jobID,
				Type:        domain.TaskType(taskType),
				Date:        d,
				Time:        at,
				TagIDs:      tagIDs,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Added task %d: %s (%s)\n", task.ID, task.Title, task.Date)
			return nil
		},
	}
	cmd.Flags().Int64Var(&jobID, "job", 0, "Job ID (defaults to the first job)")
	cmd.Flags().StringVar(&taskType, "type", string(domain.TaskProject), "Task type: project, service or freelance")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD or natural language, defaults to today)")
	cmd.Flags().StringVar(&at, "time", "", "Time of day, e.g. 14:30")
	cmd.Flags().StringVar(&description, "desc", "", "Description")
	cmd.Flags().Int64SliceVar(&tagIDs, "tag", nil, "Tag IDs")
	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var rangeName string
	var jobID, tagID int64
	var pending bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			var r service.TaskRange
			switch rangeName {
			case "today":
				r = service.RangeToday
			case "week":
				r = service.RangeWeek
			case "month":
				r = service.RangeMonth
			case "all", "":
				r = service.RangeAll
			default:
				return fmt.Errorf("unknown range %q (today, week, month, all)", rangeName)
			}

			tasks, err := app.Tasks.List(service.TaskFilter{
				Range: r, JobID: jobID, TagID: tagID, Pending: pending,
			})
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Fprintln(app.Out, "No tasks.")
				return nil
			}

			jobs, err := app.Catalog.Jobs()
			if err != nil {
				return err
			}
			jobByID := make(map[int64]domain.Job, len(jobs))
			for _, j := range jobs {
				jobByID[j.ID] = j
			}
			for _, t := range tasks {
				fmt.Fprintln(app.Out, formatter.TaskLine(t, jobByID[t.JobID]))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&rangeName, "range", "today", "today, week, month or all")
	cmd.Flags().Int64Var(&jobID, "job", 0, "Only tasks for this job")
	cmd.Flags().Int64Var(&tagID, "tag", 0, "Only tasks with this tag")
	cmd.Flags().BoolVar(&pending, "pending", false, "Hide completed tasks")
	return cmd
}

func newTaskDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task's completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			task, err := app.Tasks.Toggle(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "%s %s\n", formatter.Checkbox(task.Completed), task.Title)
			return nil
		},
	}
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.Delete(id); err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Removed task %d\n", id)
			return nil
		},
	}
}
