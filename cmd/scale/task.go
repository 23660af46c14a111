package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/maumercado/scaleapi-go/pkg/scaleapi"
)

func newTaskCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	cmd.AddCommand(newTaskGetCmd(c))
	cmd.AddCommand(newTaskCancelCmd(c))
	cmd.AddCommand(newTaskListCmd(c))
	cmd.AddCommand(newTaskCreateCmd(c))
	return cmd
}

func newTaskGetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient()
			if err != nil {
				return err
			}

			task, err := client.FetchTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printTask(c.stdout, task, c.jsonOutput)
			return nil
		},
	}
}

func newTaskCancelCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a pending task",
		Long:  `Cancel a task that has not been completed yet. Canceling twice is an error.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient()
			if err != nil {
				return err
			}

			task, err := client.CancelTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printTask(c.stdout, task, c.jsonOutput)
			return nil
		},
	}
}

// listFlags holds the filters shared by the task and batch listings.
type listFlags struct {
	status          string
	taskType        string
	project         string
	batch           string
	reviewStatus    string
	limit           int
	offset          int
	nextToken       string
	startTime       string
	endTime         string
	completedAfter  string
	completedBefore string
	updatedAfter    string
	updatedBefore   string
}

// options converts the flags that were set into list options. Unset flags
// add nothing, so the server defaults apply.
func (f *listFlags) options(cmd *cobra.Command) ([]scaleapi.ListOption, error) {
	var opts []scaleapi.ListOption
	changed := cmd.Flags().Changed

	if changed("status") {
		opts = append(opts, scaleapi.WithStatus(scaleapi.TaskStatus(f.status)))
	}
	if changed("type") {
		tt, ok := scaleapi.ParseTaskType(f.taskType)
		if !ok {
			return nil, fmt.Errorf("unknown task type %q (see 'scale types')", f.taskType)
		}
		opts = append(opts, scaleapi.WithTaskType(tt))
	}
	if changed("project") {
		opts = append(opts, scaleapi.WithProject(f.project))
	}
	if changed("batch") {
		opts = append(opts, scaleapi.WithBatch(f.batch))
	}
	if changed("review-status") {
		opts = append(opts, scaleapi.WithCustomerReviewStatus(scaleapi.ReviewStatus(f.reviewStatus)))
	}
	if changed("limit") {
		opts = append(opts, scaleapi.WithLimit(f.limit))
	}
	if changed("offset") {
		opts = append(opts, scaleapi.WithOffset(f.offset))
	}
	if changed("next-token") {
		opts = append(opts, scaleapi.WithNextToken(f.nextToken))
	}

	times := []struct {
		flag  string
		value string
		opt   func(time.Time) scaleapi.ListOption
	}{
		{"start-time", f.startTime, scaleapi.WithStartTime},
		{"end-time", f.endTime, scaleapi.WithEndTime},
		{"completed-after", f.completedAfter, scaleapi.WithCompletedAfter},
		{"completed-before", f.completedBefore, scaleapi.WithCompletedBefore},
		{"updated-after", f.updatedAfter, scaleapi.WithUpdatedAfter},
		{"updated-before", f.updatedBefore, scaleapi.WithUpdatedBefore},
	}
	for _, tf := range times {
		if !changed(tf.flag) {
			continue
		}
		t, err := parseTime(tf.flag, tf.value)
		if err != nil {
			return nil, err
		}
		opts = append(opts, tf.opt(t))
	}
	return opts, nil
}

func newTaskListCmd(c *cli) *cobra.Command {
	var (
		f   listFlags
		all bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks matching the given filters, one page at a time.

Use --all to follow pagination until every matching task has been printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.options(cmd)
			if err != nil {
				return err
			}

			client, err := c.newClient()
			if err != nil {
				return err
			}

			if all {
				var tasks []*scaleapi.Task
				for task, err := range client.AllTasks(cmd.Context(), opts...) {
					if err != nil {
						return err
					}
					tasks = append(tasks, task)
				}
				printTaskList(c.stdout, &scaleapi.TaskList{
					Items: tasks,
					Total: len(tasks),
					Limit: len(tasks),
				}, c.jsonOutput)
				return nil
			}

			page, err := client.ListTasks(cmd.Context(), opts...)
			if err != nil {
				return err
			}
			printTaskList(c.stdout, page, c.jsonOutput)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.status, "status", "", "Filter by status (pending, completed, canceled)")
	flags.StringVar(&f.taskType, "type", "", "Filter by task type")
	flags.StringVar(&f.project, "project", "", "Filter by project")
	flags.StringVar(&f.batch, "batch", "", "Filter by batch")
	flags.StringVar(&f.reviewStatus, "review-status", "", "Filter by customer review status")
	flags.IntVar(&f.limit, "limit", 100, "Page size (1-100)")
	flags.IntVar(&f.offset, "offset", 0, "Skip the first N results")
	flags.StringVar(&f.nextToken, "next-token", "", "Token of the page to fetch")
	flags.StringVar(&f.startTime, "start-time", "", "Only tasks created at or after this time")
	flags.StringVar(&f.endTime, "end-time", "", "Only tasks created before this time")
	flags.StringVar(&f.completedAfter, "completed-after", "", "Only tasks completed after this time")
	flags.StringVar(&f.completedBefore, "completed-before", "", "Only tasks completed before this time")
	flags.StringVar(&f.updatedAfter, "updated-after", "", "Only tasks updated after this time")
	flags.StringVar(&f.updatedBefore, "updated-before", "", "Only tasks updated before this time")
	flags.BoolVar(&all, "all", false, "Fetch every page")
	return cmd
}

func newTaskCreateCmd(c *cli) *cobra.Command {
	var (
		data  string
		pairs []string
	)

	cmd := &cobra.Command{
		Use:   "create <type>",
		Short: "Create a task",
		Long: `Create a task of the given type.

The request body is built from --data (a JSON object, or @file to read one)
plus any --field key=value pairs, which take precedence.

Example:
  scale task create categorization \
    --field instruction="Is this company public or private?" \
    --data '{"attachment_type":"website","categories":["public","private"]}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskType, ok := scaleapi.ParseTaskType(strings.ToLower(args[0]))
			if !ok {
				return fmt.Errorf("unknown task type %q (see 'scale types')", args[0])
			}

			fields, err := parseFields(data, pairs)
			if err != nil {
				return err
			}

			client, err := c.newClient()
			if err != nil {
				return err
			}

			task, err := client.CreateTask(cmd.Context(), taskType, fields)
			if err != nil {
				return err
			}

			printTask(c.stdout, task, c.jsonOutput)
			return nil
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON request body, or @file")
	cmd.Flags().StringArrayVarP(&pairs, "field", "f", nil, "Set a string field (key=value); repeatable")
	return cmd
}
