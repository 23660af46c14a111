package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/maumercado/scaleapi-go/pkg/scaleapi"
)

const timeLayout = "2006-01-02 15:04:05"

func writeJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

// printTask prints a single task
func printTask(w io.Writer, task *scaleapi.Task, jsonOutput bool) {
	if jsonOutput {
		writeJSON(w, task)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", task.ID())
	fmt.Fprintf(tw, "Type:\t%s\n", task.Type())
	fmt.Fprintf(tw, "Status:\t%s\n", task.Status())
	if p := task.Project(); p != "" {
		fmt.Fprintf(tw, "Project:\t%s\n", p)
	}
	if b := task.Batch(); b != "" {
		fmt.Fprintf(tw, "Batch:\t%s\n", b)
	}
	if cb := task.CallbackURL(); cb != "" {
		fmt.Fprintf(tw, "Callback:\t%s\n", cb)
	}
	if in := task.Instruction(); in != "" {
		fmt.Fprintf(tw, "Instruction:\t%s\n", truncate(in, 60))
	}
	fmt.Fprintf(tw, "Created:\t%s\n", formatTime(task.CreatedAt()))
	if task.Status() == scaleapi.TaskStatusCompleted {
		fmt.Fprintf(tw, "Completed:\t%s\n", formatTime(task.CompletedAt()))
	}
	tw.Flush()
}

// printTaskList prints a page of tasks with pagination info
func printTaskList(w io.Writer, page *scaleapi.TaskList, jsonOutput bool) {
	if jsonOutput {
		resp := map[string]any{
			"docs":     page.Items,
			"total":    page.Total,
			"limit":    page.Limit,
			"offset":   page.Offset,
			"has_more": page.HasMore,
		}
		if page.NextToken != "" {
			resp["next_token"] = page.NextToken
		}
		writeJSON(w, resp)
		return
	}

	if page.Len() == 0 {
		fmt.Fprintln(w, "No tasks found")
		return
	}

	printTaskRows(w, page.Items)

	if page.HasMore {
		fmt.Fprintf(w, "\nShowing %d of %d tasks", page.Len(), page.Total)
		if page.NextToken != "" {
			fmt.Fprintf(w, " (next: --next-token %s)", page.NextToken)
		}
		fmt.Fprintln(w)
	}
}

func printTaskRows(w io.Writer, tasks []*scaleapi.Task) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tTYPE\tSTATUS\tPROJECT\tCREATED\n")
	fmt.Fprintf(tw, "--\t----\t------\t-------\t-------\n")
	for _, task := range tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			task.ID(), task.Type(), task.Status(), truncate(task.Project(), 30), formatTime(task.CreatedAt()))
	}
	tw.Flush()
}

// printBatch prints a single batch
func printBatch(w io.Writer, batch *scaleapi.Batch, jsonOutput bool) {
	if jsonOutput {
		writeJSON(w, batch)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Name:\t%s\n", batch.Name())
	fmt.Fprintf(tw, "Project:\t%s\n", batch.Project())
	fmt.Fprintf(tw, "Status:\t%s\n", batch.Status())
	if cb := batch.CallbackURL(); cb != "" {
		fmt.Fprintf(tw, "Callback:\t%s\n", cb)
	}
	fmt.Fprintf(tw, "Created:\t%s\n", formatTime(batch.CreatedAt()))
	tw.Flush()
}

// printBatchList prints whatever documents the batch listing returned. The
// listing shares its endpoint with tasks, so rows are shown generically.
func printBatchList(w io.Writer, page *scaleapi.BatchList, jsonOutput bool) {
	if jsonOutput {
		writeJSON(w, map[string]any{
			"docs":     page.Items,
			"total":    page.Total,
			"limit":    page.Limit,
			"offset":   page.Offset,
			"has_more": page.HasMore,
		})
		return
	}

	if page.Len() == 0 {
		fmt.Fprintln(w, "No batches found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "NAME\tPROJECT\tSTATUS\n")
	fmt.Fprintf(tw, "----\t-------\t------\n")
	for _, b := range page.Items {
		name := b.Name()
		if name == "" {
			// task documents carry the batch under "batch"
			if v, ok := b.Get("batch"); ok {
				name = fmt.Sprint(v)
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", name, b.Project(), b.Status())
	}
	tw.Flush()
}

// printProgress prints the per-status breakdown of a batch
func printProgress(w io.Writer, name string, p *scaleapi.BatchProgress, jsonOutput bool) {
	if jsonOutput {
		writeJSON(w, p)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Batch:\t%s\n", name)
	fmt.Fprintf(tw, "Status:\t%s\n", p.Status)
	fmt.Fprintf(tw, "Pending:\t%d\n", p.TasksPending)
	fmt.Fprintf(tw, "Completed:\t%d\n", p.TasksCompleted)
	fmt.Fprintf(tw, "Canceled:\t%d\n", p.TasksCanceled)
	fmt.Fprintf(tw, "Total:\t%d\n", p.Total())
	tw.Flush()
}

// printError prints an error message
func printError(w io.Writer, err error, jsonOutput bool) {
	if jsonOutput {
		body := map[string]any{"message": err.Error()}
		if code := scaleapi.StatusCode(err); code != 0 {
			body["status_code"] = code
		}
		writeJSON(w, map[string]any{"error": body})
		return
	}

	fmt.Fprintf(w, "Error: %s\n", err.Error())
}

// truncate truncates a string to the specified length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
