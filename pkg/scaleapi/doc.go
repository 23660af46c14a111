// Package scaleapi provides a Go SDK for the Scale task annotation API.
//
// Every call is a single blocking HTTP round trip authenticated with the
// account's API key. Responses are wrapped in Task and Batch values that
// expose the JSON document through typed accessors.
//
// # Basic Usage
//
//	client, err := scaleapi.NewClient(os.Getenv("SCALE_API_KEY"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Create a task
//	task, err := client.CreateImageAnnotationTask(ctx, scaleapi.Fields{
//	    "callback_url": "https://example.com/callback",
//	    "instruction":  "Draw a box around each car",
//	    "attachment":   "https://example.com/car.jpg",
//	})
//
//	// Fetch and cancel
//	task, err = client.FetchTask(ctx, task.ID())
//	task, err = task.Cancel(ctx)
//
// # Listing
//
// Listing calls return one page at a time. Follow NextToken to get more, or
// let AllTasks do it:
//
//	page, err := client.ListTasks(ctx,
//	    scaleapi.WithStatus(scaleapi.TaskStatusCompleted),
//	    scaleapi.WithLimit(50),
//	)
//
//	for task, err := range client.AllTasks(ctx, scaleapi.WithProject("kitti")) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(task.ID())
//	}
//
// Unsupported filter keys (for example WithParam("color", "red")) fail with
// an invalid-request error before anything is sent.
//
// # Batches
//
//	batch, err := client.CreateBatch(ctx, "kitti", "kitti-2024-06", "https://example.com/done")
//	batch, err = batch.Finalize(ctx)
//	progress, err := batch.Progress(ctx)
//
// # Error Handling
//
//	task, err := client.FetchTask(ctx, id)
//	if err != nil {
//	    if scaleapi.IsInvalidRequest(err) {
//	        // HTTP 400 or a malformed call
//	    } else if scaleapi.IsAPIError(err) {
//	        // any other non-200 status; see scaleapi.StatusCode(err)
//	    }
//	}
//
// # Configuration
//
//	client, err := scaleapi.NewClient(key,
//	    scaleapi.WithTimeout(10*time.Second),
//	    scaleapi.WithRateLimit(5, 10),
//	    scaleapi.WithLogger(zerolog.New(os.Stderr)),
//	)
package scaleapi
