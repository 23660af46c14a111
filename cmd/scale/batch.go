package main

import (
	"github.com/spf13/cobra"
)

func newBatchCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Manage batches",
	}
	cmd.AddCommand(newBatchCreateCmd(c))
	cmd.AddCommand(newBatchGetCmd(c))
	cmd.AddCommand(newBatchListCmd(c))
	cmd.AddCommand(newBatchFinalizeCmd(c))
	cmd.AddCommand(newBatchStatusCmd(c))
	return cmd
}

func newBatchCreateCmd(c *cli) *cobra.Command {
	var project, callback string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a batch",
		Long:  `Create a staging batch. Tasks can be added to it until it is finalized.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient()
			if err != nil {
				return err
			}

			batch, err := client.CreateBatch(cmd.Context(), project, args[0], callback)
			if err != nil {
				return err
			}

			printBatch(c.stdout, batch, c.jsonOutput)
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "Project the batch belongs to")
	cmd.Flags().StringVar(&callback, "callback", "", "URL notified when the batch completes")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newBatchGetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Show a batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient()
			if err != nil {
				return err
			}

			batch, err := client.GetBatch(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printBatch(c.stdout, batch, c.jsonOutput)
			return nil
		},
	}
}

func newBatchListCmd(c *cli) *cobra.Command {
	var f listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List batches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.options(cmd)
			if err != nil {
				return err
			}

			client, err := c.newClient()
			if err != nil {
				return err
			}

			page, err := client.ListBatches(cmd.Context(), opts...)
			if err != nil {
				return err
			}
			printBatchList(c.stdout, page, c.jsonOutput)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.status, "status", "", "Filter by status")
	flags.StringVar(&f.project, "project", "", "Filter by project")
	flags.StringVar(&f.batch, "batch", "", "Filter by batch name")
	flags.IntVar(&f.limit, "limit", 100, "Page size (1-100)")
	flags.IntVar(&f.offset, "offset", 0, "Skip the first N results")
	flags.StringVar(&f.startTime, "start-time", "", "Only batches created at or after this time")
	flags.StringVar(&f.endTime, "end-time", "", "Only batches created before this time")
	return cmd
}

func newBatchFinalizeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "finalize <name>",
		Short: "Finalize a batch",
		Long:  `Finalize a staging batch so its tasks start being worked on. No tasks can be added afterwards.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient()
			if err != nil {
				return err
			}

			batch, err := client.FinalizeBatch(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printBatch(c.stdout, batch, c.jsonOutput)
			return nil
		},
	}
}

func newBatchStatusCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status <name>",
		Short: "Show task counts of a batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient()
			if err != nil {
				return err
			}

			progress, err := client.BatchStatus(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printProgress(c.stdout, args[0], progress, c.jsonOutput)
			return nil
		},
	}
}
