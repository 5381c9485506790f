package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Austuin/HoneyBadgerTool/internal/ui"
	"github.com/Austuin/HoneyBadgerTool/pro"
	"github.com/spf13/cobra"
)

var workersCmd = &cobra.Command{
	Use:   "workers",
	Short: "Manage the worker registry",
}

var workersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered workers",
	Args:  cobra.NoArgs,
	RunE:  runWorkersList,
}

var workersListJSON bool

var workersCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Register a worker (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkersCreate,
}

var (
	workersCreateInitials string
	workersCreateRole     string
)

var workersDeleteCmd = &cobra.Command{
	Use:   "delete <worker-id>",
	Short: "Remove a worker (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkersDelete,
}

func init() {
	rootCmd.AddCommand(workersCmd)
	workersCmd.AddCommand(workersListCmd, workersCreateCmd, workersDeleteCmd)

	workersCmd.PersistentFlags().StringVar(&remoteServer, "server", "", "Job server address (default from config)")
	workersCmd.PersistentFlags().StringVar(&remoteWorker, "worker", "", "Worker identity (ID or username, default $HB_WORKER)")

	workersListCmd.Flags().BoolVar(&workersListJSON, "json", false, "Output as JSON")
	workersCreateCmd.Flags().StringVar(&workersCreateInitials, "initials", "", "Display initials (default derived from username)")
	workersCreateCmd.Flags().StringVar(&workersCreateRole, "role", "", "Role: admin or basic (default basic)")
}

func runWorkersList(cmd *cobra.Command, args []string) error {
	client, err := remoteClient()
	if err != nil {
		return err
	}

	workers, err := client.ListWorkers(cmd.Context())
	if err != nil {
		return err
	}

	if workersListJSON {
		return printJSON(workers)
	}
	printWorkerTable(workers)
	return nil
}

func printWorkerTable(workers []pro.Worker) {
	if len(workers) == 0 {
		fmt.Println("No workers registered.")
		return
	}

	now := time.Now()
	builder := ui.NewTableBuilder([]string{"ID", "USERNAME", "INITIALS", "ROLE", "JOINED"}, len(workers))
	for _, w := range workers {
		builder.AddRow([]string{
			strconv.FormatInt(w.ID, 10),
			w.Username,
			w.Initials,
			string(w.Role),
			ui.FormatTimeAgeShort(w.CreatedAt, now),
		})
	}
	fmt.Print(builder.String())
}

func runWorkersCreate(cmd *cobra.Command, args []string) error {
	client, err := remoteClient()
	if err != nil {
		return err
	}

	worker, err := client.CreateWorker(cmd.Context(), pro.CreateWorkerOptions{
		Username: args[0],
		Initials: workersCreateInitials,
		Role:     pro.Role(workersCreateRole),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Created worker %d: %s [%s] %s\n", worker.ID, worker.Username, worker.Initials, worker.Role)
	return nil
}

func runWorkersDelete(cmd *cobra.Command, args []string) error {
	client, err := remoteClient()
	if err != nil {
		return err
	}

	workerID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid worker id %q", args[0])
	}

	if err := client.DeleteWorker(cmd.Context(), workerID); err != nil {
		return err
	}
	fmt.Printf("Deleted worker %d\n", workerID)
	return nil
}
