package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Austuin/HoneyBadgerTool/pro"
	"github.com/Austuin/HoneyBadgerTool/server"
	"github.com/spf13/cobra"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Work with the shared job board",
}

var (
	remoteServer string
	remoteWorker string
)

// jobs list
var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List jobs on the board",
	Args:  cobra.NoArgs,
	RunE:  runJobsList,
}

var jobsListJSON bool

// jobs archived
var jobsArchivedCmd = &cobra.Command{
	Use:   "archived",
	Short: "List completed and archived jobs",
	Args:  cobra.NoArgs,
	RunE:  runJobsArchived,
}

var jobsArchivedJSON bool

// jobs show
var jobsShowCmd = &cobra.Command{
	Use:   "show <job-id>",
	Short: "Show a job's assignments and time",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsShow,
}

var jobsShowJSON bool

// jobs create
var jobsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Post a new job (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsCreate,
}

var (
	jobsCreateDescription  string
	jobsCreateRequirements string
	jobsCreateMaxWorkers   int
	jobsCreateAutoReview   bool
)

// jobs update
var jobsUpdateCmd = &cobra.Command{
	Use:   "update <job-id>",
	Short: "Update a job (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsUpdate,
}

var (
	jobsUpdateName         string
	jobsUpdateDescription  string
	jobsUpdateRequirements string
	jobsUpdateMaxWorkers   int
)

// jobs delete
var jobsDeleteCmd = &cobra.Command{
	Use:   "delete <job-id>",
	Short: "Delete a job (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsDelete,
}

// jobs join
var jobsJoinCmd = &cobra.Command{
	Use:   "join <job-id>",
	Short: "Join a job",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsJoin,
}

// jobs assign
var jobsAssignCmd = &cobra.Command{
	Use:   "assign <job-id> <worker-id>",
	Short: "Assign a worker to a job (admin)",
	Args:  cobra.ExactArgs(2),
	RunE:  runJobsAssign,
}

// jobs leave
var jobsLeaveCmd = &cobra.Command{
	Use:   "leave <job-id>",
	Short: "Leave a job",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsLeave,
}

// jobs complete
var jobsCompleteCmd = &cobra.Command{
	Use:   "complete <job-id>",
	Short: "Mark a job's work done",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsComplete,
}

// jobs approve
var jobsApproveCmd = &cobra.Command{
	Use:   "approve <job-id>",
	Short: "Approve and archive a job (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsApprove,
}

// jobs reopen
var jobsReopenCmd = &cobra.Command{
	Use:   "reopen <job-id>",
	Short: "Put a job marked for review back on the board (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsReopen,
}

func init() {
	rootCmd.AddCommand(jobsCmd)
	jobsCmd.AddCommand(jobsListCmd, jobsArchivedCmd, jobsShowCmd, jobsCreateCmd, jobsUpdateCmd,
		jobsDeleteCmd, jobsJoinCmd, jobsAssignCmd, jobsLeaveCmd, jobsCompleteCmd,
		jobsApproveCmd, jobsReopenCmd)

	jobsCmd.PersistentFlags().StringVar(&remoteServer, "server", "", "Job server address (default from config)")
	jobsCmd.PersistentFlags().StringVar(&remoteWorker, "worker", "", "Worker identity (ID or username, default $HB_WORKER)")

	jobsCreateCmd.Flags().StringVarP(&jobsCreateDescription, "description", "d", "", "Job description")
	jobsCreateCmd.Flags().StringVar(&jobsCreateRequirements, "requirements", "", "Job requirements")
	jobsCreateCmd.Flags().IntVar(&jobsCreateMaxWorkers, "max-workers", 1, "Worker cap")
	jobsCreateCmd.Flags().BoolVar(&jobsCreateAutoReview, "auto-review", false, "Archive on completion without review")

	jobsUpdateCmd.Flags().StringVar(&jobsUpdateName, "name", "", "New name")
	jobsUpdateCmd.Flags().StringVarP(&jobsUpdateDescription, "description", "d", "", "New description")
	jobsUpdateCmd.Flags().StringVar(&jobsUpdateRequirements, "requirements", "", "New requirements")
	jobsUpdateCmd.Flags().IntVar(&jobsUpdateMaxWorkers, "max-workers", 0, "New worker cap")

	jobsListCmd.Flags().BoolVar(&jobsListJSON, "json", false, "Output as JSON")
	jobsArchivedCmd.Flags().BoolVar(&jobsArchivedJSON, "json", false, "Output as JSON")
	jobsShowCmd.Flags().BoolVar(&jobsShowJSON, "json", false, "Output as JSON")
}

// remoteClient builds a job board client from flags, config, and the
// HB_WORKER environment variable.
func remoteClient() (*server.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	addr := remoteServer
	if addr == "" {
		addr = cfg.ServerAddr()
	}

	worker := remoteWorker
	if worker == "" {
		worker = os.Getenv("HB_WORKER")
	}
	if worker == "" {
		return nil, fmt.Errorf("worker identity required: pass --worker or set HB_WORKER")
	}

	return server.NewClient(addr, worker), nil
}

func parseJobID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid job id %q", value)
	}
	return id, nil
}

func runJobsList(cmd *cobra.Command, args []string) error {
	client, err := remoteClient()
	if err != nil {
		return err
	}

	jobs, err := client.ListJobs(cmd.Context())
	if err != nil {
		return err
	}

	if jobsListJSON {
		return printJSON(jobs)
	}
	printJobTable(jobs)
	return nil
}

func runJobsArchived(cmd *cobra.Command, args []string) error {
	client, err := remoteClient()
	if err != nil {
		return err
	}

	jobs, err := client.ListArchivedJobs(cmd.Context())
	if err != nil {
		return err
	}

	if jobsArchivedJSON {
		return printJSON(jobs)
	}
	printJobTable(jobs)
	return nil
}

func runJobsShow(cmd *cobra.Command, args []string) error {
	client, err := remoteClient()
	if err != nil {
		return err
	}
	jobID, err := parseJobID(args[0])
	if err != nil {
		return err
	}

	view, err := client.GetJob(cmd.Context(), jobID)
	if err != nil {
		return err
	}

	if jobsShowJSON {
		return printJSON(view)
	}
	fmt.Print(formatJobDetail(view))
	return nil
}

func runJobsCreate(cmd *cobra.Command, args []string) error {
	client, err := remoteClient()
	if err != nil {
		return err
	}

	view, err := client.CreateJob(cmd.Context(), pro.CreateJobOptions{
		Name:         args[0],
		Description:  jobsCreateDescription,
		Requirements: jobsCreateRequirements,
		MaxWorkers:   jobsCreateMaxWorkers,
		AutoReview:   jobsCreateAutoReview,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Created job %d: %s\n", view.ID, view.Name)
	return nil
}

func runJobsUpdate(cmd *cobra.Command, args []string) error {
	client, err := remoteClient()
	if err != nil {
		return err
	}
	jobID, err := parseJobID(args[0])
	if err != nil {
		return err
	}

	if !anyFlagChanged(cmd.Flags(), "name", "description", "requirements", "max-workers") {
		return fmt.Errorf("nothing to update: pass --name, --description, --requirements, or --max-workers")
	}

	opts := pro.UpdateJobOptions{}
	if cmd.Flags().Changed("name") {
		opts.Name = &jobsUpdateName
	}
	if cmd.Flags().Changed("description") {
		opts.Description = &jobsUpdateDescription
	}
	if cmd.Flags().Changed("requirements") {
		opts.Requirements = &jobsUpdateRequirements
	}
	if cmd.Flags().Changed("max-workers") {
		opts.MaxWorkers = &jobsUpdateMaxWorkers
	}

	view, err := client.UpdateJob(cmd.Context(), jobID, opts)
	if err != nil {
		return err
	}

	fmt.Printf("Updated job %d\n", view.ID)
	return nil
}

func runJobsDelete(cmd *cobra.Command, args []string) error {
	client, err := remoteClient()
	if err != nil {
		return err
	}
	jobID, err := parseJobID(args[0])
	if err != nil {
		return err
	}

	if err := client.DeleteJob(cmd.Context(), jobID); err != nil {
		return err
	}
	fmt.Printf("Deleted job %d\n", jobID)
	return nil
}

func runJobsJoin(cmd *cobra.Command, args []string) error {
	client, err := remoteClient()
	if err != nil {
		return err
	}
	jobID, err := parseJobID(args[0])
	if err != nil {
		return err
	}

	if err := client.Join(cmd.Context(), jobID); err != nil {
		return err
	}
	fmt.Printf("Joined job %d\n", jobID)
	return nil
}

func runJobsAssign(cmd *cobra.Command, args []string) error {
	client, err := remoteClient()
	if err != nil {
		return err
	}
	jobID, err := parseJobID(args[0])
	if err != nil {
		return err
	}
	workerID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid worker id %q", args[1])
	}

	if err := client.Assign(cmd.Context(), jobID, workerID); err != nil {
		return err
	}
	fmt.Printf("Assigned worker %d to job %d\n", workerID, jobID)
	return nil
}

func runJobsLeave(cmd *cobra.Command, args []string) error {
	client, err := remoteClient()
	if err != nil {
		return err
	}
	jobID, err := parseJobID(args[0])
	if err != nil {
		return err
	}

	if err := client.Leave(cmd.Context(), jobID); err != nil {
		return err
	}
	fmt.Printf("Left job %d\n", jobID)
	return nil
}

func runJobsComplete(cmd *cobra.Command, args []string) error {
	client, err := remoteClient()
	if err != nil {
		return err
	}
	jobID, err := parseJobID(args[0])
	if err != nil {
		return err
	}

	autoCompleted, err := client.Complete(cmd.Context(), jobID)
	if err != nil {
		return err
	}
	if autoCompleted {
		fmt.Printf("Job %d completed and archived\n", jobID)
	} else {
		fmt.Printf("Job %d marked for review\n", jobID)
	}
	return nil
}

func runJobsApprove(cmd *cobra.Command, args []string) error {
	client, err := remoteClient()
	if err != nil {
		return err
	}
	jobID, err := parseJobID(args[0])
	if err != nil {
		return err
	}

	if err := client.Approve(cmd.Context(), jobID); err != nil {
		return err
	}
	fmt.Printf("Approved job %d\n", jobID)
	return nil
}

func runJobsReopen(cmd *cobra.Command, args []string) error {
	client, err := remoteClient()
	if err != nil {
		return err
	}
	jobID, err := parseJobID(args[0])
	if err != nil {
		return err
	}

	if err := client.Reopen(cmd.Context(), jobID); err != nil {
		return err
	}
	fmt.Printf("Reopened job %d\n", jobID)
	return nil
}
