package main

import (
	"fmt"
	"time"

	"github.com/Austuin/HoneyBadgerTool/internal/ui"
	"github.com/spf13/cobra"
)

var clockCmd = &cobra.Command{
	Use:   "clock",
	Short: "Track time on jobs",
}

var clockInCmd = &cobra.Command{
	Use:   "in <job-id>",
	Short: "Clock in on a job",
	Args:  cobra.ExactArgs(1),
	RunE:  runClockIn,
}

var clockOutCmd = &cobra.Command{
	Use:   "out <job-id>",
	Short: "Clock out of a job",
	Args:  cobra.ExactArgs(1),
	RunE:  runClockOut,
}

var clockActiveCmd = &cobra.Command{
	Use:   "active",
	Short: "Show your open time entries",
	Args:  cobra.NoArgs,
	RunE:  runClockActive,
}

var clockActiveJSON bool

func init() {
	rootCmd.AddCommand(clockCmd)
	clockCmd.AddCommand(clockInCmd, clockOutCmd, clockActiveCmd)

	clockCmd.PersistentFlags().StringVar(&remoteServer, "server", "", "Job server address (default from config)")
	clockCmd.PersistentFlags().StringVar(&remoteWorker, "worker", "", "Worker identity (ID or username, default $HB_WORKER)")

	clockActiveCmd.Flags().BoolVar(&clockActiveJSON, "json", false, "Output as JSON")
}

func runClockIn(cmd *cobra.Command, args []string) error {
	client, err := remoteClient()
	if err != nil {
		return err
	}
	jobID, err := parseJobID(args[0])
	if err != nil {
		return err
	}

	clockIn, err := client.ClockIn(cmd.Context(), jobID)
	if err != nil {
		return err
	}
	fmt.Printf("Clocked in on job %d at %s\n", jobID, ui.FormatClock(clockIn))
	return nil
}

func runClockOut(cmd *cobra.Command, args []string) error {
	client, err := remoteClient()
	if err != nil {
		return err
	}
	jobID, err := parseJobID(args[0])
	if err != nil {
		return err
	}

	clockOut, err := client.ClockOut(cmd.Context(), jobID)
	if err != nil {
		return err
	}
	fmt.Printf("Clocked out of job %d at %s\n", jobID, ui.FormatClock(clockOut))
	return nil
}

func runClockActive(cmd *cobra.Command, args []string) error {
	client, err := remoteClient()
	if err != nil {
		return err
	}

	clocks, err := client.ActiveClocks(cmd.Context())
	if err != nil {
		return err
	}

	if clockActiveJSON {
		return printJSON(clocks)
	}
	if len(clocks) == 0 {
		fmt.Println("Not clocked in anywhere.")
		return nil
	}
	now := time.Now()
	for _, c := range clocks {
		fmt.Printf("%d %s since %s (%s)\n", c.JobID, c.JobName,
			ui.FormatClock(c.ClockIn), formatTaskHours(now.Sub(c.ClockIn)))
	}
	return nil
}
