// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/un-design/db"
	"github.com/danielhkuo/un-design/models"
)

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "Inspect saved result snapshots",
	Long:  "List and show result snapshots taken from the admin dashboard without running the server.",
}

var snapshotsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all snapshots, newest first",
	Args:  cobra.NoArgs,
	RunE:  runSnapshotsList,
}

var snapshotsShowCmd = &cobra.Command{
	Use:   "show <snapshot-id>",
	Short: "Print a snapshot as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotsShow,
}

func init() {
	snapshotsCmd.AddCommand(snapshotsListCmd)
	snapshotsCmd.AddCommand(snapshotsShowCmd)
}

func runSnapshotsList(cmd *cobra.Command, args []string) error {
	conn, err := openDatabase()
	if err != nil {
		return err
	}
	defer conn.Close()

	snaps, err := db.ListSnapshots(cmd.Context(), conn)
	if err != nil {
		return fmt.Errorf("list snapshots: %w", err)
	}
	return writeSnapshotTable(cmd.OutOrStdout(), snaps)
}

func runSnapshotsShow(cmd *cobra.Command, args []string) error {
	conn, err := openDatabase()
	if err != nil {
		return err
	}
	defer conn.Close()

	snap, err := db.GetSnapshot(cmd.Context(), conn, args[0])
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), snap)
}

func writeSnapshotTable(out io.Writer, snaps []models.SnapshotSummary) error {
	if len(snaps) == 0 {
		fmt.Fprintln(out, "No snapshots found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTAKEN\tPROPOSALS")
	for _, s := range snaps {
		fmt.Fprintf(w, "%s\t%s\t%d\n", s.ID, s.ComputedAt.Format("2006-01-02 15:04"), s.ProposalCount)
	}
	return w.Flush()
}

// printJSON marshals v to indented JSON
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
