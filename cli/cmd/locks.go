package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	v1 "lockstats/pkg/gen/lockstats/v1"
	"lockstats/pkg/table"
	"lockstats/pkg/x"
)

// locksCmd represents the locks command
var locksCmd = &cobra.Command{
	Use:     "locks",
	Aliases: []string{"l", "ls"},
	Short:   "List known locks",
	Long: `List every lock the server has seen, most recently gained first.
The ID column is the task ID accepted by the history command.`,
	Example: `  lockstats locks
  lockstats locks --sort lockcount
  lockstats ls -o yaml --all`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, output, err := pageFlags(cmd)
		if err != nil {
			return err
		}
		return listLocks(cmd.Context(), &v1.ListLocksRequest{
			Page:     req.Page,
			PageSize: req.PageSize,
			Sort:     req.Sort,
			Desc:     req.Desc,
			All:      req.All,
			Language: req.Language,
			Timezone: req.Timezone,
		}, output)
	},
}

func init() {
	rootCmd.AddCommand(locksCmd)
	addPageFlags(locksCmd)
}

// listLocks retrieves and prints the lock overview
func listLocks(ctx context.Context, req *v1.ListLocksRequest, output string) error {
	client, err := createClient(address)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	slog.Debug("Sending ListLocks request to server")
	resp, err := client.ListLocks(ctx, connect.NewRequest(req))
	if err != nil {
		return fmt.Errorf("failed to list locks: %w", err)
	}
	return printPage(resp.Msg.Table, output)
}

// printPage prints a page in the requested format, with a paging summary
// after terminal tables.
func printPage(page *table.Page, output string) error {
	if page == nil {
		return fmt.Errorf("server returned no table")
	}
	slog.Info("Printing output", "format", output, "rows", len(page.Rows))
	if err := x.PrintPage(os.Stdout, page, output); err != nil {
		return err
	}
	if output == x.OutputTable {
		x.PrintSummary(os.Stdout, page)
	}
	return nil
}
