package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	v1 "lockstats/pkg/gen/lockstats/v1"
	"lockstats/pkg/x"
)

// historyCmd represents the history command for locks
var historyCmd = &cobra.Command{
	Use:     "history --id <task_id>",
	Aliases: []string{"h", "log"},
	Short:   "Get the lock history of a specific task",
	Long: `Retrieve and display the lock acquisition history of a task by its ID.
Each row is one recorded hold: the resource, the average hold time, how many
acquisitions it covers, the host and process, and when it was gained and released.
You can specify the output format as table (default), csv, tsv, json, yaml or xlsx.
Use --all to fetch every row with raw epoch and second values.`,
	Example: `  lockstats history --id 123
  lockstats history --id 123 --sort duration --page 2
  lockstats history --id 456 --output json --all
  lockstats h -i 789 -o csv --all > history.csv`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetUint32("id")
		if id == 0 {
			return fmt.Errorf("--id flag is required and must be a positive integer")
		}
		req, output, err := pageFlags(cmd)
		if err != nil {
			return err
		}
		return getLockHistory(cmd.Context(), &v1.GetLockHistoryRequest{
			TaskId:   id,
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
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().Uint32P("id", "i", 0, "ID of the task (required)")
	historyCmd.MarkFlagRequired("id")
	addPageFlags(historyCmd)
}

// getLockHistory retrieves and prints the lock history of a task
func getLockHistory(ctx context.Context, req *v1.GetLockHistoryRequest, output string) error {
	client, err := createClient(address)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	slog.Debug("Sending GetLockHistory request to server", "task_id", req.TaskId)
	resp, err := client.GetLockHistory(ctx, connect.NewRequest(req))
	if err != nil {
		return fmt.Errorf("failed to get lock history: %w", err)
	}
	return printPage(resp.Msg.Table, output)
}

// addPageFlags registers the paging and output flags shared by table commands.
func addPageFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", x.OutputTable, "Output format ("+strings.Join(x.OutputFormats(), ", ")+")")
	cmd.Flags().Bool("all", false, "Fetch every row with raw values")
	cmd.Flags().Int32P("page", "p", 1, "Page to show, starting at 1")
	cmd.Flags().Int32("page-size", 0, "Rows per page (server default when 0)")
	cmd.Flags().StringP("sort", "s", "", "Column to sort by")
	cmd.Flags().Bool("asc", false, "Sort ascending")
	cmd.Flags().String("lang", "", "Language of headers and durations (en, de, fr)")
	cmd.Flags().String("timezone", "", "Time zone for dates, e.g. Europe/Berlin")
}

type pageRequest struct {
	Page     int32
	PageSize int32
	Sort     string
	Desc     bool
	All      bool
	Language string
	Timezone string
}

func pageFlags(cmd *cobra.Command) (pageRequest, string, error) {
	flags := cmd.Flags()
	output, _ := flags.GetString("output")
	page, _ := flags.GetInt32("page")
	if page < 1 {
		return pageRequest{}, "", fmt.Errorf("--page must be at least 1")
	}
	pageSize, _ := flags.GetInt32("page-size")
	sort, _ := flags.GetString("sort")
	asc, _ := flags.GetBool("asc")
	all, _ := flags.GetBool("all")
	lang, _ := flags.GetString("lang")
	tz, _ := flags.GetString("timezone")
	return pageRequest{
		Page:     page - 1,
		PageSize: pageSize,
		Sort:     sort,
		Desc:     !asc,
		All:      all,
		Language: lang,
		Timezone: tz,
	}, output, nil
}
