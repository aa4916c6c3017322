package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/routeviz/routeviz/client"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse stored route comparisons",
	}
	cmd.AddCommand(historyListCmd())
	cmd.AddCommand(historyGetCmd())
	cmd.AddCommand(historyPurgeCmd())
	return cmd
}

func summaryRows(routes []client.RouteSummary) [][]string {
	rows := make([][]string, 0, len(routes))
	for _, r := range routes {
		rows = append(rows, []string{
			r.ID,
			r.CreatedAt.Local().Format(time.DateTime),
			ftoa(r.DistanceMeters/1000, 2),
			itoa(int64(r.DijkstraExplored)),
			itoa(int64(r.AStarExplored)),
			ftoa(r.Efficiency, 1),
		})
	}
	return rows
}

var summaryHeaders = []string{"ID", "CREATED", "KM", "DIJKSTRA", "ASTAR", "SAVED %"}

func historyListCmd() *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent comparisons, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			routes, hasMore, err := apiClient.Routes.List(cmd.Context(), &client.ListOptions{Limit: limit, Offset: offset})
			if err != nil {
				return fmt.Errorf("history list: %w", err)
			}
			table := func() {
				formatTable(summaryHeaders, summaryRows(routes))
				if hasMore {
					fmt.Fprintf(stdout, "\nmore results: --offset %d\n", offset+len(routes))
				}
			}
			quiet := ""
			for i, r := range routes {
				if i > 0 {
					quiet += "\n"
				}
				quiet += r.ID
			}
			return output(map[string]any{"routes": routes, "has_more": hasMore}, table, quiet)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Max results")
	cmd.Flags().IntVar(&offset, "offset", 0, "Skip this many results")
	return cmd
}

func historyGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one stored comparison",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := apiClient.Routes.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("history get: %w", err)
			}
			table := func() { formatTable(summaryHeaders, summaryRows([]client.RouteSummary{*r})) }
			return output(r, table, r.ID)
		},
	}
}

func historyPurgeCmd() *cobra.Command {
	var (
		retentionDays int
		adminKey      string
	)
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete comparisons older than --retention-days (needs the server's ADMIN_API_KEY)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if retentionDays < 1 {
				return fmt.Errorf("--retention-days must be at least 1")
			}
			if adminKey == "" {
				adminKey = os.Getenv("ROUTEVIZ_ADMIN_KEY")
			}
			if adminKey == "" {
				return fmt.Errorf("history purge needs --admin-key or ROUTEVIZ_ADMIN_KEY")
			}
			admin := client.New(flagURL, client.WithUserAgent("routeviz-cli/"+version), client.WithAPIKey(adminKey))
			deleted, err := admin.Routes.Purge(cmd.Context(), retentionDays)
			if err != nil {
				return fmt.Errorf("history purge: %w", err)
			}
			table := func() { fmt.Fprintf(stdout, "deleted %d comparisons\n", deleted) }
			return output(map[string]int{"deleted": deleted}, table, itoa(int64(deleted)))
		},
	}
	cmd.Flags().IntVar(&retentionDays, "retention-days", 30, "Delete entries older than N days")
	cmd.Flags().StringVar(&adminKey, "admin-key", "", "Server admin key (env: ROUTEVIZ_ADMIN_KEY)")
	return cmd
}
