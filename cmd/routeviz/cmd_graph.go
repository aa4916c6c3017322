package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/routeviz/routeviz/internal/geo"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Inspect the server's road graph",
	}
	cmd.AddCommand(graphStatsCmd())
	cmd.AddCommand(graphNearestCmd())
	cmd.AddCommand(graphNodeCmd())
	return cmd
}

func graphStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show node and edge counts and the bounding box",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := apiClient.Graph.Stats(cmd.Context())
			if err != nil {
				return fmt.Errorf("graph stats: %w", err)
			}
			table := func() {
				formatTable([]string{"SOURCE", "NODES", "EDGES", "MIN", "MAX"}, [][]string{{
					s.Source,
					itoa(int64(s.Nodes)),
					itoa(int64(s.Edges)),
					geo.Point{Lat: s.MinCorner.Lat, Lon: s.MinCorner.Lon}.String(),
					geo.Point{Lat: s.MaxCorner.Lat, Lon: s.MaxCorner.Lon}.String(),
				}})
			}
			return output(s, table, itoa(int64(s.Nodes)))
		},
	}
}

func graphNearestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nearest <lat,lon>",
		Short: "Snap a point to the closest graph node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := geo.ParsePoint(args[0])
			if err != nil {
				return err
			}
			res, err := apiClient.Graph.Nearest(cmd.Context(), toClientPoint(p))
			if err != nil {
				return fmt.Errorf("graph nearest: %w", err)
			}
			table := func() {
				formatTable([]string{"NODE", "POINT", "DISTANCE M"}, [][]string{{
					itoa(res.NodeID),
					geo.Point{Lat: res.Point.Lat, Lon: res.Point.Lon}.String(),
					ftoa(res.DistanceM, 1),
				}})
			}
			return output(res, table, itoa(res.NodeID))
		},
	}
}

func graphNodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "node <id>",
		Short: "Show a node and its outgoing arcs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("node id must be an integer: %w", err)
			}
			n, err := apiClient.Graph.Node(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("graph node: %w", err)
			}
			table := func() {
				rows := make([][]string, 0, len(n.Neighbors))
				for _, a := range n.Neighbors {
					length := ftoa(a.Length, 1)
					switch {
					case a.Blocked:
						length = "blocked"
					case a.Missing:
						length = "missing"
					}
					rows = append(rows, []string{itoa(a.To), length, a.Name, a.Highway})
				}
				formatTable([]string{"TO", "LENGTH M", "NAME", "HIGHWAY"}, rows)
			}
			return output(n, table, itoa(n.ID))
		},
	}
}
