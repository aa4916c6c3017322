package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/routeviz/routeviz/client"
	"github.com/routeviz/routeviz/internal/geo"
)

// comparisonView is the table rendering of a comparison, shared by the
// server-backed and local commands.
type comparisonView struct {
	ID         string
	StartNode  int64
	EndNode    int64
	Distance   string
	Efficiency float64
	Runs       []runView
}

type runView struct {
	Algorithm  string
	Explored   int
	PathNodes  int
	DurationMS float64
}

func printComparison(v comparisonView) {
	rows := make([][]string, 0, len(v.Runs))
	for _, r := range v.Runs {
		rows = append(rows, []string{
			r.Algorithm,
			itoa(int64(r.Explored)),
			itoa(int64(r.PathNodes)),
			ftoa(r.DurationMS, 3),
		})
	}
	formatTable([]string{"ALGORITHM", "EXPLORED", "PATH NODES", "MS"}, rows)
	fmt.Fprintf(stdout, "\nroute %d -> %d: %s, A* explored %s%% fewer nodes\n",
		v.StartNode, v.EndNode, v.Distance, ftoa(v.Efficiency, 1))
}

func viewFromClient(r *client.RouteComparison) comparisonView {
	return comparisonView{
		ID:         r.ID,
		StartNode:  r.StartNode,
		EndNode:    r.EndNode,
		Distance:   r.Distance,
		Efficiency: r.Efficiency,
		Runs: []runView{
			{r.Dijkstra.Algorithm, r.Dijkstra.Explored, len(r.Dijkstra.Path), r.Dijkstra.DurationMS},
			{r.AStar.Algorithm, r.AStar.Explored, len(r.AStar.Path), r.AStar.DurationMS},
		},
	}
}

// parsePoints parses the two lat,lon positional arguments.
func parsePoints(args []string) (geo.Point, geo.Point, error) {
	start, err := geo.ParsePoint(args[0])
	if err != nil {
		return geo.Point{}, geo.Point{}, fmt.Errorf("start: %w", err)
	}
	end, err := geo.ParsePoint(args[1])
	if err != nil {
		return geo.Point{}, geo.Point{}, fmt.Errorf("end: %w", err)
	}
	return start, end, nil
}

func toClientPoint(p geo.Point) client.Point {
	return client.Point{Lat: p.Lat, Lon: p.Lon}
}

func newRouteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "route <lat,lon> <lat,lon>",
		Short: "Compare Dijkstra and A* between two points on the server",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parsePoints(args)
			if err != nil {
				return err
			}
			result, err := apiClient.Routes.Compare(cmd.Context(), toClientPoint(start), toClientPoint(end))
			if err != nil {
				return fmt.Errorf("route: %w", err)
			}
			return output(result, func() { printComparison(viewFromClient(result)) }, result.Distance)
		},
	}
}
