package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/routeviz/routeviz/internal/geo"
	"github.com/routeviz/routeviz/internal/models"
	"github.com/routeviz/routeviz/internal/roadgraph"
	"github.com/routeviz/routeviz/internal/service"
)

func newLocalCmd() *cobra.Command {
	var (
		graphFormat string
		parallel    string
		sampleStep  int
	)
	cmd := &cobra.Command{
		Use:   "local <graph-file> <lat,lon> <lat,lon>",
		Short: "Compare Dijkstra and A* on a local GraphML or OSM file, no server needed",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parsePoints(args[1:])
			if err != nil {
				return err
			}
			format, err := roadgraph.ParseFormat(graphFormat)
			if err != nil {
				return err
			}
			policy, err := roadgraph.ParseParallelPolicy(parallel)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			res, err := runLocal(ctx, args[0], format, policy, sampleStep, start, end)
			if err != nil {
				return err
			}
			return output(res, func() { printComparison(viewFromModel(res)) }, res.Distance)
		},
	}
	cmd.Flags().StringVar(&graphFormat, "graph-format", "auto", "Input format: auto|graphml|osm")
	cmd.Flags().StringVar(&parallel, "parallel", "min", "Parallel edge policy: min|first")
	cmd.Flags().IntVar(&sampleStep, "sample-step", service.DefaultSampleStep, "Keep every Nth explored node in traces")
	return cmd
}

func runLocal(
	ctx context.Context, path string, format roadgraph.Format, policy roadgraph.ParallelPolicy,
	sampleStep int, start, end geo.Point,
) (*models.RouteComparison, error) {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)

	g, err := roadgraph.LoadFile(ctx, path, format, roadgraph.WithParallelPolicy(policy))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	svc := service.NewRouteService(roadgraph.Static(g), nil, nil, sampleStep, log)

	return svc.Compare(ctx, start, end)
}

func viewFromModel(r *models.RouteComparison) comparisonView {
	return comparisonView{
		ID:         r.ID.String(),
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
