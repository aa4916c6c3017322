package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/routeviz/routeviz/client"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration and server health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(apiClient)
		},
	}
}

type checkResult struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
	Hint   string `json:"hint,omitempty"`
}

func runDoctor(c *client.Client) error {
	var results []checkResult

	cfgPath, err := configPath()
	if err == nil {
		if _, err = loadConfigFile(cfgPath); err == nil {
			results = append(results, checkResult{Name: "Config file", Passed: true, Detail: cfgPath})
		}
	}
	if err != nil {
		// A missing config file is fine when --url or ROUTEVIZ_URL is used.
		results = append(results, checkResult{Name: "Config file", Passed: true, Detail: "not found, using " + flagURL})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	health, err := c.Health(ctx)
	if err != nil {
		results = append(results, checkResult{
			Name: "Server reachable", Passed: false, Detail: flagURL,
			Hint: fmt.Sprintf("Is routeviz-server running? Error: %v", err),
		})
		return reportDoctor(results)
	}
	results = append(results, checkResult{Name: "Server reachable", Passed: true, Detail: health.Version})

	graph := checkResult{Name: "Road graph", Passed: health.Graph == "loaded"}
	if graph.Passed {
		graph.Detail = fmt.Sprintf("%d nodes, %d edges", health.GraphNodes, health.GraphEdges)
	} else {
		graph.Detail = health.Graph
		graph.Hint = "The graph loads on the first request; check GRAPH_PATH in the server logs"
	}
	results = append(results, graph)

	switch health.Database {
	case "connected":
		results = append(results, checkResult{
			Name: "Route history", Passed: true, Detail: fmt.Sprintf("enabled, schema v%d", health.SchemaVersion),
		})
	case "not_configured":
		results = append(results, checkResult{Name: "Route history", Passed: true, Detail: "disabled (no DATABASE_URL)"})
	default:
		results = append(results, checkResult{
			Name: "Route history", Passed: false, Detail: health.Database,
			Hint: "The server cannot reach PostgreSQL; check DATABASE_URL",
		})
	}

	return reportDoctor(results)
}

func reportDoctor(results []checkResult) error {
	allPassed := true
	for _, r := range results {
		allPassed = allPassed && r.Passed
	}

	table := func() {
		rows := make([][]string, 0, len(results))
		for _, r := range results {
			status := "ok"
			if !r.Passed {
				status = "FAIL"
			}
			rows = append(rows, []string{status, r.Name, r.Detail, r.Hint})
		}
		formatTable([]string{"STATUS", "CHECK", "DETAIL", "HINT"}, rows)
	}

	quiet := "ok"
	if !allPassed {
		quiet = "fail"
	}

	if err := output(results, table, quiet); err != nil {
		return err
	}
	if !allPassed {
		return fmt.Errorf("doctor found issues")
	}
	return nil
}
