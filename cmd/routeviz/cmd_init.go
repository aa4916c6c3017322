package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/routeviz/routeviz/client"
)

// stdin is swapped in tests.
var stdin io.Reader = os.Stdin

func newInitCmd() *cobra.Command {
	var (
		initURL     string
		skipConnect bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Set up routeviz CLI configuration",
		Long:  "Interactive setup that creates ~/.routeviz/config.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(initURL, initURL != "", skipConnect)
		},
	}

	cmd.Flags().StringVar(&initURL, "server", "", "Server URL (non-interactive mode)")
	cmd.Flags().BoolVar(&skipConnect, "skip-check", false, "Do not test the connection before saving")
	return cmd
}

func runInit(url string, nonInteractive, skipConnect bool) error {
	if !nonInteractive {
		fmt.Fprintln(stdout, "\n  routeviz setup")
		fmt.Fprintln(stdout)
		fmt.Fprintf(stdout, "  Server URL [%s]: ", defaultURL)

		line, _ := bufio.NewReader(stdin).ReadString('\n')
		url = strings.TrimSpace(line)
	}

	if url == "" {
		url = defaultURL
	}

	if !skipConnect {
		ver, err := testConnection(url)
		if err != nil {
			return fmt.Errorf("connection failed: %w", err)
		}
		fmt.Fprintf(stdout, "Connected to routeviz %s\n", ver)
	}

	cfgPath, err := writeConfig(url)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Fprintf(stdout, "Config saved to %s\n", cfgPath)
	if !nonInteractive {
		fmt.Fprintln(stdout, "\n  Next steps:")
		fmt.Fprintln(stdout, "    routeviz doctor                       # check the server")
		fmt.Fprintln(stdout, "    routeviz route 45.07,7.68 45.06,7.66  # compare a route")
	}

	return nil
}

func testConnection(url string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	health, err := client.New(url).Health(ctx)
	if err != nil {
		return "", err
	}
	if health.Version == "" {
		return "unknown", nil
	}
	return health.Version, nil
}

// writeConfig stores url as the default profile, keeping any other profiles.
func writeConfig(url string) (string, error) {
	cfgPath, err := configPath()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o700); err != nil {
		return "", err
	}

	cfg, err := loadConfigFile(cfgPath)
	if err != nil {
		cfg = &configFile{}
	}
	if cfg.Profiles == nil {
		cfg.Profiles = map[string]profileConfig{}
	}
	cfg.Profiles["default"] = profileConfig{URL: url}
	if cfg.ActiveProfile == "" {
		cfg.ActiveProfile = "default"
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(cfgPath, data, 0o600); err != nil {
		return "", err
	}

	return cfgPath, nil
}
