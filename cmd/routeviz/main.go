package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/routeviz/routeviz/client"
)

// Build-time variables set via ldflags.
var (
	version   = "0.1.0"
	commit    = ""
	buildDate = ""
)

const defaultURL = "http://localhost:8080"

var (
	apiClient *client.Client
	flagURL   string
	flagFmt   string
)

func versionString() string {
	if commit != "" && buildDate != "" {
		return fmt.Sprintf("routeviz version %s (commit: %s, built: %s)", version, commit, buildDate)
	}
	return fmt.Sprintf("routeviz version %s-dev", version)
}

type configFile struct {
	Profiles      map[string]profileConfig `yaml:"profiles"`
	ActiveProfile string                   `yaml:"active_profile"`
}

type profileConfig struct {
	URL string `yaml:"url"`
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "routeviz",
		Short:   "routeviz CLI: compare Dijkstra and A* on a road graph",
		Version: versionString(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(flagFmt); err != nil {
				return err
			}
			resolveConfig()
			apiClient = client.New(flagURL, client.WithUserAgent("routeviz-cli/"+version))
			return nil
		},
		SilenceUsage: true,
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagURL, "url", defaultURL, "routeviz server URL (env: ROUTEVIZ_URL)")
	rootCmd.PersistentFlags().StringVar(&flagFmt, "format", "table", "Output format: json|table|quiet")

	// Commands that never talk to a server skip client setup.
	offline := func(cmd *cobra.Command, args []string) error { return validateFormat(flagFmt) }

	initCmd := newInitCmd()
	initCmd.PersistentPreRunE = offline
	localCmd := newLocalCmd()
	localCmd.PersistentPreRunE = offline

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(localCmd)
	rootCmd.AddCommand(newDoctorCmd())
	rootCmd.AddCommand(newRouteCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newGraphCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".routeviz", "config.yaml"), nil
}

// resolveConfig fills flagURL from, in order, the --url flag, ROUTEVIZ_URL,
// and the active profile in ~/.routeviz/config.yaml.
func resolveConfig() {
	if flagURL != defaultURL {
		return
	}
	if v := os.Getenv("ROUTEVIZ_URL"); v != "" {
		flagURL = v
		return
	}

	cfgPath, err := configPath()
	if err != nil {
		return
	}
	cfg, err := loadConfigFile(cfgPath)
	if err != nil {
		return
	}
	if u := cfg.activeURL(); u != "" {
		flagURL = u
	}
}

func loadConfigFile(path string) (*configFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *configFile) activeURL() string {
	name := c.ActiveProfile
	if name == "" {
		name = "default"
	}
	return c.Profiles[name].URL
}
