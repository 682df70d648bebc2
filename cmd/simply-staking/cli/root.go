package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/spritzen-labs/simply-staking/internal/clients/stakingclient"
	"github.com/spritzen-labs/simply-staking/internal/config"
	"github.com/spritzen-labs/simply-staking/pkg"
)

const (
	defaultConfigFileName = "config.yml"
	defaultAPIURL         = "http://localhost:8090"
)

var (
	cfgPath       string
	apiURL        string
	callerAddress string
	clientTimeout time.Duration

	rootCmd = &cobra.Command{
		Use:           "simply-staking",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func Setup() error {
	homePath, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	defaultConfigPath := getDefaultConfigFile(homePath, defaultConfigFileName)

	rootCmd.AddCommand(StartServerCmd())
	rootCmd.AddCommand(TokenCmd())
	rootCmd.AddCommand(StakeCmd())
	rootCmd.AddCommand(UnstakeCmd())
	rootCmd.AddCommand(ClaimCmd())
	rootCmd.AddCommand(PositionCmd())
	rootCmd.AddCommand(ParamsCmd())
	rootCmd.AddCommand(SetParamsCmd())
	rootCmd.AddCommand(EventsCmd())

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath, fmt.Sprintf("config file (default %s)", defaultConfigPath))
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", pkg.Getenv("SIMPLY_STAKING_API_URL", defaultAPIURL), "base url of the staking api")
	rootCmd.PersistentFlags().StringVar(&callerAddress, "caller", pkg.Getenv("SIMPLY_STAKING_CALLER", ""), "address the request is made on behalf of")
	rootCmd.PersistentFlags().DurationVar(&clientTimeout, "timeout", 0, "api request timeout")

	return rootCmd.Execute()
}

func getDefaultConfigFile(homePath, filename string) string {
	return filepath.Join(homePath, filename)
}

func GetConfigPath() string {
	return cfgPath
}

func newClient() (*stakingclient.Client, error) {
	cfg := &config.ClientConfig{
		BaseURL: apiURL,
		Timeout: clientTimeout,
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid client config: %w", err)
	}
	return stakingclient.NewClient(cfg), nil
}

func requireCaller() (string, error) {
	if callerAddress == "" {
		return "", fmt.Errorf("--caller is required")
	}
	return callerAddress, nil
}
