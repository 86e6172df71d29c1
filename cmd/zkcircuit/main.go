package main

import (
	"os"
	"path/filepath"

	"github.com/cloakzk/zkcircuit/integration"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	fConfig  string
	fBinary  string
	fOutDir  string
	fScheme  string
	fVerbose bool
	fQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:          "zkcircuit",
	Short:        "Builds verifier contracts and proofs for privacy circuits",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		switch {
		case fQuiet:
			zerolog.SetGlobalLevel(zerolog.Disabled)
		case fVerbose:
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		default:
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&fConfig, "config", "", "YAML configuration file")
	pf.StringVar(&fBinary, "binary", "", "toolchain executable (default $ZOKRATES_ROOT/zokrates)")
	pf.StringVar(&fOutDir, "out", "", "output directory")
	pf.StringVar(&fScheme, "scheme", "", "proving scheme")
	pf.BoolVarP(&fVerbose, "verbose", "v", false, "log every toolchain step")
	pf.BoolVarP(&fQuiet, "quiet", "q", false, "disable logging")
}

// loadConfig reads --config, if any, and applies the flag overrides.
func loadConfig() (integration.Config, error) {
	cfg := integration.DefaultConfig()
	if fConfig != "" {
		var err error
		if cfg, err = integration.ReadConfig(fConfig); err != nil {
			return cfg, err
		}
	}
	if fBinary != "" {
		cfg.Binary = fBinary
	}
	if cfg.Binary == "" {
		if root := os.Getenv("ZOKRATES_ROOT"); root != "" {
			cfg.Binary = filepath.Join(root, "zokrates")
		}
	}
	if fOutDir != "" {
		cfg.OutputDir = fOutDir
	}
	if fScheme != "" {
		cfg.Scheme = fScheme
	}
	return cfg, cfg.Validate()
}

func orchestrator() (*integration.Orchestrator, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return integration.New(cfg)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
