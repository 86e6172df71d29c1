package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloakzk/zkcircuit/integration"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build [circuit.code...]",
	Short: "Compiles circuits and exports their verifier contracts",
	Long: "Compiles every given circuit source with the toolchain, runs the setup and exports the verifier.\n" +
		"The verifier of circuit <name>.code is written to <out>/<name>_verifier.sol, its proving artifacts stay in <out>/<name>_zok.\n" +
		"Circuits are built concurrently, bounded by the configured concurrency.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := orchestrator()
		if err != nil {
			return err
		}
		circuits := make([]integration.Circuit, len(args))
		for i, path := range args {
			src, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			circuits[i] = integration.Circuit{Name: name, Source: string(src)}
		}
		res, err := o.BuildAll(cmd.Context(), circuits)
		if err != nil {
			return err
		}
		for _, r := range res {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", r.Name, r.ContractPath, r.WorkDir)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
