package main

import (
	"fmt"
	"os"

	"github.com/cloakzk/zkcircuit/calldata"
	"github.com/cloakzk/zkcircuit/integration"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
)

var sanitizeCmd = &cobra.Command{
	Use:   "sanitize [proof.json]",
	Short: "Prints a toolchain proof artifact as valid JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), integration.SanitizeProofJSON(string(data)))
		return nil
	},
}

var calldataCmd = &cobra.Command{
	Use:   "calldata [proof.json]",
	Short: "Encodes the check_verify call for a proof artifact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		proof, err := integration.ParseProof(data)
		if err != nil {
			return err
		}
		call, err := calldata.PackProof(proof)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hexutil.Encode(call))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sanitizeCmd)
	rootCmd.AddCommand(calldataCmd)
}
