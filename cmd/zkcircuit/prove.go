package main

import (
	"encoding/json"
	"fmt"

	"github.com/cloakzk/zkcircuit/calldata"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
)

var fCalldata bool

var proveCmd = &cobra.Command{
	Use:   "prove [work dir] [witness args...]",
	Short: "Generates a proof in a work directory created by build",
	Long: "Computes the witness from the given arguments, in circuit parameter order, and generates a proof.\n" +
		"Prints the sanitized proof, or the encoded check_verify call with --calldata.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := orchestrator()
		if err != nil {
			return err
		}
		proof, err := o.Prove(cmd.Context(), args[0], args[1:])
		if err != nil {
			return err
		}
		if fCalldata {
			data, err := calldata.PackProof(proof)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hexutil.Encode(data))
			return nil
		}
		out, err := json.MarshalIndent(proof.Raw, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	proveCmd.Flags().BoolVar(&fCalldata, "calldata", false, "print the check_verify calldata instead of the proof")
	rootCmd.AddCommand(proveCmd)
}
