package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
)

func newKeygenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new wallet keypair",
		Long: `Generate a new secp256k1 keypair locally and print the address and
private key. The key never leaves this machine; keep it safe.`,
		RunE: runKeygen,
	}

	return cmd
}

func runKeygen(cmd *cobra.Command, args []string) error {
	key, err := crypto.GenerateKey()
	if err != nil {
		return fmt.Errorf("failed to generate key: %w", err)
	}

	addr := crypto.PubkeyToAddress(key.PublicKey)

	fmt.Printf("✅ Keypair generated!\n")
	fmt.Printf("Address: %s\n", addr.Hex())
	fmt.Printf("Private key: %s\n", hexutil.Encode(crypto.FromECDSA(key)))
	fmt.Printf("\nUse the address with other commands:\n")
	fmt.Printf("  socialhub-cli --address %s auth\n", addr.Hex())

	return nil
}
