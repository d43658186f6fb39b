package main

import (
	"crypto/ed25519"

	"github.com/spf13/cobra"

	"github.com/code-payments/raffle-client/pkg/keyring"
	"github.com/code-payments/raffle-client/pkg/solana"
	"github.com/code-payments/raffle-client/pkg/solana/token"
)

// Token fixtures for bootstrapping a test cluster.
func init() {
	var mintKey string
	var decimals uint8
	var token2022 bool
	createMintCmd := signedCommand("create-mint", "Create a mint whose authority is the signer", keyring.OrganizerKey, func(cmd *cobra.Command, payer ed25519.PrivateKey, _ []string) (solana.Signature, error) {
		mint, err := signer(cmd, mintKey)
		if err != nil {
			return solana.Signature{}, err
		}

		tokenProgram := token.ProgramKey
		if token2022 {
			tokenProgram = token.Program2022Key
		}
		return client.CreateMint(cmd.Context(), payer, mint, tokenProgram, decimals)
	})
	createMintCmd.Flags().StringVar(&mintKey, "mint-key", keyring.RewardMintKey, "Environment key of the new mint account")
	createMintCmd.Flags().Uint8Var(&decimals, "decimals", 6, "Mint decimals")
	createMintCmd.Flags().BoolVar(&token2022, "token-2022", false, "Create the mint under the Token-2022 program")
	rootCmd.AddCommand(createMintCmd)

	var mintToMint, mintToOwner, mintToAmount string
	mintToCmd := signedCommand("mint-to", "Mint tokens into a wallet's associated account", keyring.OrganizerKey, func(cmd *cobra.Command, payer ed25519.PrivateKey, _ []string) (solana.Signature, error) {
		mint, err := publicKeyOrKey(cmd, "mint", mintToMint)
		if err != nil {
			return solana.Signature{}, err
		}
		owner, err := publicKeyOrKey(cmd, "owner", mintToOwner)
		if err != nil {
			return solana.Signature{}, err
		}
		return client.MintTo(cmd.Context(), payer, mint, owner, mintToAmount)
	})
	mintToCmd.Flags().StringVar(&mintToMint, "mint", keyring.RewardMintKey, "Mint address or environment key name")
	mintToCmd.Flags().StringVar(&mintToOwner, "owner", keyring.ParticipantKey(0), "Owner address or environment key name")
	mintToCmd.Flags().StringVar(&mintToAmount, "amount", "", "Amount, in whole units")
	_ = mintToCmd.MarkFlagRequired("amount")
	rootCmd.AddCommand(mintToCmd)

	var airdropLamports uint64
	airdropCmd := &cobra.Command{
		Use:   "airdrop <wallet>",
		Short: "Request native lamports on a test cluster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wallet, err := publicKeyOrKey(cmd, "wallet", args[0])
			if err != nil {
				return err
			}

			sig, err := client.Airdrop(cmd.Context(), wallet, airdropLamports)
			if sig != (solana.Signature{}) {
				getPrinter().Signature(cmd.Name(), sig)
			}
			return err
		},
	}
	airdropCmd.Flags().Uint64Var(&airdropLamports, "lamports", 1_000_000_000, "Lamports to request")
	rootCmd.AddCommand(airdropCmd)
}
