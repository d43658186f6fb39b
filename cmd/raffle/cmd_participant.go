package main

import (
	"crypto/ed25519"

	"github.com/spf13/cobra"

	"github.com/code-payments/raffle-client/pkg/keyring"
	"github.com/code-payments/raffle-client/pkg/solana"
)

func init() {
	var joinRaffleNo uint64
	joinCmd := signedCommand("join-raffle", "Enter a raffle", keyring.ParticipantKey(0), func(cmd *cobra.Command, participant ed25519.PrivateKey, _ []string) (solana.Signature, error) {
		sig, id, err := client.JoinRaffle(cmd.Context(), participant, joinRaffleNo)
		if sig != (solana.Signature{}) {
			getPrinter().Value("participation", id.String())
		}
		return sig, err
	})
	joinCmd.Flags().Uint64Var(&joinRaffleNo, "raffle", 0, "Raffle number")
	_ = joinCmd.MarkFlagRequired("raffle")
	rootCmd.AddCommand(joinCmd)

	var claimRaffleNo, claimParticipantNo uint64
	claimCmd := signedCommand("claim-prize", "Claim a winning entry's prize", keyring.ParticipantKey(0), func(cmd *cobra.Command, winner ed25519.PrivateKey, _ []string) (solana.Signature, error) {
		return client.ClaimPrize(cmd.Context(), winner, claimRaffleNo, claimParticipantNo)
	})
	claimCmd.Flags().Uint64Var(&claimRaffleNo, "raffle", 0, "Raffle number")
	claimCmd.Flags().Uint64Var(&claimParticipantNo, "participant-no", 0, "Winning participant number, required for multiple entry raffles")
	_ = claimCmd.MarkFlagRequired("raffle")
	rootCmd.AddCommand(claimCmd)
}
