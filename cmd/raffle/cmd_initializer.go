package main

import (
	"crypto/ed25519"

	"github.com/spf13/cobra"

	"github.com/code-payments/raffle-client/pkg/keyring"
	"github.com/code-payments/raffle-client/pkg/raffle"
	"github.com/code-payments/raffle-client/pkg/solana"
)

func init() {
	var params raffle.InitRaffleParams
	var requirementMint string
	var feeToPool []string

	initRaffleCmd := signedCommand("init-raffle", "Create the next raffle", keyring.OrganizerKey, func(cmd *cobra.Command, initializer ed25519.PrivateKey, _ []string) (solana.Signature, error) {
		if len(requirementMint) > 0 {
			mint, err := publicKeyOrKey(cmd, "requirement mint", requirementMint)
			if err != nil {
				return solana.Signature{}, err
			}
			params.RequirementMint = mint
		}

		shares, err := parseUint64s("fee to pool share", feeToPool)
		if err != nil {
			return solana.Signature{}, err
		}
		params.TransferFeeToPool = shares

		sig, raffleNo, err := client.InitRaffle(cmd.Context(), initializer, &params)
		if sig != (solana.Signature{}) {
			getPrinter().Value("raffle_no", raffleNo)
		}
		return sig, err
	})

	flags := initRaffleCmd.Flags()
	flags.StringVar(&params.Name, "name", "", "Raffle name, at most 32 bytes")
	flags.BoolVar(&params.UnlimitedParticipants, "unlimited", false, "Allow unlimited participants")
	flags.BoolVar(&params.MultipleParticipation, "multiple-entry", false, "Allow a wallet to enter more than once")
	flags.StringVar(&params.ParticipationFee, "fee", "0", "Participation fee, in whole units of the fee type")
	flags.Uint64Var(&params.ParticipantsRequired, "participants", 0, "Participants required")
	flags.Uint64Var(&params.RaffleTime, "time", 0, "Raffle duration, in seconds")
	flags.Uint64Var(&params.ParticipationFeeType, "fee-type", 1, "Registered fee type number")
	flags.Uint64Var(&params.RewardType, "reward-type", 0, "Registered reward type number")
	flags.StringSliceVar(&params.Rewards, "reward", nil, "Reward per winner, in whole units of the reward type")
	flags.Uint64Var(&params.WinnerCount, "winners", 1, "Number of winners")
	flags.BoolVar(&params.IncreasingPool, "increasing-pool", false, "Grow the reward pool with participation fees")
	flags.StringSliceVar(&feeToPool, "fee-to-pool", nil, "Fee share moved into the pool, per winner")
	flags.StringVar(&requirementMint, "requirement-mint", "", "Mint that participants must hold")
	flags.StringVar(&params.RequirementAmount, "requirement-amount", "", "Amount of the requirement mint to hold")
	_ = initRaffleCmd.MarkFlagRequired("reward-type")
	rootCmd.AddCommand(initRaffleCmd)

	var collectRaffleNo uint64
	collectCmd := signedCommand("collect-fee-initializer", "Collect the initializer share of a raffle's fees", keyring.OrganizerKey, func(cmd *cobra.Command, initializer ed25519.PrivateKey, _ []string) (solana.Signature, error) {
		return client.CollectFeeInitializer(cmd.Context(), initializer, collectRaffleNo)
	})
	collectCmd.Flags().Uint64Var(&collectRaffleNo, "raffle", 0, "Raffle number")
	_ = collectCmd.MarkFlagRequired("raffle")
	rootCmd.AddCommand(collectCmd)

	var freezeRaffleNo, freezeX uint64
	var freezeParticipant string
	freezeCmd := signedCommand("freeze-test", "Exercise the program's fee mint freeze handling", keyring.OrganizerKey, func(cmd *cobra.Command, initializer ed25519.PrivateKey, _ []string) (solana.Signature, error) {
		participant, err := publicKeyOrKey(cmd, "participant", freezeParticipant)
		if err != nil {
			return solana.Signature{}, err
		}
		return client.FreezeTest(cmd.Context(), initializer, freezeRaffleNo, participant, freezeX)
	})
	freezeCmd.Flags().Uint64Var(&freezeRaffleNo, "raffle", 0, "Raffle number")
	freezeCmd.Flags().StringVar(&freezeParticipant, "participant", keyring.ParticipantKey(0), "Participant address or environment key name")
	freezeCmd.Flags().Uint64Var(&freezeX, "x", 0, "Diagnostic argument")
	_ = freezeCmd.MarkFlagRequired("raffle")
	rootCmd.AddCommand(freezeCmd)
}
