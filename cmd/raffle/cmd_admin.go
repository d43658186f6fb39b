package main

import (
	"crypto/ed25519"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/code-payments/raffle-client/pkg/keyring"
	"github.com/code-payments/raffle-client/pkg/raffle"
	"github.com/code-payments/raffle-client/pkg/solana"
)

// authorityCommand is a command signed by one of the configured authorities.
func authorityCommand(use, short string, run signedRun) *cobra.Command {
	return signedCommand(use, short, keyring.AuthorityKey(0), run)
}

// authoritySet resolves the four configured authorities, either from
// explicit addresses or from the AUTH_n environment keys.
func authoritySet(cmd *cobra.Command, addresses []string) ([keyring.AuthorityCount]ed25519.PublicKey, error) {
	var res [keyring.AuthorityCount]ed25519.PublicKey

	if len(addresses) > 0 {
		if len(addresses) != keyring.AuthorityCount {
			return res, errors.Wrapf(raffle.ErrInvalidArgument, "expected %d authorities, got %d", keyring.AuthorityCount, len(addresses))
		}
		keys, err := parsePublicKeys("authority", addresses)
		if err != nil {
			return res, err
		}
		copy(res[:], keys)
		return res, nil
	}

	kr, err := loadKeys(cmd.Context())
	if err != nil {
		return res, err
	}
	return kr.AuthorityPublicKeys(), nil
}

func init() {
	var initConfigAuthorities []string
	initConfigCmd := authorityCommand("init-config", "Bootstrap the authority set", func(cmd *cobra.Command, authority ed25519.PrivateKey, _ []string) (solana.Signature, error) {
		authorities, err := authoritySet(cmd, initConfigAuthorities)
		if err != nil {
			return solana.Signature{}, err
		}
		return client.InitConfig(cmd.Context(), authority, authorities)
	})
	initConfigCmd.Flags().StringSliceVar(&initConfigAuthorities, "authority", nil, "Authority addresses, in order (defaults to AUTH_0..AUTH_3)")
	rootCmd.AddCommand(initConfigCmd)

	var setConfigAuthorities []string
	setConfigCmd := authorityCommand("set-config", "Replace the authority set", func(cmd *cobra.Command, authority ed25519.PrivateKey, _ []string) (solana.Signature, error) {
		authorities, err := authoritySet(cmd, setConfigAuthorities)
		if err != nil {
			return solana.Signature{}, err
		}
		return client.SetConfig(cmd.Context(), authority, authorities)
	})
	setConfigCmd.Flags().StringSliceVar(&setConfigAuthorities, "authority", nil, "Authority addresses, in order (defaults to AUTH_0..AUTH_3)")
	rootCmd.AddCommand(setConfigCmd)

	rootCmd.AddCommand(authorityCommand("init-term", "Create the term record", func(cmd *cobra.Command, authority ed25519.PrivateKey, _ []string) (solana.Signature, error) {
		return client.InitTerm(cmd.Context(), authority)
	}))

	rootCmd.AddCommand(authorityCommand("init-counter", "Create the raffle counter", func(cmd *cobra.Command, authority ed25519.PrivateKey, _ []string) (solana.Signature, error) {
		return client.InitCounter(cmd.Context(), authority)
	}))

	rootCmd.AddCommand(authorityCommand("init-fee-collector", "Create the fee collector", func(cmd *cobra.Command, authority ed25519.PrivateKey, _ []string) (solana.Signature, error) {
		return client.InitFeeCollector(cmd.Context(), authority)
	}))

	var terms raffle.TermParams
	updateTermsCmd := authorityCommand("update-terms", "Set the fee percent, expiration and winner cap", func(cmd *cobra.Command, authority ed25519.PrivateKey, _ []string) (solana.Signature, error) {
		return client.UpdateTerms(cmd.Context(), authority, &terms)
	})
	updateTermsCmd.Flags().Uint64Var(&terms.FeePercent, "fee-percent", 0, "Program fee percent")
	updateTermsCmd.Flags().Uint64Var(&terms.ExpirationTime, "expiration-time", 0, "Raffle expiration time, in seconds")
	updateTermsCmd.Flags().Uint64Var(&terms.MaximumWinnerCount, "maximum-winner-count", 0, "Maximum winners per raffle")
	rootCmd.AddCommand(updateTermsCmd)

	rootCmd.AddCommand(authorityCommand("collect-fee", "Sweep native fees from the fee collector", func(cmd *cobra.Command, authority ed25519.PrivateKey, _ []string) (solana.Signature, error) {
		return client.CollectFee(cmd.Context(), authority)
	}))

	collectFeeTokenCmd := authorityCommand("collect-fee-token <mint>", "Sweep token fees from the fee collector", func(cmd *cobra.Command, authority ed25519.PrivateKey, args []string) (solana.Signature, error) {
		mint, err := publicKeyOrKey(cmd, "mint", args[0])
		if err != nil {
			return solana.Signature{}, err
		}
		return client.CollectFeeToken(cmd.Context(), authority, mint)
	})
	collectFeeTokenCmd.Args = cobra.ExactArgs(1)
	rootCmd.AddCommand(collectFeeTokenCmd)

	rootCmd.AddCommand(typeCommand("init-fee-type", "Register a participation fee type", initFeeType))
	rootCmd.AddCommand(typeCommand("init-reward-type", "Register a reward type", initRewardType))

	closeAccountsCmd := authorityCommand("close-accounts <address>...", "Reclaim rent from program accounts", func(cmd *cobra.Command, authority ed25519.PrivateKey, args []string) (solana.Signature, error) {
		targets, err := parsePublicKeys("account", args)
		if err != nil {
			return solana.Signature{}, err
		}
		return client.CloseAccounts(cmd.Context(), authority, targets)
	})
	closeAccountsCmd.Args = cobra.MinimumNArgs(1)
	rootCmd.AddCommand(closeAccountsCmd)

	var chooseRaffleNo, chooseLimit uint64
	chooseWinnerCmd := authorityCommand("choose-winner", "Draw the winners of a raffle", func(cmd *cobra.Command, authority ed25519.PrivateKey, _ []string) (solana.Signature, error) {
		return client.ChooseWinner(cmd.Context(), authority, chooseRaffleNo, chooseLimit)
	})
	chooseWinnerCmd.Flags().Uint64Var(&chooseRaffleNo, "raffle", 0, "Raffle number")
	chooseWinnerCmd.Flags().Uint64Var(&chooseLimit, "limit", 0, "Call limit forwarded to the program")
	_ = chooseWinnerCmd.MarkFlagRequired("raffle")
	rootCmd.AddCommand(chooseWinnerCmd)

	var publishRaffleNo uint64
	publishWinnersCmd := authorityCommand("publish-winners", "Publish the drawn winners of a raffle", func(cmd *cobra.Command, authority ed25519.PrivateKey, _ []string) (solana.Signature, error) {
		return client.PublishWinners(cmd.Context(), authority, publishRaffleNo)
	})
	publishWinnersCmd.Flags().Uint64Var(&publishRaffleNo, "raffle", 0, "Raffle number")
	_ = publishWinnersCmd.MarkFlagRequired("raffle")
	rootCmd.AddCommand(publishWinnersCmd)
}

type typeBuilder func(cmd *cobra.Command, authority ed25519.PrivateKey, params *raffle.TypeParams) (solana.Signature, error)

func initFeeType(cmd *cobra.Command, authority ed25519.PrivateKey, params *raffle.TypeParams) (solana.Signature, error) {
	return client.InitFeeType(cmd.Context(), authority, params)
}

func initRewardType(cmd *cobra.Command, authority ed25519.PrivateKey, params *raffle.TypeParams) (solana.Signature, error) {
	return client.InitRewardType(cmd.Context(), authority, params)
}

// typeCommand registers a fee or reward type. Decimals default to those of
// the mint.
func typeCommand(use, short string, build typeBuilder) *cobra.Command {
	var no uint64
	var mint string
	var decimals uint8

	cmd := authorityCommand(use, short, func(cmd *cobra.Command, authority ed25519.PrivateKey, _ []string) (solana.Signature, error) {
		mintKey, err := publicKeyOrKey(cmd, "mint", mint)
		if err != nil {
			return solana.Signature{}, err
		}

		params := &raffle.TypeParams{No: no, Mint: mintKey}
		if cmd.Flags().Changed("decimals") {
			params.Decimals = &decimals
		}
		return build(cmd, authority, params)
	})
	cmd.Flags().Uint64Var(&no, "no", 0, "Type number")
	cmd.Flags().StringVar(&mint, "mint", "", "Mint address or environment key name")
	cmd.Flags().Uint8Var(&decimals, "decimals", 0, "Decimals recorded for the type")
	_ = cmd.MarkFlagRequired("no")
	_ = cmd.MarkFlagRequired("mint")
	return cmd
}
