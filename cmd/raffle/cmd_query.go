package main

import (
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/code-payments/raffle-client/pkg/raffle"
	raffle_program "github.com/code-payments/raffle-client/pkg/solana/raffle"
)

func init() {
	getCmd := &cobra.Command{
		Use:   "get",
		Short: "Read program state",
	}
	rootCmd.AddCommand(getCmd)

	getCmd.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Show the authority set",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := client.GetConfig(cmd.Context())
			if err != nil {
				return err
			}
			getPrinter().Account(config.Address, config.Account)
			return nil
		},
	})

	getCmd.AddCommand(&cobra.Command{
		Use:   "term",
		Short: "Show the program terms",
		RunE: func(cmd *cobra.Command, args []string) error {
			term, err := client.GetTerm(cmd.Context())
			if err != nil {
				return err
			}
			getPrinter().Account(term.Address, term.Account)
			return nil
		},
	})

	getCmd.AddCommand(&cobra.Command{
		Use:   "counter",
		Short: "Show the raffle counter",
		RunE: func(cmd *cobra.Command, args []string) error {
			counter, err := client.GetCounter(cmd.Context())
			if err != nil {
				return err
			}
			getPrinter().Account(counter.Address, counter.Account)
			return nil
		},
	})

	getCmd.AddCommand(&cobra.Command{
		Use:   "fee-collector",
		Short: "Show the fee collector and its native balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			feeCollector, err := client.GetFeeCollector(cmd.Context())
			if err != nil {
				return err
			}
			p := getPrinter()
			p.Account(feeCollector.Address, feeCollector.Account)
			p.Value("lamports", feeCollector.Lamports)
			return nil
		},
	})

	getCmd.AddCommand(&cobra.Command{
		Use:   "fee-types",
		Short: "List registered fee types",
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := client.GetAllFeeTypes(cmd.Context())
			if err != nil {
				return err
			}
			printTypes(types)
			return nil
		},
	})

	getCmd.AddCommand(&cobra.Command{
		Use:   "reward-types",
		Short: "List registered reward types",
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := client.GetAllRewardTypes(cmd.Context())
			if err != nil {
				return err
			}
			printTypes(types)
			return nil
		},
	})

	var scan bool
	raffleCmd := &cobra.Command{
		Use:   "raffle <raffle_no>",
		Short: "Show a raffle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raffleNo, err := parseUint64("raffle number", args[0])
			if err != nil {
				return err
			}

			var found *raffle.Raffle
			if scan {
				found, err = client.FindRaffle(cmd.Context(), raffleNo)
			} else {
				found, err = client.GetRaffle(cmd.Context(), raffleNo)
			}
			if err != nil {
				return err
			}
			getPrinter().Account(found.Address, found.Account)
			return nil
		},
	}
	raffleCmd.Flags().BoolVar(&scan, "scan", false, "Locate the raffle by program account scan")
	getCmd.AddCommand(raffleCmd)

	var state, initializer string
	rafflesCmd := &cobra.Command{
		Use:   "raffles",
		Short: "List raffles by state and/or initializer",
		RunE: func(cmd *cobra.Command, args []string) error {
			var raffles []*raffle.Raffle
			var err error

			switch {
			case len(initializer) > 0:
				key, keyErr := publicKeyOrKey(cmd, "initializer", initializer)
				if keyErr != nil {
					return keyErr
				}
				if len(state) > 0 {
					parsed, stateErr := raffle_program.ParseRaffleState(state)
					if stateErr != nil {
						return errors.Wrap(raffle.ErrInvalidArgument, stateErr.Error())
					}
					raffles, err = client.GetRafflesByInitializerAndState(cmd.Context(), key, parsed)
				} else {
					raffles, err = client.GetRafflesByInitializer(cmd.Context(), key)
				}
			case len(state) > 0:
				parsed, stateErr := raffle_program.ParseRaffleState(state)
				if stateErr != nil {
					return errors.Wrap(raffle.ErrInvalidArgument, stateErr.Error())
				}
				raffles, err = client.GetRafflesByState(cmd.Context(), parsed)
			default:
				return errors.Wrap(raffle.ErrInvalidArgument, "one of --state or --initializer is required")
			}
			if err != nil {
				return err
			}

			p := getPrinter()
			for _, found := range raffles {
				p.Account(found.Address, found.Account)
			}
			return nil
		},
	}
	rafflesCmd.Flags().StringVar(&state, "state", "", "Raffle state: active|finalized_unpublished|finalized_published")
	rafflesCmd.Flags().StringVar(&initializer, "initializer", "", "Initializer address or environment key name")
	getCmd.AddCommand(rafflesCmd)

	var participationsRaffleNo uint64
	var participationsWallet string
	participationsCmd := &cobra.Command{
		Use:   "participations",
		Short: "List participations of a raffle or a wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			var participations []*raffle.Participation
			var err error

			if len(participationsWallet) > 0 {
				wallet, keyErr := publicKeyOrKey(cmd, "wallet", participationsWallet)
				if keyErr != nil {
					return keyErr
				}
				participations, err = client.GetParticipationsByWallet(cmd.Context(), wallet)
			} else if cmd.Flags().Changed("raffle") {
				participations, err = client.GetParticipationsByRaffle(cmd.Context(), participationsRaffleNo)
			} else {
				return errors.Wrap(raffle.ErrInvalidArgument, "one of --raffle or --wallet is required")
			}
			if err != nil {
				return err
			}

			p := getPrinter()
			for _, participation := range participations {
				p.Account(participation.Address, participation.Account)
			}
			return nil
		},
	}
	participationsCmd.Flags().Uint64Var(&participationsRaffleNo, "raffle", 0, "Raffle number")
	participationsCmd.Flags().StringVar(&participationsWallet, "wallet", "", "Wallet address or environment key name")
	getCmd.AddCommand(participationsCmd)

	participationCmd := &cobra.Command{
		Use:   "participation <raffle_no> <participant_no>",
		Short: "Show a participation by its number",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raffleNo, err := parseUint64("raffle number", args[0])
			if err != nil {
				return err
			}
			participantNo, err := parseUint64("participant number", args[1])
			if err != nil {
				return err
			}

			participation, err := client.GetParticipationByNumber(cmd.Context(), raffleNo, participantNo)
			if err != nil {
				return err
			}
			getPrinter().Account(participation.Address, participation.Account)
			return nil
		},
	}
	getCmd.AddCommand(participationCmd)

	getCmd.AddCommand(&cobra.Command{
		Use:   "mint <mint>",
		Short: "Show a mint's token program and decimals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := publicKeyOrKey(cmd, "mint", args[0])
			if err != nil {
				return err
			}

			mint, err := client.GetMint(cmd.Context(), key)
			if err != nil {
				return err
			}
			p := getPrinter()
			p.Value("token_program", base58.Encode(mint.TokenProgram))
			p.Value("decimals", mint.Decimals)
			return nil
		},
	})

	getCmd.AddCommand(&cobra.Command{
		Use:   "balance <wallet> [mint]",
		Short: "Show a wallet's native balance, or its token balance for mint",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			wallet, err := publicKeyOrKey(cmd, "wallet", args[0])
			if err != nil {
				return err
			}

			if len(args) == 1 {
				lamports, err := client.GetNativeBalance(cmd.Context(), wallet)
				if err != nil {
					return err
				}
				getPrinter().Value("lamports", lamports)
				return nil
			}

			mint, err := publicKeyOrKey(cmd, "mint", args[1])
			if err != nil {
				return err
			}

			balance, mintInfo, err := client.GetTokenBalance(cmd.Context(), wallet, mint)
			if err != nil {
				return err
			}
			getPrinter().Value("balance", raffle.FromBaseUnits(balance, mintInfo.Decimals).String())
			return nil
		},
	})
}

func printTypes(types []*raffle.RewardFeeType) {
	p := getPrinter()
	for _, t := range types {
		p.Account(t.Address, t.Account)
	}
}
