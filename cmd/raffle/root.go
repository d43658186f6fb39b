package main

import (
	"context"
	"crypto/ed25519"
	"os"
	"strconv"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/code-payments/raffle-client/pkg/app"
	"github.com/code-payments/raffle-client/pkg/journal"
	"github.com/code-payments/raffle-client/pkg/keyring"
	"github.com/code-payments/raffle-client/pkg/raffle"
	"github.com/code-payments/raffle-client/pkg/solana"
)

// rootCmd wires the CLI surface. Settings are loaded once before any
// subcommand runs. Signed commands also load the full keyring up front, so
// a missing key stops them before anything is built.
var rootCmd = &cobra.Command{
	Use:           "raffle",
	Short:         "Raffle program client",
	Long:          "Build, sign and submit raffle program transactions and inspect program state.",
	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setup(); err != nil {
			return err
		}
		if _, ok := cmd.Annotations[keysAnnotation]; ok {
			_, err := loadKeys(cmd.Context())
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		teardown()
	},
}

var (
	flagConfig string
	flagOutput string
)

var (
	client       *raffle.Client
	store        journal.Store
	keys         *keyring.Keyring
	closeJournal = func() {}
)

// keysAnnotation marks commands that need the keyring before they run.
const keysAnnotation = "raffle/keys"

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "raffle.yaml", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "text", "Output format: json|text")
}

func setup() error {
	config, err := app.LoadConfig(flagConfig)
	if err != nil {
		return err
	}

	app.ConfigureLogger(config, os.Stderr)

	store, closeJournal, err = app.OpenJournal(config)
	if err != nil {
		return err
	}

	client, err = app.NewClient(config, store)
	return err
}

func teardown() {
	closeJournal()
}

type signedRun func(cmd *cobra.Command, signer ed25519.PrivateKey, args []string) (solana.Signature, error)

// signedCommand runs a builder signed by an environment key, defaulting to
// defaultSigner, and prints the resulting signature. Rejected transactions
// still print theirs.
func signedCommand(use, short, defaultSigner string, run signedRun) *cobra.Command {
	var signerName string

	cmd := &cobra.Command{
		Use:         use,
		Short:       short,
		Annotations: map[string]string{keysAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := signer(cmd, signerName)
			if err != nil {
				return err
			}

			sig, err := run(cmd, key, args)
			if sig != (solana.Signature{}) {
				getPrinter().Signature(cmd.Name(), sig)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&signerName, "signer", defaultSigner, "Environment key of the signer")
	return cmd
}

// loadKeys reads the keyring from the environment once per process.
func loadKeys(ctx context.Context) (*keyring.Keyring, error) {
	if keys != nil {
		return keys, nil
	}

	kr, err := keyring.Load(ctx)
	if err != nil {
		return nil, err
	}
	keys = kr
	return keys, nil
}

// signer resolves the named key through the keyring.
func signer(cmd *cobra.Command, name string) (ed25519.PrivateKey, error) {
	kr, err := loadKeys(cmd.Context())
	if err != nil {
		return nil, err
	}
	return kr.Get(name)
}

func parsePublicKey(name, value string) (ed25519.PublicKey, error) {
	decoded, err := base58.Decode(value)
	if err != nil || len(decoded) != ed25519.PublicKeySize {
		return nil, errors.Wrapf(raffle.ErrInvalidArgument, "invalid %s %q", name, value)
	}
	return decoded, nil
}

func parsePublicKeys(name string, values []string) ([]ed25519.PublicKey, error) {
	res := make([]ed25519.PublicKey, len(values))
	for i, value := range values {
		key, err := parsePublicKey(name, value)
		if err != nil {
			return nil, err
		}
		res[i] = key
	}
	return res, nil
}

// publicKeyOrKey resolves value as a base58 address, falling back to the
// public half of the keyring entry of that name.
func publicKeyOrKey(cmd *cobra.Command, name, value string) (ed25519.PublicKey, error) {
	if key, err := parsePublicKey(name, value); err == nil {
		return key, nil
	}

	private, err := signer(cmd, value)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %q is neither an address nor a key name", name, value)
	}
	return private.Public().(ed25519.PublicKey), nil
}

func parseUint64(name, value string) (uint64, error) {
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(raffle.ErrInvalidArgument, "invalid %s %q", name, value)
	}
	return n, nil
}

func parseUint64s(name string, values []string) ([]uint64, error) {
	res := make([]uint64, len(values))
	for i, value := range values {
		n, err := parseUint64(name, value)
		if err != nil {
			return nil, err
		}
		res[i] = n
	}
	return res, nil
}
