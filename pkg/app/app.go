package app

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/code-payments/raffle-client/pkg/journal"
	journal_memory "github.com/code-payments/raffle-client/pkg/journal/memory"
	journal_sqlite "github.com/code-payments/raffle-client/pkg/journal/sqlite"
	"github.com/code-payments/raffle-client/pkg/raffle"
	"github.com/code-payments/raffle-client/pkg/rate"
	"github.com/code-payments/raffle-client/pkg/solana"
	raffle_program "github.com/code-payments/raffle-client/pkg/solana/raffle"
)

// LoadConfig reads the optional config file at path, overlays environment
// bindings and returns the result on top of the defaults.
func LoadConfig(path string) (Config, error) {
	// viper.ReadInConfig only returns ConfigFileNotFoundError if it has to search
	// for a default config file because one hasn't been explicitly set. That is,
	// if we explicitly set a config file, and it does not exist, viper will not
	// return a ConfigFileNotFoundError, so we do it ourselves.
	if len(path) > 0 {
		if _, err := os.Stat(path); err == nil {
			viper.SetConfigFile(path)
		} else if !os.IsNotExist(err) {
			return Config{}, errors.Wrapf(err, "failed to check if config %s exists", path)
		}
	}

	err := viper.ReadInConfig()
	_, isConfigNotFound := err.(viper.ConfigFileNotFoundError)
	if err != nil && !isConfigNotFound {
		return Config{}, errors.Wrap(err, "failed to load config")
	}

	config := defaultConfig
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, errors.Wrap(err, "failed to unmarshal config")
	}
	return config, nil
}

// ConfigureLogger sets up the standard logger. Logs go to w so that command
// output on stdout stays machine readable.
func ConfigureLogger(config Config, w io.Writer) {
	if strings.EqualFold(config.LogFormat, LogFormatJSON) {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{})
	}

	level, err := logrus.ParseLevel(strings.ToLower(config.LogLevel))
	if err != nil {
		logrus.StandardLogger().WithField("log_level", config.LogLevel).Warn("unknown log level, ignoring")
	} else {
		logrus.SetLevel(level)
	}

	logrus.SetOutput(w)
}

// OpenJournal returns the journal described by config along with a function
// releasing it.
func OpenJournal(config Config) (journal.Store, func(), error) {
	if len(config.JournalPath) == 0 {
		return journal_memory.New(), func() {}, nil
	}

	db, err := journal_sqlite.Open(config.JournalPath)
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to get journal connection")
	}

	closeFn := func() {
		if err := sqlDB.Close(); err != nil {
			logrus.StandardLogger().WithField("type", "app").WithError(err).Warn("failed to close journal")
		}
	}
	return journal_sqlite.New(db), closeFn, nil
}

// NewClient builds a raffle client against the configured endpoint and
// deployment.
func NewClient(config Config, store journal.Store) (*raffle.Client, error) {
	return NewClientWithSolana(config, solana.New(string(solana.ResolveEnvironment(config.RPCEndpoint))), store)
}

// NewClientWithSolana is NewClient over an existing solana.Client.
func NewClientWithSolana(config Config, sc solana.Client, store journal.Store) (*raffle.Client, error) {
	deployment, err := raffle_program.GetDeployment(config.Deployment)
	if err != nil {
		return nil, errors.Wrapf(err, "deployment %q", config.Deployment)
	}

	commitment, err := solana.ParseCommitment(strings.ToLower(config.Commitment))
	if err != nil {
		return nil, err
	}

	return raffle.NewClient(
		sc,
		raffle.WithDeployment(deployment),
		raffle.WithCommitment(commitment),
		raffle.WithPacer(rate.NewIntervalPacer(config.PacingInterval)),
		raffle.WithJournal(store),
		raffle.WithComputeUnitLimits(config.InitRaffleComputeUnitLimit, config.JoinRaffleComputeUnitLimit),
	), nil
}
