package app

import (
	"time"

	"github.com/spf13/viper"
)

// Config contains the non-secret settings of the raffle client. Keys are
// read from the environment through the keyring, never from this file.
type Config struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// RPCEndpoint is a JSON-RPC URL or a cluster moniker such as devnet
	RPCEndpoint string `mapstructure:"rpc_endpoint"`

	// Deployment is the program deployment name, b2c or b2b
	Deployment string `mapstructure:"deployment"`
	Commitment string `mapstructure:"commitment"`

	// PacingInterval is the minimum spacing between submissions. Zero
	// disables pacing.
	PacingInterval time.Duration `mapstructure:"pacing_interval"`

	// JournalPath is the sqlite file recording submissions. An empty path
	// keeps the journal in memory for the lifetime of the process.
	JournalPath string `mapstructure:"journal_path"`

	InitRaffleComputeUnitLimit uint32 `mapstructure:"init_raffle_compute_unit_limit"`
	JoinRaffleComputeUnitLimit uint32 `mapstructure:"join_raffle_compute_unit_limit"`
}

const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

var defaultConfig = Config{
	LogLevel:  "info",
	LogFormat: LogFormatText,

	RPCEndpoint: "devnet",
	Deployment:  "b2c",
	Commitment:  "confirmed",

	PacingInterval: 600 * time.Millisecond,

	InitRaffleComputeUnitLimit: 500_000,
	JoinRaffleComputeUnitLimit: 300_000,
}

// DefaultConfig returns a copy of the settings used when neither the config
// file nor the environment provide a value.
func DefaultConfig() Config {
	return defaultConfig
}

func init() {
	_ = viper.BindEnv("log_level", "LOG_LEVEL")
	_ = viper.BindEnv("log_format", "LOG_FORMAT")

	_ = viper.BindEnv("rpc_endpoint", "RPC_ENDPOINT")
	_ = viper.BindEnv("deployment", "RAFFLE_DEPLOYMENT")
	_ = viper.BindEnv("commitment", "COMMITMENT")

	_ = viper.BindEnv("pacing_interval", "PACING_INTERVAL")

	_ = viper.BindEnv("journal_path", "JOURNAL_PATH")

	_ = viper.BindEnv("init_raffle_compute_unit_limit", "INIT_RAFFLE_COMPUTE_UNIT_LIMIT")
	_ = viper.BindEnv("join_raffle_compute_unit_limit", "JOIN_RAFFLE_COMPUTE_UNIT_LIMIT")
}
