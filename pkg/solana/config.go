package solana

import (
	"strings"
)

// Environment is the JSON-RPC endpoint of a cluster.
type Environment string

const (
	EnvironmentDev   Environment = "https://api.devnet.solana.com"
	EnvironmentTest  Environment = "https://api.testnet.solana.com"
	EnvironmentProd  Environment = "https://api.mainnet-beta.solana.com"
	EnvironmentLocal Environment = "http://127.0.0.1:8899"
)

var environmentsByName = map[string]Environment{
	"devnet":       EnvironmentDev,
	"testnet":      EnvironmentTest,
	"mainnet":      EnvironmentProd,
	"mainnet-beta": EnvironmentProd,
	"localnet":     EnvironmentLocal,
	"localhost":    EnvironmentLocal,
}

// ResolveEnvironment maps a cluster moniker (devnet, testnet, mainnet-beta,
// localnet) to its public endpoint. Anything else is taken as an endpoint URL.
func ResolveEnvironment(nameOrURL string) Environment {
	nameOrURL = strings.TrimSpace(nameOrURL)
	if env, ok := environmentsByName[strings.ToLower(nameOrURL)]; ok {
		return env
	}
	return Environment(nameOrURL)
}
