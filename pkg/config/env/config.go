package env

import (
	"context"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/code-payments/raffle-client/pkg/config"
	"github.com/code-payments/raffle-client/pkg/config/wrapper"
)

// FileSuffix names the variable holding a path to read when the plain
// variable is unset, e.g. RAFFLE_ORGANIZER_FILE=~/.config/solana/id.json.
const FileSuffix = "_FILE"

type conf struct {
	key string
}

// NewConfig returns a config over the upper cased environment variable key.
// The variable is read on every Get.
func NewConfig(key string) config.Config {
	return &conf{key: strings.ToUpper(key)}
}

// Get implements Config.Get
func (c *conf) Get(_ context.Context) (interface{}, error) {
	if val := strings.TrimSpace(os.Getenv(c.key)); len(val) > 0 {
		return []byte(val), nil
	}

	path := strings.TrimSpace(os.Getenv(c.key + FileSuffix))
	if len(path) == 0 {
		return nil, config.ErrNoValue
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s%s", c.key, FileSuffix)
	}
	contents = []byte(strings.TrimSpace(string(contents)))
	if len(contents) == 0 {
		return nil, config.ErrNoValue
	}
	return contents, nil
}

// Shutdown implements Config.Shutdown
func (c *conf) Shutdown() {
}

// NewKeypairConfig creates an env-based keypair config
func NewKeypairConfig(key string) config.Keypair {
	return wrapper.NewKeypairConfig(NewConfig(key))
}
