package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/code-payments/raffle-client/pkg/config"
	"github.com/code-payments/raffle-client/pkg/config/wrapper"
)

var errDeveloperInduced = errors.New("in memory config: developer induced error")

// Config is a single in memory config value used for testing
type Config struct {
	stateMu  sync.RWMutex
	value    interface{}
	induced  bool
	shutdown bool
}

// NewConfig returns a new in memory config. A nil value means no value is set.
func NewConfig(value interface{}) *Config {
	return &Config{value: value}
}

// Get implements Config.Get
func (c *Config) Get(_ context.Context) (interface{}, error) {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()

	switch {
	case c.shutdown:
		return nil, config.ErrShutdown
	case c.induced:
		return nil, errDeveloperInduced
	case c.value == nil:
		return nil, config.ErrNoValue
	}
	return c.value, nil
}

// Shutdown implements Config.Shutdown
func (c *Config) Shutdown() {
	c.stateMu.Lock()
	c.shutdown = true
	c.stateMu.Unlock()
}

// SetValue sets the value returned by subsequent Get calls. Setting nil
// clears it.
func (c *Config) SetValue(value interface{}) {
	c.stateMu.Lock()
	c.value = value
	c.stateMu.Unlock()
}

// InduceErrors toggles a simulated failure on subsequent Get calls
func (c *Config) InduceErrors(induce bool) {
	c.stateMu.Lock()
	c.induced = induce
	c.stateMu.Unlock()
}

// Source is a set of named in memory values, standing in for the process
// environment when loading keys.
type Source struct {
	mu     sync.Mutex
	values map[string]*Config
}

func NewSource() *Source {
	return &Source{values: make(map[string]*Config)}
}

// Set stores value under name. Names are case sensitive.
func (s *Source) Set(name string, value interface{}) {
	s.config(name).SetValue(value)
}

// Keypair returns a keypair config over the named value. It matches the
// keyring.Source signature.
func (s *Source) Keypair(name string) config.Keypair {
	return wrapper.NewKeypairConfig(&unowned{s.config(name)})
}

func (s *Source) config(name string) *Config {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.values[name]
	if !ok {
		c = NewConfig(nil)
		s.values[name] = c
	}
	return c
}

// unowned keeps a keypair consumer's Shutdown from closing the shared value.
type unowned struct {
	*Config
}

func (*unowned) Shutdown() {}
