package keyring

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/code-payments/raffle-client/pkg/config"
	"github.com/code-payments/raffle-client/pkg/config/env"
)

const (
	ParticipantCount = 20
	AuthorityCount   = 4
)

const (
	OrganizerKey       = "RAFFLE_ORGANIZER"
	RewardMintKey      = "REWARDMINT"
	FeeMintKey         = "FEEMINT"
	RequirementMintKey = "REQMINT"
)

var (
	ErrMissingKey = errors.New("keyring: missing key")
	ErrInvalidKey = errors.New("keyring: invalid key")
)

func ParticipantKey(i int) string {
	return fmt.Sprintf("PARTICIPANT_%d", i)
}

func AuthorityKey(i int) string {
	return fmt.Sprintf("AUTH_%d", i)
}

// Keyring is the full set of signing keys used by the client.
type Keyring struct {
	Participants [ParticipantCount]ed25519.PrivateKey
	Organizer    ed25519.PrivateKey
	Authorities  [AuthorityCount]ed25519.PrivateKey

	// Keypairs of the mint accounts created by the token fixtures
	RewardMint      ed25519.PrivateKey
	FeeMint         ed25519.PrivateKey
	RequirementMint ed25519.PrivateKey
}

// Source resolves a named key to a keypair config.
type Source func(name string) config.Keypair

// Load reads every key from the environment. Any missing or undecodable key
// fails the whole load.
func Load(ctx context.Context) (*Keyring, error) {
	return LoadFrom(ctx, env.NewKeypairConfig)
}

// LoadFrom is Load over an arbitrary key source.
func LoadFrom(ctx context.Context, source Source) (*Keyring, error) {
	var kr Keyring
	var missing []string

	load := func(name string, dst *ed25519.PrivateKey) error {
		cfg := source(name)
		defer cfg.Shutdown()

		key, err := cfg.GetSafe(ctx)
		if err == config.ErrNoValue {
			missing = append(missing, name)
			return nil
		} else if err != nil {
			return errors.Wrapf(ErrInvalidKey, "%s: %v", name, err)
		}

		*dst = key
		return nil
	}

	for i := range kr.Participants {
		if err := load(ParticipantKey(i), &kr.Participants[i]); err != nil {
			return nil, err
		}
	}
	if err := load(OrganizerKey, &kr.Organizer); err != nil {
		return nil, err
	}
	for i := range kr.Authorities {
		if err := load(AuthorityKey(i), &kr.Authorities[i]); err != nil {
			return nil, err
		}
	}
	if err := load(RewardMintKey, &kr.RewardMint); err != nil {
		return nil, err
	}
	if err := load(FeeMintKey, &kr.FeeMint); err != nil {
		return nil, err
	}
	if err := load(RequirementMintKey, &kr.RequirementMint); err != nil {
		return nil, err
	}

	if len(missing) > 0 {
		return nil, errors.Wrap(ErrMissingKey, strings.Join(missing, ", "))
	}
	return &kr, nil
}

// Get returns a loaded key by its environment name.
func (k *Keyring) Get(name string) (ed25519.PrivateKey, error) {
	name = strings.ToUpper(name)
	switch name {
	case OrganizerKey:
		return k.Organizer, nil
	case RewardMintKey:
		return k.RewardMint, nil
	case FeeMintKey:
		return k.FeeMint, nil
	case RequirementMintKey:
		return k.RequirementMint, nil
	}
	for i := range k.Participants {
		if name == ParticipantKey(i) {
			return k.Participants[i], nil
		}
	}
	for i := range k.Authorities {
		if name == AuthorityKey(i) {
			return k.Authorities[i], nil
		}
	}
	return nil, errors.Wrap(ErrMissingKey, name)
}

func (k *Keyring) Participant(i int) (ed25519.PrivateKey, error) {
	if i < 0 || i >= ParticipantCount {
		return nil, errors.Errorf("participant index %d out of range [0, %d)", i, ParticipantCount)
	}
	return k.Participants[i], nil
}

func (k *Keyring) Authority(i int) (ed25519.PrivateKey, error) {
	if i < 0 || i >= AuthorityCount {
		return nil, errors.Errorf("authority index %d out of range [0, %d)", i, AuthorityCount)
	}
	return k.Authorities[i], nil
}

// AuthorityPublicKeys returns the public halves of the authority keys in
// config order.
func (k *Keyring) AuthorityPublicKeys() [AuthorityCount]ed25519.PublicKey {
	var res [AuthorityCount]ed25519.PublicKey
	for i, key := range k.Authorities {
		res[i] = key.Public().(ed25519.PublicKey)
	}
	return res
}
