package raffle

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

const (
	ConfigAccountSize = (32 + // authority_1
		32 + // authority_2
		32 + // authority_3
		32) // authority_4
)

type ConfigAccount struct {
	Authorities [4]ed25519.PublicKey
}

// IsAuthority reports whether key is one of the four configured authorities.
func (obj *ConfigAccount) IsAuthority(key ed25519.PublicKey) bool {
	for _, authority := range obj.Authorities {
		if authority.Equal(key) {
			return true
		}
	}
	return false
}

func (obj *ConfigAccount) Marshal() []byte {
	data := make([]byte, ConfigAccountSize)

	var offset int
	for _, authority := range obj.Authorities {
		putKey(data, authority, &offset)
	}
	return data
}

func (obj *ConfigAccount) Unmarshal(data []byte) error {
	if len(data) < ConfigAccountSize {
		return ErrInvalidAccountData
	}

	var offset int
	for i := range obj.Authorities {
		getKey(data, &obj.Authorities[i], &offset)
	}
	return nil
}

func (obj *ConfigAccount) String() string {
	return fmt.Sprintf(
		"Config{authority_1=%s,authority_2=%s,authority_3=%s,authority_4=%s}",
		base58.Encode(obj.Authorities[0]),
		base58.Encode(obj.Authorities[1]),
		base58.Encode(obj.Authorities[2]),
		base58.Encode(obj.Authorities[3]),
	)
}
