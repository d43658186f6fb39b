package raffle

import (
	"crypto/ed25519"
	"encoding/binary"
	"strings"

	"github.com/mr-tron/base58"
)

func putKey(dst []byte, v ed25519.PublicKey, offset *int) {
	copy(dst[*offset:*offset+ed25519.PublicKeySize], v)
	*offset += ed25519.PublicKeySize
}
func getKey(src []byte, dst *ed25519.PublicKey, offset *int) {
	*dst = make([]byte, ed25519.PublicKeySize)
	copy(*dst, src[*offset:])
	*offset += ed25519.PublicKeySize
}

func putFixedString(dst []byte, v string, length int, offset *int) {
	copy(dst[*offset:*offset+length], toFixedString(v, length))
	*offset += length
}
func getFixedString(src []byte, dst *string, length int, offset *int) {
	*dst = removeFixedStringPadding(string(src[*offset : *offset+length]))
	*offset += length
}

func putUint8(dst []byte, v uint8, offset *int) {
	dst[*offset] = v
	*offset += 1
}
func getUint8(src []byte, dst *uint8, offset *int) {
	*dst = src[*offset]
	*offset += 1
}

func putUint64(dst []byte, v uint64, offset *int) {
	binary.LittleEndian.PutUint64(dst[*offset:], v)
	*offset += 8
}
func getUint64(src []byte, dst *uint64, offset *int) {
	*dst = binary.LittleEndian.Uint64(src[*offset:])
	*offset += 8
}

func putUint64Vec(dst []byte, v []uint64, offset *int) {
	binary.LittleEndian.PutUint32(dst[*offset:], uint32(len(v)))
	*offset += 4
	for _, item := range v {
		putUint64(dst, item, offset)
	}
}

// getUint64Vec reads a u32 length prefixed vector of u64 values, failing when
// the prefix claims more items than the remaining bytes can hold.
func getUint64Vec(src []byte, dst *[]uint64, offset *int) error {
	if len(src)-*offset < 4 {
		return ErrInvalidAccountData
	}
	length := binary.LittleEndian.Uint32(src[*offset:])
	*offset += 4

	if uint64(length)*8 > uint64(len(src)-*offset) {
		return ErrInvalidVectorLength
	}

	*dst = make([]uint64, length)
	for i := range *dst {
		getUint64(src, &(*dst)[i], offset)
	}
	return nil
}

func uint64VecSize(v []uint64) int {
	return 4 + 8*len(v)
}

func toFixedString(value string, length int) string {
	fixed := make([]byte, length)
	copy(fixed, []byte(value))
	return string(fixed)
}
func removeFixedStringPadding(value string) string {
	return strings.TrimRight(value, string([]byte{0}))
}

func mustBase58Decode(value string) ed25519.PublicKey {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}

// Uint64Seed returns the 8 byte little endian seed form of n.
func Uint64Seed(n uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, n)
	return b
}
