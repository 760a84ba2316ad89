// Package fairness implements the commit/reveal primitive that keeps the
// first-move decision honest. The program commits to a secret value by
// disclosing an HMAC-SHA256 tag over it, takes the counterparty's guess, and
// only then reveals the value and the key. Anyone can recompute the tag from
// the revealed pair, so the program cannot change its mind after seeing the
// guess.
package fairness

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"strconv"
)

// KeySize is the secret key length in bytes (256 bits).
const KeySize = 32

// Commitment binds the program to a secret value drawn uniformly from
// [0, bound). It can only be built by NewCommitment, which always draws a
// fresh key and value from crypto/rand; callers can neither inject nor reuse
// key material.
type Commitment struct {
	key   [KeySize]byte
	value int
	tag   []byte
	bound int
}

// NewCommitment draws a value uniformly from [0, bound) and a fresh 256-bit
// key, then computes the binding tag. bound must be at least 2.
func NewCommitment(bound int) (*Commitment, error) {
	if bound < 2 {
		return nil, fmt.Errorf("commitment bound must be at least 2, got %d", bound)
	}

	n, err := rand.Int(rand.Reader, big.NewInt(int64(bound)))
	if err != nil {
		return nil, fmt.Errorf("draw value: %w", err)
	}

	c := &Commitment{
		value: int(n.Int64()),
		bound: bound,
	}
	if _, err := io.ReadFull(rand.Reader, c.key[:]); err != nil {
		return nil, fmt.Errorf("draw key: %w", err)
	}
	c.tag = computeTag(c.key[:], c.value)

	return c, nil
}

// Tag returns the hex-encoded HMAC tag. It is safe to disclose before the
// counterparty has moved; the key and value stay hidden until Reveal.
func (c *Commitment) Tag() string {
	return hex.EncodeToString(c.tag)
}

// Bound returns the exclusive upper bound of the committed value.
func (c *Commitment) Bound() int {
	return c.bound
}

// Reveal discloses the committed value and the hex-encoded key. Call it only
// after the counterparty's input is final.
func (c *Commitment) Reveal() (value int, keyHex string) {
	return c.value, hex.EncodeToString(c.key[:])
}

// Verify recomputes the tag from a revealed key and value and compares it to
// the disclosed tag in constant time. It returns an error when the inputs are
// not valid hex, and false when the tag does not match.
func Verify(keyHex string, value int, tagHex string) (bool, error) {
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return false, fmt.Errorf("decode key: %w", err)
	}
	tag, err := hex.DecodeString(tagHex)
	if err != nil {
		return false, fmt.Errorf("decode tag: %w", err)
	}

	return hmac.Equal(computeTag(key, value), tag), nil
}

// computeTag is HMAC-SHA256 over the decimal string form of the value.
func computeTag(key []byte, value int) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(strconv.Itoa(value)))
	return mac.Sum(nil)
}
