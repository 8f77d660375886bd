package qforge

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20"
)

/*
RandomSource is the uniform sampler the engine draws every random value from:
measurement outcomes, superposition phases and diagnostic coin flips.
*/
type RandomSource interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// IntN returns a uniform value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

/*
QRNG is a quantum-random stand-in built on a ChaCha20 keystream. It is seeded
once from an entropy reader and then produces an unbounded stream of uniform
64-bit words. A QRNG is not safe for concurrent use.
*/
type QRNG struct {
	cipher *chacha20.Cipher
	buf    [64]byte
	pos    int
}

// NewQRNG seeds a generator with key and nonce material read from entropy.
// A nil reader means crypto/rand.
func NewQRNG(entropy io.Reader) (*QRNG, error) {
	if entropy == nil {
		entropy = rand.Reader
	}

	seed := make([]byte, chacha20.KeySize+chacha20.NonceSize)
	if _, err := io.ReadFull(entropy, seed); err != nil {
		return nil, fmt.Errorf("qrng: reading entropy: %w", err)
	}

	return newQRNG(seed[:chacha20.KeySize], seed[chacha20.KeySize:])
}

// NewSeededQRNG builds a reproducible generator, for tests and replays.
func NewSeededQRNG(seed [chacha20.KeySize]byte) *QRNG {
	q, err := newQRNG(seed[:], make([]byte, chacha20.NonceSize))
	if err != nil {
		// Key and nonce sizes are fixed above.
		panic(err)
	}
	return q
}

func newQRNG(key, nonce []byte) (*QRNG, error) {
	c, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		return nil, fmt.Errorf("qrng: %w", err)
	}

	q := &QRNG{cipher: c}
	q.refill()
	return q, nil
}

func (q *QRNG) refill() {
	clear(q.buf[:])
	q.cipher.XORKeyStream(q.buf[:], q.buf[:])
	q.pos = 0
}

// Uint64 returns the next 64 bits of keystream.
func (q *QRNG) Uint64() uint64 {
	if q.pos+8 > len(q.buf) {
		q.refill()
	}
	v := binary.LittleEndian.Uint64(q.buf[q.pos:])
	q.pos += 8
	return v
}

func (q *QRNG) Float64() float64 {
	return float64(q.Uint64()>>11) / (1 << 53)
}

func (q *QRNG) IntN(n int) int {
	if n <= 0 {
		panic("qrng: IntN called with n <= 0")
	}

	bound := uint64(n)
	// Reject the tail that would bias the modulo.
	limit := ^uint64(0) - (^uint64(0) % bound)
	for {
		v := q.Uint64()
		if v < limit {
			return int(v % bound)
		}
	}
}
