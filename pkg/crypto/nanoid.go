package crypto

import (
	"crypto/rand"
	"errors"
	"math/bits"
)

const (
	// URL safe, so ids can travel in paths without escaping
	DefaultAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"
	DefaultIDSize   = 21 // 21 * 6 = 126 bits of entropy

	minAlphabetSize = 2
	maxAlphabetSize = 256
)

var (
	ErrAlphabetTooShort = errors.New("alphabet must contain at least 2 characters")
	ErrAlphabetTooLong  = errors.New("alphabet must contain no more than 256 characters")
	ErrAlphabetNotASCII = errors.New("alphabet must contain only ASCII characters")
	ErrAlphabetRepeats  = errors.New("alphabet must not repeat characters")
	ErrInvalidIDSize    = errors.New("id size must be positive")
)

// IDGenerator mints random identifiers drawn uniformly from an alphabet.
// Bytes outside the alphabet after masking are rejected rather than
// wrapped, so no character is favoured.
type IDGenerator struct {
	alphabet string
	mask     byte
	size     int
}

func NewIDGenerator(size int, alphabet string) (*IDGenerator, error) {
	if size <= 0 {
		return nil, ErrInvalidIDSize
	}
	if alphabet == "" {
		alphabet = DefaultAlphabet
	}
	if len(alphabet) < minAlphabetSize {
		return nil, ErrAlphabetTooShort
	}
	if len(alphabet) > maxAlphabetSize {
		return nil, ErrAlphabetTooLong
	}

	var seen [128]bool
	for i := 0; i < len(alphabet); i++ {
		c := alphabet[i]
		if c > 127 {
			return nil, ErrAlphabetNotASCII
		}
		if seen[c] {
			return nil, ErrAlphabetRepeats
		}
		seen[c] = true
	}

	return &IDGenerator{
		alphabet: alphabet,
		mask:     maskFor(len(alphabet)),
		size:     size,
	}, nil
}

// DefaultIDGenerator never fails.
func DefaultIDGenerator() *IDGenerator {
	return &IDGenerator{
		alphabet: DefaultAlphabet,
		mask:     maskFor(len(DefaultAlphabet)),
		size:     DefaultIDSize,
	}
}

// maskFor returns the smallest all-ones byte covering n-1.
func maskFor(n int) byte {
	return byte(1<<bits.Len(uint(n-1)) - 1)
}

func (g *IDGenerator) Generate() (string, error) {
	id := make([]byte, 0, g.size)
	// read a little more than needed so one batch usually suffices
	buf := make([]byte, g.size+g.size/2+1)

	for len(id) < g.size {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			idx := int(b & g.mask)
			if idx >= len(g.alphabet) {
				continue
			}
			id = append(id, g.alphabet[idx])
			if len(id) == g.size {
				break
			}
		}
	}

	return string(id), nil
}
