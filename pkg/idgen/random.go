package idgen

import (
	"crypto/rand"

	"github.com/samber/lo"
)

type randomGenerator struct{}

// Random is the global generator producing random identifiers.
var Random Generator = randomGenerator{}

func (randomGenerator) ID() string {
	id := make([]byte, idBytes)
	for {
		lo.Must(rand.Read(id))
		if s, ok := encodeID(id); ok {
			return s
		}
	}
}
