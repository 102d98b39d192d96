package idgen

import (
	"encoding/binary"

	"github.com/outofforest/dayseed/pkg/daily"
)

type deterministicGenerator struct {
	stream *daily.Stream
}

// NewDeterministic creates generator drawing identifiers from the stream of the seed.
// Generators with the same seed produce the same sequences of identifiers.
func NewDeterministic(seed daily.Seed) Generator {
	return &deterministicGenerator{stream: daily.NewStream(seed)}
}

func (dg *deterministicGenerator) ID() string {
	id := make([]byte, idBytes)
	for {
		binary.BigEndian.PutUint64(id, dg.stream.Uint64())
		binary.BigEndian.PutUint64(id[8:], dg.stream.Uint64())
		if s, ok := encodeID(id); ok {
			return s
		}
	}
}
