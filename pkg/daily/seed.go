package daily

import (
	"crypto/sha256"
	"encoding/binary"
	"hash"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"golang.org/x/crypto/blake2b"
)

const separator = "|"

// DefaultNamespace is used when namespace is empty.
const DefaultNamespace Namespace = "default"

// Namespace distinguishes independent streams sharing the same date.
type Namespace string

// Validate verifies that namespace can be used to build seed material.
func (ns Namespace) Validate() error {
	if strings.Contains(string(ns), separator) {
		return InvalidNamespaceError{Namespace: string(ns)}
	}
	return nil
}

// OrDefault returns DefaultNamespace if ns is empty.
func (ns Namespace) OrDefault() Namespace {
	if ns == "" {
		return DefaultNamespace
	}
	return ns
}

// SeedMaterial is the input of the digest producing the seed.
type SeedMaterial []byte

// Material builds the seed material for the date and namespace.
func Material(date DateKey, ns Namespace) (SeedMaterial, error) {
	if err := date.Validate(); err != nil {
		return nil, err
	}
	ns = ns.OrDefault()
	if err := ns.Validate(); err != nil {
		return nil, err
	}
	return SeedMaterial(date.String() + separator + string(ns)), nil
}

// Seed fully determines the output of a Stream.
type Seed uint64

// Digest is the hash function reducing seed material to a seed.
type Digest struct {
	name    string
	newHash func() hash.Hash
}

var (
	// SHA256 derives seeds using SHA-256. It is the default.
	SHA256 = Digest{name: "sha256", newHash: sha256.New}

	// BLAKE2b256 derives seeds using BLAKE2b-256.
	BLAKE2b256 = Digest{name: "blake2b-256", newHash: func() hash.Hash {
		// unkeyed hash never fails
		return lo.Must(blake2b.New256(nil))
	}}
)

// DigestByName returns the digest of the name, SHA256 if name is empty.
func DigestByName(name string) (Digest, error) {
	for _, d := range []Digest{SHA256, BLAKE2b256} {
		if d.name == name {
			return d, nil
		}
	}
	if name == "" {
		return SHA256, nil
	}
	return Digest{}, errors.Errorf("unknown digest %q", name)
}

// String returns the name of the digest.
func (d Digest) String() string {
	return d.name
}

// Seed derives the seed of the date and namespace.
func (d Digest) Seed(date DateKey, ns Namespace) (Seed, error) {
	material, err := Material(date, ns)
	if err != nil {
		return 0, err
	}
	return d.seed(material), nil
}

// Stream returns a fresh stream for the date and namespace.
func (d Digest) Stream(date DateKey, ns Namespace) (*Stream, error) {
	seed, err := d.Seed(date, ns)
	if err != nil {
		return nil, err
	}
	return NewStream(seed), nil
}

func (d Digest) seed(material SeedMaterial) Seed {
	h := d.newHash()
	// hash does not return errors or short writes
	_, _ = h.Write(material)
	return Seed(binary.BigEndian.Uint64(h.Sum(nil)[:8]))
}

// ComputeSeed derives the seed of the date and namespace using SHA256.
func ComputeSeed(date DateKey, ns Namespace) (Seed, error) {
	return SHA256.Seed(date, ns)
}

// StreamFor returns a fresh stream for the date and namespace using SHA256.
func StreamFor(date DateKey, ns Namespace) (*Stream, error) {
	return SHA256.Stream(date, ns)
}
