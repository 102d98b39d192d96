package idgen

// Generator is a generator of identifiers.
type Generator interface {
	// ID generates a new identifier.
	ID() string
}
