// Package idgen produces request identifiers.
//
// Identifiers are 128 bits encoded with z-base-32 (26 characters), always starting with a letter.
// See http://philzimmermann.com/docs/human-oriented-base-32-encoding.txt for the alphabet.
package idgen
