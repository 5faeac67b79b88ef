// Package idgen generates the short public identifiers that address cards.
package idgen

import gonanoid "github.com/matoous/go-nanoid/v2"

// Alphabet is the URL-safe nanoid alphabet. Identifiers end up in URL path
// segments, so nothing outside this set is allowed.
const Alphabet = "_-0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Length is the number of characters in a card identifier.
const Length = 10

// New returns a fresh random identifier. It is never derived from user input;
// collision handling is left to the insert path.
func New() (string, error) {
	return gonanoid.Generate(Alphabet, Length)
}
