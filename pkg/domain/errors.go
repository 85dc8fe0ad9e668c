package domain

import "errors"

// ErrVocabularyNotFound is returned by vocabulary sources when the backing
// file or key does not exist.
var ErrVocabularyNotFound = errors.New("vocabulary not found")

// ErrMalformedEntry marks a vocabulary entry that cannot be decoded into a
// word and a numeric frequency. Loaders skip such entries individually.
var ErrMalformedEntry = errors.New("malformed vocabulary entry")
