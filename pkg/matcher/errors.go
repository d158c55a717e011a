package matcher

import "errors"

// ErrNoPatterns is returned when the multi-pattern builder receives an empty
// pattern set.
var ErrNoPatterns = errors.New("no patterns to match")

// ErrEmptyPattern is returned when a supplied pattern is the empty string.
// Empty patterns are rejected outright rather than treated as trivially
// accepting, since the prefix-function construction assumes length one or more.
var ErrEmptyPattern = errors.New("empty pattern")

// ErrUnknownAlgorithm is returned when an algorithm name is neither "kmp" nor
// "aho-corasick".
var ErrUnknownAlgorithm = errors.New("unknown algorithm")
