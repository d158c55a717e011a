package schema

// Manifest describes a pattern set and the build settings that go with it.
// It is the document form users write by hand: a YAML or JSON file listing
// patterns plus optional algorithm, alphabet, and precompute choices. Plain
// text files map onto a Manifest carrying only patterns.
type Manifest struct {
	// Patterns are the strings to match, in document order.
	Patterns []string `yaml:"patterns" json:"patterns"`

	// Alphabet optionally fixes the automaton alphabet. When empty the
	// alphabet is derived from the patterns at build time.
	Alphabet string `yaml:"alphabet" json:"alphabet,omitempty"`

	// Algorithm optionally names the matcher variant ("kmp" or
	// "aho-corasick"). Empty leaves the choice to the caller.
	Algorithm string `yaml:"algorithm" json:"algorithm,omitempty"`

	// Precompute optionally pins the transition strategy. Nil means the
	// caller's default applies.
	Precompute *bool `yaml:"precompute" json:"precompute,omitempty"`
}

// HasAlgorithm reports whether the manifest pins a matcher variant.
func (m *Manifest) HasAlgorithm() bool {
	return m.Algorithm != ""
}
