// Package schema defines the pattern manifest: the document users write to
// describe a pattern set and its build settings.
//
// A manifest lists the patterns to match plus optional algorithm, alphabet,
// and precompute choices. Manifests load from YAML, JSON, or plain
// line-oriented files:
//
//	patterns:
//	  - he
//	  - she
//	  - his
//	  - hers
//	algorithm: aho-corasick
//	precompute: false
//
// Validation reports every problem in one pass, so a bad manifest surfaces
// all of its mistakes at once:
//
//	manifest, err := schema.LoadFile("patterns.yaml")
//	if err != nil {
//	    // unreadable or unparsable file
//	}
//	if err := manifest.Validate(); err != nil {
//	    for _, fieldErr := range schema.ValidationErrors(err) {
//	        // each entry is a *schema.ValidationError
//	    }
//	}
//
// The package deliberately stops at describing the build; turning a manifest
// into a running matcher is the compiler's job.
package schema
