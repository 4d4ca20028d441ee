// Package signature detects known faults in Ryujinx error blocks.
//
// A signature names a fault class, the severity of the note it raises, and
// either literal terms (case-sensitive substrings) or a regular expression
// to look for in error block text. The built-in set covers common faults;
// additional signatures can be loaded from YAML files.
package signature

// File represents the structure of a YAML signature file.
//
// Example YAML file:
//
//	version: 1
//	signatures:
//	  - id: vulkan_device_lost
//	    severity: blocking
//	    note: Vulkan device lost, update your GPU drivers
//	    terms:
//	      - VK_ERROR_DEVICE_LOST
//	  - id: out_of_memory
//	    severity: warning
//	    note: The emulator ran out of memory
//	    regex: 'OutOfMemoryException|Out of memory'
type File struct {
	// Version is the signature file format version. Currently only version 1 is supported.
	Version int `yaml:"version"`

	// Signatures is the list of signature definitions.
	Signatures []Signature `yaml:"signatures"`
}

// Signature represents a single fault signature definition.
type Signature struct {
	// ID is a unique identifier for this signature (e.g., "cache_collision").
	ID string `yaml:"id"`

	// Severity is the level name of the raised note: critical, blocking,
	// warning, info or success.
	Severity string `yaml:"severity"`

	// Note is the text of the note raised when the signature matches.
	Note string `yaml:"note"`

	// Terms are literal substrings; any one of them matching is enough.
	Terms []string `yaml:"terms,omitempty"`

	// Regex is an optional regular expression tried against each block.
	Regex string `yaml:"regex,omitempty"`
}
