package signature

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ryulog/ryulog-go/pkg/ryulog/report"
	"gopkg.in/yaml.v3"
)

// sanitizePathError removes the path from os.PathError so error messages
// don't expose file system paths.
func sanitizePathError(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return fmt.Errorf("%s: %w", pathErr.Op, pathErr.Err)
	}
	return err
}

const (
	// MaxFileSize is the maximum allowed size for a signature file (1MB).
	MaxFileSize = 1 * 1024 * 1024

	// MaxPatternLength is the maximum length of a single term or regex.
	// Long expressions are rejected to limit matching cost.
	MaxPatternLength = 512

	// MaxSignatureCount is the maximum number of signatures in one file.
	MaxSignatureCount = 1000

	// SupportedVersion is the currently supported signature file format version.
	SupportedVersion = 1
)

// Load reads and validates a signature file.
// Non-regular files (FIFO, device, socket) and files over MaxFileSize are rejected.
//
// Example:
//
//	f, err := signature.Load("signatures.yaml")
//	if err != nil {
//	    log.Fatalf("failed to load signature file: %v", err)
//	}
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open signature file: %w", sanitizePathError(err))
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat signature file: %w", sanitizePathError(err))
	}
	if !info.Mode().IsRegular() {
		return nil, errors.New("signature file must be a regular file (not FIFO, device, or special file)")
	}
	if info.Size() == 0 {
		return nil, errors.New("signature file is empty")
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("signature file too large: %d bytes (max %d)", info.Size(), MaxFileSize)
	}

	// Read one byte past the limit to notice a file that grew after Stat.
	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read signature file: %w", sanitizePathError(err))
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("signature file too large: %d bytes (max %d)", len(data), MaxFileSize)
	}

	return LoadBytes(data)
}

// LoadBytes parses and validates a signature file from a byte slice.
func LoadBytes(data []byte) (*File, error) {
	if len(data) == 0 {
		return nil, errors.New("signature file is empty")
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("signature file too large: %d bytes (max %d)", len(data), MaxFileSize)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate performs schema-level validation on the signature file.
// It checks for:
//   - Supported version number
//   - At least one signature, and no more than MaxSignatureCount
//   - Required fields (id, severity, note, terms or regex)
//   - Known severity names
//   - Unique signature IDs
//   - Term and regex length limits
//
// Regular expressions are compiled by NewSet, not here.
func (f *File) Validate() error {
	if f.Version != SupportedVersion {
		return &ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("unsupported version %d (only version %d is supported)", f.Version, SupportedVersion),
		}
	}
	if len(f.Signatures) == 0 {
		return &ValidationError{
			Field:   "signatures",
			Message: "at least one signature is required",
		}
	}
	if len(f.Signatures) > MaxSignatureCount {
		return &ValidationError{
			Field:   "signatures",
			Message: fmt.Sprintf("too many signatures (%d), maximum allowed is %d", len(f.Signatures), MaxSignatureCount),
		}
	}

	seenIDs := make(map[string]int, len(f.Signatures))
	for i, s := range f.Signatures {
		if err := s.validate(i); err != nil {
			return err
		}
		if prevIndex, exists := seenIDs[s.ID]; exists {
			return &SignatureError{
				Index:   i,
				ID:      s.ID,
				Field:   "id",
				Message: fmt.Sprintf("duplicate id (previously defined at signature[%d])", prevIndex),
			}
		}
		seenIDs[s.ID] = i
	}
	return nil
}

func (s Signature) validate(index int) error {
	if s.ID == "" {
		return &SignatureError{Index: index, Field: "id", Message: "id is required"}
	}
	if s.Severity == "" {
		return &SignatureError{Index: index, ID: s.ID, Field: "severity", Message: "severity is required"}
	}
	if _, err := report.ParseSeverity(s.Severity); err != nil {
		return &SignatureError{Index: index, ID: s.ID, Field: "severity", Message: err.Error(), Cause: err}
	}
	if s.Note == "" {
		return &SignatureError{Index: index, ID: s.ID, Field: "note", Message: "note is required"}
	}
	if len(s.Terms) == 0 && s.Regex == "" {
		return &SignatureError{Index: index, ID: s.ID, Field: "terms", Message: "terms or regex is required"}
	}
	for j, term := range s.Terms {
		if term == "" {
			return &SignatureError{Index: index, ID: s.ID, Field: "terms", Message: fmt.Sprintf("term %d is empty", j)}
		}
		if len(term) > MaxPatternLength {
			return &SignatureError{
				Index:   index,
				ID:      s.ID,
				Field:   "terms",
				Message: fmt.Sprintf("term too long: %d bytes (max %d)", len(term), MaxPatternLength),
			}
		}
	}
	if len(s.Regex) > MaxPatternLength {
		return &SignatureError{
			Index:   index,
			ID:      s.ID,
			Field:   "regex",
			Message: fmt.Sprintf("pattern too long: %d bytes (max %d)", len(s.Regex), MaxPatternLength),
		}
	}
	return nil
}
