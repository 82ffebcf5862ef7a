package rules

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/uelog/uelog-go/internal/safefile"
)

const (
	// MaxRuleFileSize is the maximum allowed size for a rule file (1MB).
	MaxRuleFileSize = 1 * 1024 * 1024

	// MaxRegexLength is the maximum allowed length for a rule regex.
	// Limits the complexity of user-supplied patterns.
	MaxRegexLength = 512

	// MaxRuleCount is the maximum number of rules in one file.
	MaxRuleCount = 1000

	// SupportedVersion is the rule file format version this package reads.
	SupportedVersion = 1
)

// Load reads and validates a rule file from path. The file must be a
// regular file within the size limit.
func Load(path string) (*RuleFile, error) {
	f, info, err := safefile.OpenRegular(path)
	if err != nil {
		return nil, fmt.Errorf("opening rule file: %w", err)
	}
	defer f.Close()

	if info.Size() == 0 {
		return nil, errors.New("rule file is empty")
	}
	if info.Size() > MaxRuleFileSize {
		return nil, fmt.Errorf("rule file too large: %d bytes (max %d)", info.Size(), MaxRuleFileSize)
	}

	// Limit the read as well, in case the file grew after the stat.
	data, err := io.ReadAll(io.LimitReader(f, MaxRuleFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading rule file: %w", err)
	}
	if len(data) > MaxRuleFileSize {
		return nil, fmt.Errorf("rule file too large: %d bytes (max %d)", len(data), MaxRuleFileSize)
	}

	return LoadBytes(data)
}

// LoadBytes parses and validates a rule file from a byte slice.
func LoadBytes(data []byte) (*RuleFile, error) {
	if len(data) == 0 {
		return nil, errors.New("rule file is empty")
	}
	if len(data) > MaxRuleFileSize {
		return nil, fmt.Errorf("rule file too large: %d bytes (max %d)", len(data), MaxRuleFileSize)
	}

	var rf RuleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	if err := rf.Validate(); err != nil {
		return nil, err
	}
	return &rf, nil
}

// Validate performs schema-level checks: supported version, at least one
// rule, required fields, unique IDs and regex length limits. Regexes are
// compiled later, in NewMatcher.
func (rf *RuleFile) Validate() error {
	if rf.Version != SupportedVersion {
		return &ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("unsupported version %d (only version %d is supported)", rf.Version, SupportedVersion),
		}
	}
	if len(rf.Rules) == 0 {
		return &ValidationError{
			Field:   "rules",
			Message: "at least one rule is required",
		}
	}
	if len(rf.Rules) > MaxRuleCount {
		return &ValidationError{
			Field:   "rules",
			Message: fmt.Sprintf("too many rules (%d), maximum allowed is %d", len(rf.Rules), MaxRuleCount),
		}
	}

	seenIDs := make(map[string]int, len(rf.Rules))
	for i, r := range rf.Rules {
		if r.ID == "" {
			return &RuleError{Index: i, Field: "id", Message: "id is required"}
		}
		if r.Label == "" {
			return &RuleError{Index: i, ID: r.ID, Field: "label", Message: "label is required"}
		}
		if r.Regex == "" {
			return &RuleError{Index: i, ID: r.ID, Field: "regex", Message: "regex is required"}
		}
		if prev, exists := seenIDs[r.ID]; exists {
			return &RuleError{
				Index: i, ID: r.ID, Field: "id",
				Message: fmt.Sprintf("duplicate id (previously defined at rule[%d])", prev),
			}
		}
		seenIDs[r.ID] = i
		if len(r.Regex) > MaxRegexLength {
			return &RuleError{
				Index: i, ID: r.ID, Field: "regex",
				Message: fmt.Sprintf("regex too long: %d bytes (max %d)", len(r.Regex), MaxRegexLength),
			}
		}
	}
	return nil
}
