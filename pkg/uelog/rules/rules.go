// Package rules provides user-defined matching over parsed log records.
// Rules are declared in YAML files with regular expressions; named capture
// groups are extracted into match data, so common chores like pulling a
// map name or an error code out of known log lines need no code.
package rules

// RuleFile is the structure of a YAML rule file.
//
// Example:
//
//	version: 1
//	rules:
//	  - id: map_load
//	    label: map_load
//	    category: LogLoad
//	    regex: 'LoadMap: (?P<map>[^?]+)'
//	  - id: gpu_crash
//	    label: gpu_crash
//	    regex: 'GPU crashed or D3D device removed'
type RuleFile struct {
	// Version is the rule file format version. Currently only version 1
	// is supported.
	Version int `yaml:"version"`

	// Rules is the list of rule definitions.
	Rules []Rule `yaml:"rules"`
}

// Rule is a single matching rule. The regex runs against a record's Body;
// an optional Category restricts the rule to records of that category.
type Rule struct {
	// ID uniquely identifies the rule within its file.
	ID string `yaml:"id"`

	// Label is attached to every match the rule produces.
	Label string `yaml:"label"`

	// Category, when non-empty, must equal the record's category exactly
	// for the rule to be tried.
	Category string `yaml:"category,omitempty"`

	// Regex is matched against the record body. Named capture groups
	// (?P<name>...) are extracted into Match.Data.
	Regex string `yaml:"regex"`
}
