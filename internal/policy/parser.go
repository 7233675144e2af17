package policy

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// policyFile mirrors the document layout. Reviewers is kept as a raw
// node so the declaration order of the mapping survives decoding; Go
// maps would lose it and diagnostics must follow document order.
type policyFile struct {
	Teams     map[string]Team `yaml:"teams"`
	Reviewers yaml.Node       `yaml:"reviewers"`
	Overrides []Override      `yaml:"overrides"`
}

// Parse decodes and validates a policy document. JSON documents are
// accepted as-is since JSON is a YAML subset. The returned Policy is
// fully validated: team references resolve, override patterns are
// compiled, and absent teams/overrides are empty.
func Parse(content []byte) (Policy, error) {
	var raw any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return Policy{}, &ConfigError{Detail: fmt.Sprintf("document is not valid YAML or JSON: %v", err)}
	}
	if raw == nil {
		return Policy{}, &ConfigError{Detail: "document is empty"}
	}
	if err := validateStructure(raw); err != nil {
		return Policy{}, err
	}

	var pf policyFile
	if err := yaml.Unmarshal(content, &pf); err != nil {
		return Policy{}, &ConfigError{Detail: fmt.Sprintf("cannot decode document: %v", err)}
	}

	p := Policy{
		Teams:     pf.Teams,
		Overrides: pf.Overrides,
	}
	if p.Teams == nil {
		p.Teams = map[string]Team{}
	}
	if p.Overrides == nil {
		p.Overrides = []Override{}
	}

	rules, err := decodeRules(&pf.Reviewers)
	if err != nil {
		return Policy{}, err
	}
	p.Rules = rules

	if err := validateSemantics(&p); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// LoadFromPath reads and parses a policy document from disk. A missing
// file is reported as-is so callers can distinguish "no policy" from
// "invalid policy" (os.IsNotExist holds on the returned error).
func LoadFromPath(path string) (Policy, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, err
	}
	return Parse(content)
}

// decodeRules walks the reviewers mapping node in document order.
func decodeRules(node *yaml.Node) ([]Rule, error) {
	rules := []Rule{}
	if node.Kind == 0 {
		// Absent reviewers key; the schema rejects this before we get
		// here, but stay total.
		return nil, &ConfigError{Detail: "missing required key 'reviewers'"}
	}
	seen := make(map[string]bool)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		prefix := keyNode.Value
		if seen[prefix] {
			return nil, &ConfigError{Subject: prefix, Detail: "duplicate rule prefix"}
		}
		seen[prefix] = true

		var r Rule
		if err := valNode.Decode(&r); err != nil {
			return nil, &ConfigError{Subject: prefix, Detail: fmt.Sprintf("cannot decode rule: %v", err)}
		}
		r.Prefix = prefix
		rules = append(rules, r)
	}
	return rules, nil
}

// validateSemantics enforces the invariants the structural schema
// cannot express, and compiles override patterns in place.
func validateSemantics(p *Policy) error {
	for name, team := range p.Teams {
		for _, member := range team.Members {
			if member == "" {
				return &ConfigError{Subject: name, Detail: "team has an empty member name"}
			}
		}
	}

	for _, r := range p.Rules {
		for _, u := range r.Users {
			if u == "" {
				return &ConfigError{Subject: r.Prefix, Detail: "rule has an empty user name"}
			}
		}
		for _, t := range r.Teams {
			if _, ok := p.Teams[t]; !ok {
				return &ConfigError{Subject: r.Prefix, Detail: fmt.Sprintf("references undefined team %q", t)}
			}
		}
		if r.RequiredApproverCount < 0 {
			return &ConfigError{Subject: r.Prefix, Detail: "requiredApproverCount must not be negative"}
		}
	}

	for i := range p.Overrides {
		o := &p.Overrides[i]
		for _, pattern := range o.OnlyModifiedFileRegExs {
			re, err := regexp.Compile(pattern)
			if err != nil {
				return &ConfigError{Subject: pattern, Detail: fmt.Sprintf("override pattern does not compile: %v", err)}
			}
			o.Patterns = append(o.Patterns, re)
		}
	}
	return nil
}
