package service

import "fmt"

// FailurePolicy decides what a generation operation does when a collaborator fails.
type FailurePolicy int

const (
	// FailLoud returns the first error to the caller.
	FailLoud FailurePolicy = iota
	// FailSoft degrades instead: a fallback result, or no result at all.
	FailSoft
)

// String returns the configuration name of the policy.
func (p FailurePolicy) String() string {
	switch p {
	case FailSoft:
		return "soft"
	case FailLoud:
		return "loud"
	default:
		return fmt.Sprintf("FailurePolicy(%d)", int(p))
	}
}

// ParseFailurePolicy parses "soft" or "loud". An empty name returns def.
func ParseFailurePolicy(name string, def FailurePolicy) (FailurePolicy, error) {
	switch name {
	case "":
		return def, nil
	case "soft":
		return FailSoft, nil
	case "loud":
		return FailLoud, nil
	default:
		return def, fmt.Errorf("unknown failure policy %q", name)
	}
}
