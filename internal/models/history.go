package models

import (
	"fmt"
	"strings"
	"time"
)

// Target selects which preference an apply touched.
type Target string

const (
	TargetAccent    Target = "accent"
	TargetHighlight Target = "highlight"
	TargetBoth      Target = "both"
)

// ParseTarget validates a target name.
func ParseTarget(value string) (Target, error) {
	switch t := Target(strings.ToLower(strings.TrimSpace(value))); t {
	case TargetAccent, TargetHighlight, TargetBoth:
		return t, nil
	default:
		return "", fmt.Errorf("unknown target %q (expected accent, highlight, or both)", value)
	}
}

// Policy names how a palette key was chosen.
type Policy string

const (
	// PolicyMajority picks the most common per-colour nearest key.
	PolicyMajority Policy = "majority"
	// PolicyCumulative picks the key with the smallest summed distance.
	PolicyCumulative Policy = "cumulative"
	// PolicyManual means the key was given directly.
	PolicyManual Policy = "manual"
)

// ParsePolicy validates a matching policy name. Manual is not a matching policy.
func ParsePolicy(value string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(value))); p {
	case PolicyMajority, PolicyCumulative:
		return p, nil
	case "":
		return PolicyMajority, nil
	default:
		return "", fmt.Errorf("unknown policy %q (expected majority or cumulative)", value)
	}
}

// HistoryEntry records one change this tool made to the preference store.
type HistoryEntry struct {
	ID        string    `json:"id"`
	AppliedAt time.Time `json:"applied_at"`
	Target    Target    `json:"target"`
	Key       int       `json:"key"`
	Name      string    `json:"name"`
	Policy    Policy    `json:"policy"`
	Inputs    []string  `json:"inputs,omitempty"`
}
