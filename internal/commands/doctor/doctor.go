// Package doctor runs health checks against a parley setup and repairs the
// problems checks mark as fixable.
package doctor

import (
	"context"
	"fmt"
)

// Status is the outcome of a single check item.
type Status int

const (
	StatusPass Status = iota
	StatusWarn
	StatusFail
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// CheckItem is one line of a check result.
type CheckItem struct {
	Label   string `json:"label"`
	Status  Status `json:"status"`
	Detail  string `json:"detail,omitempty"`
	Fixable bool   `json:"fixable,omitempty"`
	Fixed   bool   `json:"fixed,omitempty"`

	// Target is what a Fixer acts on, such as a file path.
	Target string `json:"-"`
}

func (i CheckItem) needsFix() bool {
	return i.Fixable && i.Status != StatusPass
}

// Result groups the items produced by one check.
type Result struct {
	Name  string      `json:"name"`
	Items []CheckItem `json:"items"`
}

// Check inspects one area of the setup.
type Check interface {
	Name() string
	Run(ctx context.Context) Result
}

// Fixer is a Check that can repair the items it reports as Fixable.
type Fixer interface {
	Check
	Fix(ctx context.Context, item CheckItem) error
}

// Options controls RunAll.
type Options struct {
	// Fix repairs fixable items of checks that implement Fixer.
	Fix bool
}

// RunAll runs every check in order. With opts.Fix set, fixable items are
// handed to their check's Fixer and updated with the outcome.
func RunAll(ctx context.Context, checks []Check, opts Options) []Result {
	results := make([]Result, 0, len(checks))
	for _, check := range checks {
		result := check.Run(ctx)
		if fixer, ok := check.(Fixer); ok && opts.Fix {
			applyFixes(ctx, fixer, result.Items)
		}
		results = append(results, result)
	}
	return results
}

func applyFixes(ctx context.Context, fixer Fixer, items []CheckItem) {
	for i := range items {
		item := &items[i]
		if !item.needsFix() {
			continue
		}

		if err := fixer.Fix(ctx, *item); err != nil {
			item.Status = StatusFail
			item.Detail = fmt.Sprintf("fix failed: %v", err)
			continue
		}

		item.Status = StatusPass
		item.Fixable = false
		item.Fixed = true
		item.Detail = "fixed: " + item.Detail
	}
}

// Tally counts items across results.
type Tally struct {
	Passed  int `json:"passed"`
	Warned  int `json:"warned"`
	Failed  int `json:"failed"`
	Fixable int `json:"fixable"`
	Fixed   int `json:"fixed"`
}

// Healthy reports whether no item failed.
func (t Tally) Healthy() bool {
	return t.Failed == 0
}

// Summarize tallies the items of results.
func Summarize(results []Result) Tally {
	var t Tally
	for _, r := range results {
		for _, item := range r.Items {
			switch item.Status {
			case StatusPass:
				t.Passed++
			case StatusWarn:
				t.Warned++
			case StatusFail:
				t.Failed++
			}
			if item.needsFix() {
				t.Fixable++
			}
			if item.Fixed {
				t.Fixed++
			}
		}
	}
	return t
}
