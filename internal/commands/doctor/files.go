package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	lockExt = ".lock"
	tempExt = ".tmp"
)

// StaleFileCheck detects lock files without a transcript and temp files left
// behind by interrupted writes in the conversations directory. Both are
// removed by Fix.
type StaleFileCheck struct {
	dir string
}

var _ Fixer = (*StaleFileCheck)(nil)

// NewStaleFileCheck creates a stale file check over dir.
func NewStaleFileCheck(dir string) *StaleFileCheck {
	return &StaleFileCheck{dir: dir}
}

func (c *StaleFileCheck) Name() string {
	return "Stale Files"
}

func (c *StaleFileCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			result.Items = append(result.Items, CheckItem{
				Label:  "Conversations directory",
				Status: StatusPass,
				Detail: "no conversations yet",
			})
			return result
		}
		result.Items = append(result.Items, CheckItem{
			Label:  "Read conversations directory",
			Status: StatusFail,
			Detail: err.Error(),
		})
		return result
	}

	present := make(map[string]bool, len(entries))
	for _, entry := range entries {
		present[entry.Name()] = true
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !isStale(name, present) {
			continue
		}
		result.Items = append(result.Items, CheckItem{
			Label:   name,
			Status:  StatusWarn,
			Detail:  describeStale(name),
			Fixable: true,
			Target:  filepath.Join(c.dir, name),
		})
	}

	if len(result.Items) == 0 {
		result.Items = append(result.Items, CheckItem{
			Label:  "No stale files",
			Status: StatusPass,
			Detail: "every lock file has a transcript",
		})
	}

	return result
}

// Fix deletes the stale file named by item.Target.
func (c *StaleFileCheck) Fix(_ context.Context, item CheckItem) error {
	if item.Target == "" {
		return fmt.Errorf("no file for %q", item.Label)
	}
	if err := os.Remove(item.Target); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func isStale(name string, present map[string]bool) bool {
	switch {
	case strings.HasSuffix(name, tempExt):
		return true
	case strings.HasSuffix(name, lockExt):
		return !present[strings.TrimSuffix(name, lockExt)]
	default:
		return false
	}
}

func describeStale(name string) string {
	if strings.HasSuffix(name, tempExt) {
		return "interrupted write"
	}
	return "lock file without transcript"
}
