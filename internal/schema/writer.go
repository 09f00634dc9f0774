package schema

import (
	"encoding/json"
	"fmt"
	"os"
)

// WriteFile persists the snapshot as pretty-printed JSON at the given
// path, overwriting any existing file.
func WriteFile(snapshot *Snapshot, path string) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot to %s: %w", path, err)
	}

	return nil
}
