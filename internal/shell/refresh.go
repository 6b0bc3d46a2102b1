// UMBRA ⸻ internal/shell/refresh.go
// best-effort file browser refresh for saved outputs

package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// bumps timestamps so file browsers watching the directory re-read the
// saved file and refresh its thumbnail
func Refresh(path string) error {
	now := time.Now()

	if err := os.Chtimes(path, now, now); err != nil {
		return fmt.Errorf("failed to touch %s: %w", path, err)
	}

	// the parent directory nudge is best effort
	_ = os.Chtimes(filepath.Dir(path), now, now)

	return nil
}
