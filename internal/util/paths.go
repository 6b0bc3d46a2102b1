// UMBRA ⸻ internal/util/paths.go
// derived path construction for labeled outputs

package util

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"
)

// marker carried by temporary siblings while an overwrite is in flight
const TempMarker = "_label_tmp_"

var tempToken atomic.Uint64

func init() {
	tempToken.Store(uint64(time.Now().UnixMilli()))
}

// inserts suffix immediately before the final extension of the last path
// component; paths without an extension get the suffix appended
func WithSuffix(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}

// sibling path in the same directory, used as the rename source during an
// overwrite; the token never repeats within a process
func TempSibling(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	name := fmt.Sprintf("%s%s%d.png", stem, TempMarker, tempToken.Add(1))
	return filepath.Join(filepath.Dir(path), name)
}
