package learner

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// Fingerprint identifies the content of a roadmap for cache invalidation.
// It covers the ordered weeks and tasks (numbers, ids, titles) but not
// completion, so toggling a task keeps the daily sample.
func Fingerprint(weeks []Week) string {
	h := sha256.New()
	for _, w := range weeks {
		h.Write([]byte("w\x00" + strconv.Itoa(w.Week) + "\x00" + w.Title + "\n"))
		for _, t := range w.Tasks {
			h.Write([]byte("t\x00" + t.ID + "\x00" + t.Title + "\n"))
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
