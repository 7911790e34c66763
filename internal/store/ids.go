package store

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
	"sync/atomic"

	"frameflow-cli/internal/model"
)

const (
	PrefixProject = "proj"
	PrefixShot    = "shot"
	PrefixEdit    = "edit"
	PrefixEvent   = "evt"
)

// SchedulePrefix is the id prefix for items of a schedule phase.
func SchedulePrefix(p model.Phase) string {
	switch p {
	case model.PhaseFilming:
		return "film"
	case model.PhaseEditing:
		return "cut"
	case model.PhasePublishing:
		return "pub"
	}
	return "sched"
}

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32 (lowercase, no padding).
// 8 chars base32 ~= 40 bits of space.
func newRandomID(prefix string) (string, error) {
	var b [5]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}

var fallbackSeq atomic.Int64

// NewID mints prefix-<random>, re-rolling while taken reports a collision.
func NewID(prefix string, taken func(string) bool) string {
	for i := 0; i < 16; i++ {
		id, err := newRandomID(prefix)
		if err != nil {
			break
		}
		if taken == nil || !taken(id) {
			return id
		}
	}
	// crypto/rand failure or a run of collisions; extremely unlikely.
	for {
		id := fmt.Sprintf("%s-%d", prefix, fallbackSeq.Add(1))
		if taken == nil || !taken(id) {
			return id
		}
	}
}

func (db *DB) NextProjectID() string {
	return NewID(PrefixProject, db.projectIDExists)
}
