package helpers

import (
	"strconv"
	"strings"
)

// ParseID parses a positive path identifier.
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ContainsID reports whether id is present in ids.
func ContainsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// AddID appends id unless it is already present.
func AddID(ids []int64, id int64) []int64 {
	if ContainsID(ids, id) {
		return ids
	}
	return append(ids, id)
}
