package validation

import (
	"regexp"
)

// Save names end up as a varchar(64) primary key and inside a Redis key.
var saveNameRe = regexp.MustCompile(`^[A-Za-z0-9_\-]{1,64}$`)

const maxAssetID = 1 << 20

func IsValidSaveName(name string) bool {
	return saveNameRe.MatchString(name)
}

// IsValidAssetID reports whether v, decoded from JSON, is a whole non-negative number.
func IsValidAssetID(v interface{}) (int, bool) {
	f, ok := v.(float64)
	if !ok || f < 0 || f > maxAssetID || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}
