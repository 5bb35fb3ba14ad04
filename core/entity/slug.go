package entity

import "strings"

// Slugify derives the canonical natural key from a display string.
// The result is lowercase, contains only alphanumerics and hyphens, with
// runs of any other characters collapsed to a single hyphen and leading
// and trailing hyphens trimmed.
//
// Slugify is total and idempotent: Slugify(Slugify(s)) == Slugify(s).
// An empty result means the input carries no usable key; callers must
// treat that as invalid for kinds that require one.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	pendingHyphen := false
	for _, r := range strings.ToLower(s) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}

	return b.String()
}
