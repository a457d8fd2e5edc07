package levels

import (
	"regexp"
	"strings"
	"time"
)

// Ext is the extension of level files.
const Ext = ".level"

var (
	slugInvalid = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)
	slugDashes  = regexp.MustCompile(`-+`)
)

// Slugify turns a level name into a file-name-safe stem. Names with no usable
// characters become "level".
func Slugify(name string) string {
	s := slugInvalid.ReplaceAllString(strings.TrimSpace(name), "-")
	s = strings.Trim(slugDashes.ReplaceAllString(s, "-"), "-")
	if s == "" {
		return "level"
	}
	return s
}

// WithExt appends Ext unless name already ends with it.
func WithExt(name string) string {
	if strings.HasSuffix(name, Ext) {
		return name
	}
	return name + Ext
}

// FileName is the file name a level called name is saved under by default.
func FileName(name string) string {
	return Slugify(name) + Ext
}

// TimestampedName returns level_YYYYMMDD_HHMMSS.level for t.
func TimestampedName(t time.Time) string {
	return "level_" + t.Format("20060102_150405") + Ext
}
