package config

import "unicode/utf8"

const (
	badFileName = "_bad_file_name_"
	// most file systems limit single path element to 255 bytes
	maxNameBytes = 255
)

// limitNameLength cuts name to maxNameBytes keeping it valid UTF-8.
func limitNameLength(name string) string {
	if len(name) <= maxNameBytes {
		return name
	}
	cut := maxNameBytes
	for cut > 0 && !utf8.RuneStart(name[cut]) {
		cut--
	}
	return name[:cut]
}
