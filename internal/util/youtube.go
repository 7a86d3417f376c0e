package util

import "regexp"

// videoIDPattern finds an 11-character identifier after "v=" or a "/".
var videoIDPattern = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`)

// ExtractVideoID returns the first YouTube video identifier found in input.
// Watch, share (youtu.be), shorts and embed URLs are recognised.
func ExtractVideoID(input string) (string, bool) {
	m := videoIDPattern.FindStringSubmatch(input)
	if len(m) < 2 {
		return "", false
	}
	return m[1], true
}

// IsVideoID reports whether s is exactly a well-formed identifier.
func IsVideoID(s string) bool {
	return exactVideoIDPattern.MatchString(s)
}

var exactVideoIDPattern = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)
