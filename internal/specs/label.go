package specs

import "regexp"

// Matches a "/label/<name>" suffix on a channel string.
var labelSuffix = regexp.MustCompile(`/label/([a-zA-Z0-9\-]+)$`)

// Splits a channel string into the bare channel and its embedded label.
//
//	StripLabel("some-channel/label/staging") = ("some-channel", "staging")
//	StripLabel("some-channel")               = ("some-channel", "")
func StripLabel(channel string) (string, string) {
	m := labelSuffix.FindStringSubmatch(channel)
	if m == nil {
		return channel, ""
	}
	return channel[:len(channel)-len(m[0])], m[1]
}
