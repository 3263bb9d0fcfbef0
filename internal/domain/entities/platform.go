package entities

// MeetingPlatform identifies the conferencing provider a meeting runs on
type MeetingPlatform string

const (
	PlatformChime  MeetingPlatform = "Chime"
	PlatformWebex  MeetingPlatform = "Webex"
	PlatformZoom   MeetingPlatform = "Zoom"
	PlatformGoogle MeetingPlatform = "Google"
	PlatformTeams  MeetingPlatform = "Teams"
)

// ParsePlatform maps a raw string onto a known platform.
// Returns false for anything outside the supported set; callers decide
// whether that is an error or a silent skip.
func ParsePlatform(s string) (MeetingPlatform, bool) {
	switch MeetingPlatform(s) {
	case PlatformChime, PlatformWebex, PlatformZoom, PlatformGoogle, PlatformTeams:
		return MeetingPlatform(s), true
	}
	return "", false
}

// String implements fmt.Stringer
func (p MeetingPlatform) String() string {
	return string(p)
}
