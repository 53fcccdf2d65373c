package domain

// Capability is a device permission the call needs before the engine exists.
type Capability string

const (
	Microphone Capability = "microphone"
	Camera     Capability = "camera"
)

// RequiredCapabilities lists capabilities in the order they are prompted.
// Microphone comes first so an early decline never shows a camera prompt.
var RequiredCapabilities = []Capability{Microphone, Camera}

func ParseCapability(s string) (Capability, bool) {
	switch Capability(s) {
	case Microphone:
		return Microphone, true
	case Camera:
		return Camera, true
	}
	return "", false
}

type PermissionStatus string

const (
	PermissionUnrequested PermissionStatus = "unrequested"
	PermissionRequested   PermissionStatus = "requested"
	PermissionGranted     PermissionStatus = "granted"
	PermissionDenied      PermissionStatus = "denied"
)

// PermissionState is the per-capability prompt status.
type PermissionState map[Capability]PermissionStatus

func NewPermissionState() PermissionState {
	ps := make(PermissionState, len(RequiredCapabilities))
	for _, c := range RequiredCapabilities {
		ps[c] = PermissionUnrequested
	}
	return ps
}

// AllGranted reports whether every required capability was granted.
func (ps PermissionState) AllGranted() bool {
	for _, c := range RequiredCapabilities {
		if ps[c] != PermissionGranted {
			return false
		}
	}
	return true
}

func (ps PermissionState) Clone() PermissionState {
	out := make(PermissionState, len(ps))
	for k, v := range ps {
		out[k] = v
	}
	return out
}
