package domain

import vd "github.com/go-ozzo/ozzo-validation/v4"

type BitrateMode string

const (
	BitrateStandard   BitrateMode = "standard"
	BitrateCompatible BitrateMode = "compatible"
)

type OrientationMode string

const (
	OrientationAdaptive       OrientationMode = "adaptive"
	OrientationFixedLandscape OrientationMode = "fixed_landscape"
	OrientationFixedPortrait  OrientationMode = "fixed_portrait"
)

// RenderMode controls how a frame is scaled into its surface.
type RenderMode int

const (
	RenderHidden RenderMode = iota + 1
	RenderFit
)

// VideoProfile is the encoder configuration applied before joining.
type VideoProfile struct {
	Width       int             `json:"width" mapstructure:"width"`
	Height      int             `json:"height" mapstructure:"height"`
	FrameRate   int             `json:"frame_rate" mapstructure:"frame_rate"`
	Bitrate     BitrateMode     `json:"bitrate" mapstructure:"bitrate"`
	Orientation OrientationMode `json:"orientation" mapstructure:"orientation"`
}

func DefaultVideoProfile() VideoProfile {
	return VideoProfile{
		Width:       640,
		Height:      360,
		FrameRate:   15,
		Bitrate:     BitrateStandard,
		Orientation: OrientationFixedPortrait,
	}
}

func (p VideoProfile) Validate() error {
	return vd.ValidateStruct(&p,
		vd.Field(&p.Width, vd.Required, vd.Min(1)),
		vd.Field(&p.Height, vd.Required, vd.Min(1)),
		vd.Field(&p.FrameRate, vd.Required, vd.Min(1), vd.Max(60)),
		vd.Field(&p.Bitrate, vd.Required, vd.In(BitrateStandard, BitrateCompatible)),
		vd.Field(&p.Orientation, vd.Required, vd.In(OrientationAdaptive, OrientationFixedLandscape, OrientationFixedPortrait)),
	)
}
