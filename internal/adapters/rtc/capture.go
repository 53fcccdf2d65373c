package rtc

import (
	"context"
	"errors"
	"net"

	"github.com/pion/rtp"
	"github.com/rs/zerolog"
)

// CaptureOptions name the UDP addresses an external encoder (ffmpeg,
// gstreamer) sends local camera and microphone RTP to. Empty disables the
// source.
type CaptureOptions struct {
	VideoRTPAddr string
	AudioRTPAddr string
}

// listenCapture opens the UDP sockets of opts. The caller owns the returned
// connections.
func listenCapture(opts CaptureOptions) (video, audio net.PacketConn, err error) {
	if opts.VideoRTPAddr != "" {
		if video, err = net.ListenPacket("udp", opts.VideoRTPAddr); err != nil {
			return nil, nil, err
		}
	}
	if opts.AudioRTPAddr != "" {
		if audio, err = net.ListenPacket("udp", opts.AudioRTPAddr); err != nil {
			if video != nil {
				_ = video.Close()
			}
			return nil, nil, err
		}
	}
	return video, audio, nil
}

// ingest reads RTP datagrams from conn and hands each packet to write until
// ctx is done. conn is closed on return.
func ingest(ctx context.Context, conn net.PacketConn, logger zerolog.Logger, write func(*rtp.Packet) error) {
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()
	defer conn.Close()

	buf := make([]byte, 1500)
	for {
		n, _, err := conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() == nil && !errors.Is(err, net.ErrClosed) {
				logger.Warn().Err(err).Msg("capture read stopped")
			}
			return
		}
		pkt := &rtp.Packet{}
		if err := pkt.Unmarshal(buf[:n]); err != nil {
			logger.Debug().Err(err).Msg("capture: not an RTP packet")
			continue
		}
		if err := write(pkt); err != nil {
			logger.Debug().Err(err).Msg("capture packet dropped")
		}
	}
}
