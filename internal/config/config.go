package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	vd "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/dkeye/VideoCall/internal/domain"
)

type Config struct {
	Mode       string        `mapstructure:"mode"`
	Port       int           `mapstructure:"port"`
	StaticPath string        `mapstructure:"static_path"`
	ReadLimit  int64         `mapstructure:"read_limit"`
	PingPeriod time.Duration `mapstructure:"ping_period"`
	Secret     string        `mapstructure:"secret"`
	LogLevel   string        `mapstructure:"log_level"`

	// AppID identifies the deployment to the media engine.
	AppID string `mapstructure:"app_id"`
	// Token is empty when the channel server has token authentication disabled.
	Token      string   `mapstructure:"token"`
	JoinInfo   string   `mapstructure:"join_info"`
	SignalURL  string   `mapstructure:"signal_url"`
	ICEServers []string `mapstructure:"ice_servers"`

	Capture     CaptureConfig       `mapstructure:"capture"`
	Video       domain.VideoProfile `mapstructure:"video"`
	Permissions PermissionConfig    `mapstructure:"permissions"`
	EventBuffer int                 `mapstructure:"event_buffer"`
}

// CaptureConfig names the UDP addresses local camera and microphone RTP
// arrives on. Empty addresses publish nothing.
type CaptureConfig struct {
	VideoRTPAddr string `mapstructure:"video_rtp_addr"`
	AudioRTPAddr string `mapstructure:"audio_rtp_addr"`
}

type PermissionConfig struct {
	// AutoGrant answers prompts without asking, for headless deployments.
	AutoGrant bool          `mapstructure:"auto_grant"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("static_path", "./web")
	v.SetDefault("read_limit", 32768)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("log_level", "info")
	v.SetDefault("secret", "")

	v.SetDefault("app_id", "")
	v.SetDefault("token", "")

	v.SetDefault("join_info", "Extra Optional Data")
	v.SetDefault("signal_url", "ws://127.0.0.1:7000/signal")
	v.SetDefault("ice_servers", []string{"stun:stun.l.google.com:19302"})
	v.SetDefault("capture.video_rtp_addr", "")
	v.SetDefault("capture.audio_rtp_addr", "")

	def := domain.DefaultVideoProfile()
	v.SetDefault("video.width", def.Width)
	v.SetDefault("video.height", def.Height)
	v.SetDefault("video.frame_rate", def.FrameRate)
	v.SetDefault("video.bitrate", string(def.Bitrate))
	v.SetDefault("video.orientation", string(def.Orientation))

	v.SetDefault("permissions.auto_grant", false)
	v.SetDefault("permissions.timeout", "60s")
	v.SetDefault("event_buffer", 64)
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("VIDEOCALL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("module", "config").
		Str("mode", cfg.Mode).
		Int("port", cfg.Port).
		Str("signal_url", cfg.SignalURL).
		Bool("token_auth", cfg.Token != "").
		Msg("config ready")
	return cfg, nil
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values the session controller depends on. A missing
// app_id is not rejected here: engine creation reports it as a session
// failure, which is what the user sees.
func (c *Config) Validate() error {
	return vd.ValidateStruct(c,
		vd.Field(&c.Port, vd.Required, vd.Min(1), vd.Max(65535)),
		vd.Field(&c.Video),
		vd.Field(&c.EventBuffer, vd.Required, vd.Min(1)),
		vd.Field(&c.Permissions),
	)
}

func (p PermissionConfig) Validate() error {
	return vd.ValidateStruct(&p,
		vd.Field(&p.Timeout, vd.Required, vd.Min(time.Second)),
	)
}

func (c *Config) VideoProfile() domain.VideoProfile { return c.Video }
