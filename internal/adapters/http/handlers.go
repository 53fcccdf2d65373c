package http

import (
	"errors"
	nethttp "net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/VideoCall/internal/domain"
)

type handlers struct {
	deps Deps

	mu    sync.Mutex
	owner string
}

type startRequest struct {
	Channel string `json:"channel"`
}

type answerRequest struct {
	Granted *bool `json:"granted"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrChannelNameEmpty), errors.Is(err, domain.ErrChannelNameTooLong):
		return nethttp.StatusBadRequest
	case errors.Is(err, domain.ErrNoSession), errors.Is(err, ErrNoPendingPrompt):
		return nethttp.StatusNotFound
	case errors.Is(err, domain.ErrSessionExists), errors.Is(err, domain.ErrSessionNotActive):
		return nethttp.StatusConflict
	default:
		return nethttp.StatusInternalServerError
	}
}

func abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusFor(err), gin.H{"error": err.Error()})
}

// POST /api/session: start a call in the given channel.
func (h *handlers) startSession(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(nethttp.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	channel, err := domain.NewChannelName(req.Channel)
	if err != nil {
		abort(c, err)
		return
	}
	sc, err := h.deps.Sessions.Start(channel)
	if err != nil {
		abort(c, err)
		return
	}

	h.mu.Lock()
	h.owner = c.GetString(clientTokenKey)
	h.mu.Unlock()

	log.Info().Str("module", "adapters.http").Str("channel", channel.String()).Str("session", sc.ID()).Msg("session requested")
	c.JSON(nethttp.StatusAccepted, sc.Snapshot())
}

// GET /api/session: latest session, terminated or not.
func (h *handlers) getSession(c *gin.Context) {
	sc, ok := h.deps.Sessions.Current()
	if !ok {
		abort(c, domain.ErrNoSession)
		return
	}
	c.JSON(nethttp.StatusOK, sc.Snapshot())
}

// DELETE /api/session: end the call and wait for teardown.
func (h *handlers) endSession(c *gin.Context) {
	sc, ok := h.deps.Sessions.Current()
	if !ok {
		abort(c, domain.ErrNoSession)
		return
	}
	if err := sc.End(); err != nil {
		abort(c, err)
		return
	}
	select {
	case <-sc.Done():
	case <-c.Request.Context().Done():
		return
	}
	c.JSON(nethttp.StatusOK, sc.Snapshot())
}

func (h *handlers) toggleVideo(c *gin.Context) {
	sc, ok := h.deps.Sessions.Current()
	if !ok {
		abort(c, domain.ErrNoSession)
		return
	}
	muted, err := sc.ToggleVideoMute()
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, gin.H{"video_muted": muted})
}

func (h *handlers) toggleAudio(c *gin.Context) {
	sc, ok := h.deps.Sessions.Current()
	if !ok {
		abort(c, domain.ErrNoSession)
		return
	}
	muted, err := sc.ToggleAudioMute()
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, gin.H{"audio_muted": muted})
}

func (h *handlers) switchCamera(c *gin.Context) {
	sc, ok := h.deps.Sessions.Current()
	if !ok {
		abort(c, domain.ErrNoSession)
		return
	}
	if err := sc.SwitchCamera(); err != nil {
		abort(c, err)
		return
	}
	c.Status(nethttp.StatusNoContent)
}

// GET /api/permissions: per-capability status and prompts awaiting an answer.
func (h *handlers) getPermissions(c *gin.Context) {
	pending := []domain.Capability{}
	if h.deps.Prompts != nil {
		pending = h.deps.Prompts.Pending()
	}
	c.JSON(nethttp.StatusOK, gin.H{
		"permissions": h.deps.Gate.State(),
		"pending":     pending,
	})
}

// POST /api/permissions/:capability: answer a pending prompt. Only the
// browser that started the session may answer.
func (h *handlers) answerPermission(c *gin.Context) {
	capability, ok := domain.ParseCapability(c.Param("capability"))
	if !ok {
		c.AbortWithStatusJSON(nethttp.StatusBadRequest, gin.H{"error": "unknown capability"})
		return
	}
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Granted == nil {
		c.AbortWithStatusJSON(nethttp.StatusBadRequest, gin.H{"error": "granted is required"})
		return
	}

	h.mu.Lock()
	owner := h.owner
	h.mu.Unlock()
	if owner == "" || owner != c.GetString(clientTokenKey) {
		c.AbortWithStatusJSON(nethttp.StatusForbidden, gin.H{"error": "not the session owner"})
		return
	}
	if h.deps.Prompts == nil {
		abort(c, ErrNoPendingPrompt)
		return
	}
	if err := h.deps.Prompts.Answer(capability, *req.Granted); err != nil {
		abort(c, err)
		return
	}
	log.Info().Str("module", "adapters.http").Str("capability", string(capability)).Bool("granted", *req.Granted).Msg("permission answered by user")
	c.Status(nethttp.StatusNoContent)
}
