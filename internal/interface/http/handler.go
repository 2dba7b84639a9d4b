package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/vibe-weather/internal/domain/chat"
	"github.com/yanqian/vibe-weather/internal/domain/clock"
	"github.com/yanqian/vibe-weather/internal/domain/effects"
	"github.com/yanqian/vibe-weather/internal/domain/session"
	"github.com/yanqian/vibe-weather/internal/domain/weather"
)

// Handler wires the HTTP transport to the dashboard session service.
type Handler struct {
	sessions session.Service
	clock    *clock.Formatter
	logger   *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(sessions session.Service, formatter *clock.Formatter, logger *slog.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		clock:    formatter,
		logger:   logger.With("component", "http.handler"),
	}
}

type searchRequest struct {
	City string `json:"city"`
}

type locateRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type panelRequest struct {
	Panel   string `json:"panel"`
	Visible *bool  `json:"visible"`
}

type chatRequest struct {
	Message string `json:"message"`
	Quick   string `json:"quick"`
}

type clockResponse struct {
	Clock    string `json:"clock"`
	Timezone string `json:"timezone"`
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Clock renders the header clock for the tz query parameter or the server zone.
func (h *Handler) Clock(c *gin.Context) {
	formatter := h.clockFor(c)
	c.JSON(http.StatusOK, clockResponse{Clock: formatter.FormatNow(), Timezone: formatter.Location().String()})
}

// ClockStream pushes the header clock with Server-Sent Events until the client leaves.
func (h *Handler) ClockStream(c *gin.Context) {
	formatter := h.clockFor(c)

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "stream_unsupported", "streaming not supported", nil))
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Status(http.StatusOK)

	formatter.Run(c.Request.Context(), func(text string) {
		payload, err := json.Marshal(clockResponse{Clock: text, Timezone: formatter.Location().String()})
		if err != nil {
			h.logger.Error("marshal clock frame failed", "error", err)
			return
		}
		c.Writer.Write([]byte("data: "))
		c.Writer.Write(payload)
		c.Writer.Write([]byte("\n\n"))
		flusher.Flush()
	})
}

// Themes lists the background catalog.
func (h *Handler) Themes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"themes": session.Themes()})
}

// CreateSession opens a dashboard session; the body is optional.
func (h *Handler) CreateSession(c *gin.Context) {
	var req session.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	snap, err := h.sessions.Create(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}
	c.JSON(http.StatusCreated, snap)
}

// GetSession returns the current snapshot.
func (h *Handler) GetSession(c *gin.Context) {
	h.respond(c)(h.sessions.Get(c.Request.Context(), c.Param("id")))
}

// CloseSession tears a session down and drops its pending chat replies.
func (h *Handler) CloseSession(c *gin.Context) {
	if err := h.sessions.Close(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, fromAppError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// Search looks up a city by name.
func (h *Handler) Search(c *gin.Context) {
	var req searchRequest
	if !bind(c, &req) {
		return
	}
	h.respond(c)(h.sessions.Search(c.Request.Context(), c.Param("id"), req.City))
}

// Locate loads the forecast for the browser's geolocation result.
func (h *Handler) Locate(c *gin.Context) {
	var req locateRequest
	if !bind(c, &req) {
		return
	}
	if req.Latitude == nil || req.Longitude == nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "latitude and longitude are required", nil))
		return
	}
	coords := weather.Coordinates{Latitude: *req.Latitude, Longitude: *req.Longitude}
	h.respond(c)(h.sessions.Locate(c.Request.Context(), c.Param("id"), coords))
}

// CycleTheme advances to the next background.
func (h *Handler) CycleTheme(c *gin.Context) {
	h.respond(c)(h.sessions.CycleTheme(c.Request.Context(), c.Param("id")))
}

// ToggleGravity flips the anti-gravity mode.
func (h *Handler) ToggleGravity(c *gin.Context) {
	h.respond(c)(h.sessions.ToggleGravity(c.Request.Context(), c.Param("id")))
}

// SetPanel shows, hides or toggles an overlay.
func (h *Handler) SetPanel(c *gin.Context) {
	var req panelRequest
	if !bind(c, &req) {
		return
	}
	h.respond(c)(h.sessions.SetPanel(c.Request.Context(), c.Param("id"), session.Panel(req.Panel), req.Visible))
}

// Chat sends a free-text message or a quick-reply shortcut.
func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if !bind(c, &req) {
		return
	}
	ctx := c.Request.Context()
	id := c.Param("id")
	if req.Quick != "" {
		h.respond(c)(h.sessions.QuickReply(ctx, id, req.Quick))
		return
	}
	h.respond(c)(h.sessions.Chat(ctx, id, req.Message))
}

// QuickPrompts lists the shortcut questions.
func (h *Handler) QuickPrompts(c *gin.Context) {
	out := make(map[string]string, 2)
	for _, kind := range []string{chat.QuickOutfit, chat.QuickRain} {
		if prompt, ok := chat.QuickPrompt(kind); ok {
			out[kind] = prompt
		}
	}
	c.JSON(http.StatusOK, gin.H{"prompts": out})
}

// Parallax returns layer transforms for a pointer position.
func (h *Handler) Parallax(c *gin.Context) {
	var evt effects.PointerEvent
	if !bind(c, &evt) {
		return
	}
	transforms, err := h.sessions.Parallax(c.Request.Context(), c.Param("id"), evt)
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"transforms": transforms})
}

func (h *Handler) respond(c *gin.Context) func(session.Snapshot, error) {
	return func(snap session.Snapshot, err error) {
		if err != nil {
			abortWithError(c, fromAppError(err))
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

func (h *Handler) clockFor(c *gin.Context) *clock.Formatter {
	return h.clock.In(clock.LoadLocation(c.Query("tz"), h.clock.Location()))
}

func bind(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return false
	}
	return true
}
