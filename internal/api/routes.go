package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/himanshu0072451/homelink/adapters/notify"
	"github.com/himanshu0072451/homelink/domain/entities"
	"github.com/himanshu0072451/homelink/internal/connection"
	"github.com/himanshu0072451/homelink/usecase"
)

// ConnectionStatus is the read-only slice of the connection manager the
// display layer needs.
type ConnectionStatus interface {
	Phase() connection.Phase
	LastError() string
}

// Controller bundles the services behind the control surface routes.
type Controller struct {
	status     ConnectionStatus
	reducer    *usecase.StateReducer
	dispatcher *usecase.CommandDispatcher
	voice      *usecase.VoiceService
	feed       *notify.Feed
	logger     *zap.Logger
}

// NewController wires the services the routes delegate to.
func NewController(
	status ConnectionStatus,
	reducer *usecase.StateReducer,
	dispatcher *usecase.CommandDispatcher,
	voice *usecase.VoiceService,
	feed *notify.Feed,
	logger *zap.Logger,
) *Controller {
	return &Controller{
		status:     status,
		reducer:    reducer,
		dispatcher: dispatcher,
		voice:      voice,
		feed:       feed,
		logger:     logger,
	}
}

// InitRoutes initializes all control surface routes
func InitRoutes(e *echo.Echo, ctrl *Controller) {
	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "homelink",
		})
	})

	v1 := e.Group("/api/v1")

	v1.GET("/appliance", ctrl.getAppliance)
	v1.POST("/appliance/power", ctrl.postPower)
	v1.POST("/voice/session", ctrl.postVoiceSession)
	v1.GET("/notifications", ctrl.getNotifications)
}

func (ctrl *Controller) getAppliance(c echo.Context) error {
	return c.JSON(http.StatusOK, ApplianceResponse{
		State:      ctrl.reducer.State(),
		Phase:      string(ctrl.status.Phase()),
		Error:      ctrl.status.LastError(),
		Listening:  ctrl.voice.Listening(),
		Transcript: ctrl.voice.Transcript(),
	})
}

func (ctrl *Controller) postPower(c echo.Context) error {
	var req PowerRequest
	if err := c.Bind(&req); err != nil {
		ctrl.logger.Error("Failed to bind power request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}

	var cmd entities.Command
	switch req.Command {
	case string(entities.CommandOn):
		cmd = entities.CommandOn
	case string(entities.CommandOff):
		cmd = entities.CommandOff
	default:
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_command",
			Message: "Command must be ON or OFF",
		})
	}

	// The dispatcher surfaces connectivity failures through the
	// notification feed; the request itself is always accepted.
	ctrl.dispatcher.Dispatch(cmd)
	return c.JSON(http.StatusAccepted, map[string]string{
		"command": string(cmd),
	})
}

func (ctrl *Controller) postVoiceSession(c echo.Context) error {
	// The session outlives this request, so it does not inherit the
	// request context.
	err := ctrl.voice.StartSession(context.Background())
	switch {
	case errors.Is(err, usecase.ErrSessionActive):
		return c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "session_active",
			Message: "A voice session is already running",
		})
	case err != nil:
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:   "voice_unavailable",
			Message: "Voice commands are not supported here",
		})
	}
	return c.JSON(http.StatusAccepted, map[string]string{
		"status": "listening",
	})
}

func (ctrl *Controller) getNotifications(c echo.Context) error {
	return c.JSON(http.StatusOK, ctrl.feed.Recent())
}
