package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/meeting-summarizer-team/meeting-summarizer/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg               *config.Config
	meetingHandler    *MeetingHandler
	chatHandler       *ChatHandler
	sipWebhook        *SIPWebhookHandler
	transcribeWebhook *TranscribeWebhookHandler
	authMW            echo.MiddlewareFunc
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, meetingHandler *MeetingHandler, chatHandler *ChatHandler, sipWebhook *SIPWebhookHandler, transcribeWebhook *TranscribeWebhookHandler, authMW echo.MiddlewareFunc) *Router {
	return &Router{
		cfg:               cfg,
		meetingHandler:    meetingHandler,
		chatHandler:       chatHandler,
		sipWebhook:        sipWebhook,
		transcribeWebhook: transcribeWebhook,
		authMW:            authMW,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// Swagger UI
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupMeetingRoutes(v1)
	rt.setupChatRoutes(v1)
	rt.setupWebhookRoutes(v1)
}

// setupMeetingRoutes configures the authenticated meeting API
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	if rt.meetingHandler == nil {
		return
	}

	protected := g.Group("", rt.authMW)
	protected.POST("/createMeeting", rt.meetingHandler.CreateMeeting)
	protected.GET("/getMeetings", rt.meetingHandler.GetMeetings)
	protected.POST("/downloadFile", rt.meetingHandler.DownloadFile)
	protected.POST("/updateMeetingTitle", rt.meetingHandler.UpdateMeetingTitle)
}

// setupChatRoutes configures the authenticated knowledge base API
func (rt *Router) setupChatRoutes(g *echo.Group) {
	if rt.chatHandler == nil {
		return
	}

	protected := g.Group("", rt.authMW)
	protected.POST("/retrieveAndGenerate", rt.chatHandler.RetrieveAndGenerate)
}

// setupWebhookRoutes configures inbound webhooks. These authenticate with
// provider signatures instead of bearer tokens.
func (rt *Router) setupWebhookRoutes(g *echo.Group) {
	webhooks := g.Group("/webhooks")

	if rt.sipWebhook != nil {
		webhooks.POST("/sip", rt.sipWebhook.HandleSIPEvent)
	}
	if rt.transcribeWebhook != nil {
		webhooks.POST("/assemblyai", rt.transcribeWebhook.HandleTranscribeWebhook)
	}
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "ok",
	})
}
