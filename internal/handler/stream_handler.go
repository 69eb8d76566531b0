package handler

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberws "github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"clipnote-be/internal/dashboard"
	"clipnote-be/internal/pkg/logger"
	"clipnote-be/internal/pkg/serverutils"
	"clipnote-be/internal/service"
	ws "clipnote-be/internal/websocket"
)

// StreamHandler upgrades authenticated clients to a websocket and
// binds each connection to its own dashboard controller.
type StreamHandler struct {
	hub     *ws.Hub
	syncSvc service.ISyncService
	noteSvc service.INoteService
	clipSvc service.IClipService
	logger  logger.ILogger
}

func NewStreamHandler(
	hub *ws.Hub,
	syncSvc service.ISyncService,
	noteSvc service.INoteService,
	clipSvc service.IClipService,
	logger logger.ILogger,
) *StreamHandler {
	return &StreamHandler{
		hub:     hub,
		syncSvc: syncSvc,
		noteSvc: noteSvc,
		clipSvc: clipSvc,
		logger:  logger,
	}
}

func (h *StreamHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/stream", h.upgrade, fiberws.New(h.serve))
}

// upgrade authenticates the handshake. The token comes from either
// the Authorization header or a ?token= query parameter, since
// browser websocket clients cannot set headers.
func (h *StreamHandler) upgrade(ctx *fiber.Ctx) error {
	if !fiberws.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}

	tokenStr := ctx.Query("token")
	if tokenStr == "" {
		authHeader := ctx.Get("Authorization")
		tokenStr = strings.TrimPrefix(authHeader, "Bearer ")
	}
	if tokenStr == "" {
		return fiber.ErrUnauthorized
	}

	userID, err := serverutils.ParseToken(tokenStr)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	ctx.Locals("ws_user_id", userID)
	return ctx.Next()
}

func (h *StreamHandler) serve(conn *fiberws.Conn) {
	userID, ok := conn.Locals("ws_user_id").(uuid.UUID)
	if !ok {
		_ = conn.Close()
		return
	}

	client := ws.NewClient(h.hub, conn, userID)
	controller := dashboard.NewController(userID, h.noteSvc, h.clipSvc, client.Enqueue, h.logger)
	client.Attach(controller, controller)

	h.logger.Info("stream", "client connected", map[string]interface{}{
		"user_id": userID.String(),
	})

	// Register before pushing so a change landing during the initial
	// queries still reaches this connection. Worst case the client sees
	// the same snapshot twice, which replaces wholesale anyway.
	client.Register()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	h.syncSvc.PushInitial(ctx, userID, client.Enqueue)
	cancel()

	client.Serve()

	h.logger.Info("stream", "client disconnected", map[string]interface{}{
		"user_id": userID.String(),
	})
}
