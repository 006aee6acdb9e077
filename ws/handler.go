package ws

import (
	"net/http"
	"strings"

	"gigflow_backend/internal/logger"
	"gigflow_backend/pkg/apperrors"
	"gigflow_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	Manager  *Manager
	cfg      ClientConfig
	upgrader websocket.Upgrader
}

// NewWebSocketHandler builds the GET /ws handler. An empty allowedOrigins
// accepts any origin.
func NewWebSocketHandler(manager *Manager, cfg ClientConfig, allowedOrigins []string) *WebSocketHandler {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[strings.TrimRight(strings.TrimSpace(o), "/")] = struct{}{}
	}

	return &WebSocketHandler{
		Manager: manager,
		cfg:     cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(origins) == 0 {
					return true
				}
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := origins[origin]
				return ok
			},
		},
	}
}

// ServeWS authenticates before upgrading, so a bad credential gets a plain
// 401 response instead of a closed socket.
func (h *WebSocketHandler) ServeWS(c *gin.Context) {
	session, err := h.Manager.Connect(CredentialFromRequest(c.Request))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.CtxWarn(c.Request.Context(), "websocket upgrade failed", "error", err)
		h.Manager.Disconnect(session)
		return
	}

	newClient(h.Manager, session, conn, h.cfg).run()
}

// CredentialFromRequest looks for the JWT in the token query parameter,
// the Authorization header and the token cookie, in that order.
func CredentialFromRequest(r *http.Request) string {
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := r.Cookie(contextkeys.TokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}
