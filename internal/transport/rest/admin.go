package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/pidgin-backend/internal/service/admin"
	"github.com/heartmarshall/pidgin-backend/internal/service/translation/phraseindex"
	"github.com/heartmarshall/pidgin-backend/internal/transport/middleware"
	"github.com/heartmarshall/pidgin-backend/pkg/ctxutil"
)

// adminService defines the minimal interface needed by AdminHandler.
type adminService interface {
	Login(ctx context.Context, input admin.LoginInput) (*admin.LoginResult, error)
	ReloadPhrases(ctx context.Context) (phraseindex.Stats, error)
}

// AdminHandler serves admin REST endpoints.
type AdminHandler struct {
	svc        adminService
	trustProxy bool
	log        *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(svc adminService, trustProxy bool, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		svc:        svc,
		trustProxy: trustProxy,
		log:        logger.With("handler", "admin"),
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Username  string    `json:"username"`
}

type reloadResponse struct {
	Status string            `json:"status"`
	Stats  phraseindex.Stats `json:"stats"`
	By     string            `json:"by"`
}

// Login handles POST /admin/login.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	res, err := h.svc.Login(r.Context(), admin.LoginInput{
		Username:  req.Username,
		Password:  req.Password,
		ClientKey: middleware.ClientIP(r, h.trustProxy),
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		Username:  res.Username,
	})
}

// Reload handles POST /admin/reload. Requires AdminAuth in front.
func (h *AdminHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := middleware.RequireAdmin(r.Context()); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	stats, err := h.svc.ReloadPhrases(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	by, _ := ctxutil.AdminFromCtx(r.Context())
	writeJSON(w, http.StatusOK, reloadResponse{Status: "reloaded", Stats: stats, By: by})
}
