package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/export"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/logger"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/middleware"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/models"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/pdf"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/service"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/session"
)

type Handler struct {
	logger   logger.Logger
	service  *service.CouponService
	sessions *session.Manager
	export   *export.Job
	renderer *pdf.Renderer
}

func NewHandler(logger logger.Logger, svc *service.CouponService, sessions *session.Manager, job *export.Job, renderer *pdf.Renderer) *Handler {
	return &Handler{
		logger:   logger,
		service:  svc,
		sessions: sessions,
		export:   job,
		renderer: renderer,
	}
}

// NewRouter wires the staff API. Everything except ping and login sits
// behind the session token.
func NewRouter(logger logger.Logger, svc *service.CouponService, sessions *session.Manager, job *export.Job, renderer *pdf.Renderer) chi.Router {
	r := chi.NewRouter()

	handler := NewHandler(logger, svc, sessions, job, renderer)
	auth := middleware.NewSessionAuth(sessions, logger)

	r.Get("/ping", handler.PingHandler)
	r.Post("/api/login", handler.LoginHandler)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware)

		r.Post("/api/logout", handler.LogoutHandler)
		r.Get("/api/session", handler.SessionHandler)
		r.Get("/api/sevas", handler.SevaCatalogueHandler)
		r.Get("/api/coupons", handler.ListCouponsHandler)
		r.Post("/api/coupons", handler.IssueCouponHandler)
		r.Post("/api/coupons/refresh", handler.RefreshHandler)
		r.Delete("/api/coupons/{code}", handler.DeleteCouponHandler)
		r.Post("/api/coupons/{code}/redeem", handler.RedeemCouponHandler)
		r.Get("/api/coupons/{code}/pdf", handler.CouponPDFHandler)
		r.Get("/api/export/csv", handler.ExportCSVHandler)
		r.Get("/api/export/zip", handler.ExportZIPHandler)
	})

	return r
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Errorf("error writing response: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

func (h *Handler) PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		h.logger.Errorf("error writing response: %v", err)
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string         `json:"token"`
	Session models.Session `json:"session"`
}

func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		h.writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	token, sess, err := h.sessions.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, session.ErrBadCredentials) {
			h.writeError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		h.logger.Errorf("login failed: %v", err)
		h.writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session_token",
		Value:    token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
	})
	h.writeJSON(w, http.StatusOK, loginResponse{Token: token, Session: sess})
}

func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(); err != nil {
		h.logger.Errorf("logout failed: %v", err)
		h.writeError(w, http.StatusInternalServerError, "logout failed")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "session_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// SessionHandler reports the cached session for the authenticated caller.
// The token claims and the cached blob must agree on the session id; a
// mismatch means the blob belongs to a different login.
func (h *Handler) SessionHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	sess, err := h.sessions.Current()
	if err != nil {
		if errors.Is(err, session.ErrSessionExpired) {
			h.writeError(w, http.StatusUnauthorized, "session has expired")
			return
		}
		if errors.Is(err, session.ErrNoSession) {
			h.writeError(w, http.StatusUnauthorized, "no active session")
			return
		}
		h.logger.Errorf("session lookup failed: %v", err)
		h.writeError(w, http.StatusInternalServerError, "session lookup failed")
		return
	}

	if sess.Id.String() != claims.SessionId {
		h.writeError(w, http.StatusUnauthorized, "session was replaced by a newer login")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"session": sess})
}

type sevaEntry struct {
	Code  models.Seva `json:"code"`
	Label string      `json:"label"`
}

func (h *Handler) SevaCatalogueHandler(w http.ResponseWriter, r *http.Request) {
	sevas := models.AllSevas()
	entries := make([]sevaEntry, 0, len(sevas))
	for _, s := range sevas {
		entries = append(entries, sevaEntry{Code: s, Label: s.Label()})
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"sevas": entries})
}

func (h *Handler) ListCouponsHandler(w http.ResponseWriter, r *http.Request) {
	coupons := h.service.List()
	h.writeJSON(w, http.StatusOK, map[string]any{
		"couponData": coupons,
		"total":      len(coupons),
	})
}

type issueRequest struct {
	Name string      `json:"name"`
	Seva models.Seva `json:"seva"`
}

type issueResponse struct {
	Coupon   models.Coupon `json:"coupon"`
	Mirrored bool          `json:"mirrored"`
	Warning  string        `json:"warning,omitempty"`
}

func (h *Handler) IssueCouponHandler(w http.ResponseWriter, r *http.Request) {
	var req issueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.Issue(r.Context(), req.Name, req.Seva)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			h.writeError(w, http.StatusUnprocessableEntity, vErr.Message)
			return
		}
		if errors.Is(err, service.ErrUnknownSeva) {
			h.writeError(w, http.StatusBadRequest, "unknown seva category")
			return
		}
		h.logger.Errorf("issue failed: %v", err)
		h.writeError(w, http.StatusInternalServerError, "coupon generation failed")
		return
	}

	resp := issueResponse{
		Coupon:   result.Coupon,
		Mirrored: result.Outcome.RemoteErr == nil,
	}
	if result.Outcome.Diverged() {
		resp.Warning = "Coupon was saved on this device but could not be sent to the coupon registry. It will be missing from other devices until re-synced."
	}
	h.writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.service.RefreshFromRemote(r.Context())
	if err != nil {
		// Degraded read: cached collection with an explicit staleness flag.
		h.writeJSON(w, http.StatusOK, map[string]any{
			"couponData": coupons,
			"total":      len(coupons),
			"stale":      true,
			"warning":    "Coupon registry is unreachable; showing locally cached coupons.",
		})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"couponData": coupons,
		"total":      len(coupons),
		"stale":      false,
	})
}

func (h *Handler) DeleteCouponHandler(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	forceLocal := r.URL.Query().Get("force") == "local"

	outcome, err := h.service.Delete(r.Context(), code, forceLocal)
	if err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			h.writeError(w, http.StatusNotFound, "coupon not found")
			return
		}
		if errors.Is(err, service.ErrRemoteDelete) {
			// The caller may retry with ?force=local after confirming the
			// divergent local-only delete with the user.
			h.writeJSON(w, http.StatusConflict, map[string]any{
				"error":         "coupon registry delete failed; coupon kept on this device",
				"localDeleted":  false,
				"remoteDeleted": false,
			})
			return
		}
		h.logger.Errorf("delete failed: %v", err)
		h.writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}

	resp := map[string]any{
		"localDeleted":  outcome.LocalCommitted,
		"remoteDeleted": outcome.RemoteErr == nil,
	}
	if outcome.Diverged() {
		resp["warning"] = "Coupon removed on this device only; the coupon registry still lists it."
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) RedeemCouponHandler(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	coupon, err := h.service.Redeem(r.Context(), code)
	if err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			h.writeError(w, http.StatusNotFound, "coupon not found")
			return
		}
		h.logger.Errorf("redeem failed: %v", err)
		h.writeError(w, http.StatusBadGateway, "coupon registry is unreachable; coupon not redeemed")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"coupon": coupon})
}

func (h *Handler) CouponPDFHandler(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	coupon, ok := h.service.Find(code)
	if !ok {
		h.writeError(w, http.StatusNotFound, "coupon not found")
		return
	}

	content, err := h.renderer.Render(coupon)
	if err != nil {
		h.logger.Errorf("PDF render failed for %s: %v", code, err)
		h.writeError(w, http.StatusInternalServerError, "PDF generation failed")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+pdf.FileName(coupon))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content); err != nil {
		h.logger.Errorf("error writing response: %v", err)
	}
}

func (h *Handler) ExportCSVHandler(w http.ResponseWriter, r *http.Request) {
	content, fileName, err := h.export.CSV(r.Context())
	if err != nil {
		h.logger.Errorf("CSV export failed: %v", err)
		h.writeError(w, http.StatusBadGateway, "coupon registry is unreachable; export aborted")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content); err != nil {
		h.logger.Errorf("error writing response: %v", err)
	}
}

func (h *Handler) ExportZIPHandler(w http.ResponseWriter, r *http.Request) {
	content, fileName, err := h.export.ZIP(r.Context())
	if err != nil {
		h.logger.Errorf("ZIP export failed: %v", err)
		h.writeError(w, http.StatusBadGateway, "coupon registry is unreachable; export aborted")
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content); err != nil {
		h.logger.Errorf("error writing response: %v", err)
	}
}
