package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"cafe-menu/menu-svc/internal/domain"
	"cafe-menu/menu-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const SessionHeader = "X-Admin-Session"

type Handler struct {
	Loader  service.MenuLoaderInterface
	State   *service.MenuState
	Mutator service.MutatorInterface
	Auth    service.AuthenticatorInterface
	QR      service.QRGenerator
	Hub     *Hub
	Log     logrus.FieldLogger
}

func NewHandler(loader service.MenuLoaderInterface, state *service.MenuState, mutator service.MutatorInterface, auth service.AuthenticatorInterface, qr service.QRGenerator, hub *Hub, log logrus.FieldLogger) *Handler {
	return &Handler{
		Loader:  loader,
		State:   state,
		Mutator: mutator,
		Auth:    auth,
		QR:      qr,
		Hub:     hub,
		Log:     log,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.Use(h.recoverPanics)

	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/menu", h.getMenu).Methods("GET")
	r.HandleFunc("/api/menu/raw", h.getRawMenu).Methods("GET")
	r.HandleFunc("/api/menu/highlights", h.getHighlights).Methods("GET")
	r.HandleFunc("/api/menu/shortcuts", h.getShortcuts).Methods("GET")
	r.HandleFunc("/api/menu/chips", h.getChips).Methods("GET")
	r.HandleFunc("/api/menu/qrcode", h.getMenuQRCode).Methods("GET")
	if h.Hub != nil {
		r.HandleFunc("/api/menu/ws", h.serveMenuSocket).Methods("GET")
	}

	r.HandleFunc("/api/admin/login", h.login).Methods("POST")
	r.HandleFunc("/api/admin/logout", h.logout).Methods("POST")

	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(h.requireSession)

	admin.HandleFunc("/password", h.changePassword).Methods("PUT")
	admin.HandleFunc("/credential", h.setCredential).Methods("PUT")
	admin.HandleFunc("/reload", h.reload).Methods("POST")

	admin.HandleFunc("/categories", h.addCategory).Methods("POST")
	admin.HandleFunc("/categories/{categoryId}", h.removeCategory).Methods("DELETE")
	admin.HandleFunc("/categories/{categoryId}/products", h.upsertProduct).Methods("PUT")
	admin.HandleFunc("/categories/{categoryId}/products/{itemId}", h.removeProduct).Methods("DELETE")
	admin.HandleFunc("/categories/{categoryId}/products/{itemId}/image", h.uploadProductImage).Methods("POST")
	admin.HandleFunc("/categories/{categoryId}/discount", h.applyCategoryDiscount).Methods("POST")
	admin.HandleFunc("/discounts", h.applyGlobalDiscount).Methods("POST")
	admin.HandleFunc("/discounts", h.clearDiscounts).Methods("DELETE")

	admin.HandleFunc("/export.json", h.exportJSON).Methods("GET")
	admin.HandleFunc("/export.xlsx", h.exportXLSX).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "menu-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	menu := service.Filter(h.State.Snapshot(), query.Get("q"), query.Get("filter"))
	writeJSON(w, http.StatusOK, menu)
}

func (h *Handler) getRawMenu(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.State.Snapshot())
}

func (h *Handler) getHighlights(w http.ResponseWriter, r *http.Request) {
	limit := service.DefaultHighlights
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}
	writeJSON(w, http.StatusOK, service.Highlights(h.State.Snapshot(), limit))
}

func (h *Handler) getShortcuts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, service.Shortcuts(h.State.Snapshot()))
}

func (h *Handler) getChips(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, service.FilterChips(h.State.Snapshot()))
}

func (h *Handler) getMenuQRCode(w http.ResponseWriter, r *http.Request) {
	categoryID := r.URL.Query().Get("category")
	if categoryID != "" && h.State.Snapshot().CategoryIndex(categoryID) < 0 {
		http.Error(w, "Category not found", http.StatusNotFound)
		return
	}
	png, err := h.QR.Generate(categoryID)
	if err != nil {
		h.Log.WithError(err).Error("qr code generation failed")
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("X-Menu-Link", h.QR.Link(categoryID))
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) serveMenuSocket(w http.ResponseWriter, r *http.Request) {
	h.Hub.Serve(w, r, h.State.Snapshot)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	token, err := h.Auth.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"session": token})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if h.Auth.Authorized(r.Context(), r.Header.Get(SessionHeader)) {
		if err := h.Auth.Logout(r.Context()); err != nil {
			h.writeError(w, err)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeError maps service errors onto status codes. Unknown errors are
// logged and hidden behind a generic message.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrCategoryNotFound), errors.Is(err, domain.ErrItemNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrCategoryExists), errors.Is(err, domain.ErrItemExists), errors.Is(err, domain.ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrCredentialRejected):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnauthorized):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	default:
		h.Log.WithError(err).Error("request failed")
		http.Error(w, "Something went wrong, please try again", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
