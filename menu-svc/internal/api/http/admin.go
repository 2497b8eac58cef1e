package httpapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"cafe-menu/menu-svc/internal/domain"
	"cafe-menu/menu-svc/internal/service"

	"github.com/gorilla/mux"
)

const maxImageBytes = 5 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type mutationResponse struct {
	service.SaveResult
	Category *domain.Category `json:"category,omitempty"`
	Item     *domain.Item     `json:"item,omitempty"`
}

type discountPayload struct {
	Percent int `json:"percent"`
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Current string `json:"current"`
		Next    string `json:"next"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	if err := h.Auth.ChangePassword(r.Context(), payload.Current, payload.Next); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setCredential(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	if err := h.Auth.SetWriteCredential(r.Context(), payload.Token); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) reload(w http.ResponseWriter, r *http.Request) {
	err := h.Mutator.Reload(r.Context(), func(ctx context.Context) (domain.Menu, error) {
		return h.Loader.Refresh(ctx), nil
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.State.Snapshot())
}

func (h *Handler) addCategory(w http.ResponseWriter, r *http.Request) {
	var in service.CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	cat, res, err := h.Mutator.AddCategory(r.Context(), in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mutationResponse{SaveResult: res, Category: &cat})
}

func (h *Handler) removeCategory(w http.ResponseWriter, r *http.Request) {
	res, err := h.Mutator.RemoveCategory(r.Context(), mux.Vars(r)["categoryId"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{SaveResult: res})
}

func (h *Handler) upsertProduct(w http.ResponseWriter, r *http.Request) {
	var in service.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	in.CategoryID = mux.Vars(r)["categoryId"]

	item, res, err := h.Mutator.UpsertProduct(r.Context(), in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{SaveResult: res, Item: &item})
}

func (h *Handler) removeProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	res, err := h.Mutator.RemoveProduct(r.Context(), vars["categoryId"], vars["itemId"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{SaveResult: res})
}

// uploadProductImage stores the picture inline as a data URL so the menu
// file stays self-contained.
func (h *Handler) uploadProductImage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		http.Error(w, "File too large", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Error retrieving the file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		http.Error(w, "Invalid file type. Only JPEG, PNG, GIF, WebP allowed", http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		http.Error(w, "Failed to read file", http.StatusBadRequest)
		return
	}
	if n > maxImageBytes {
		http.Error(w, "File too large", http.StatusBadRequest)
		return
	}

	src := "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
	res, err := h.Mutator.SetProductImage(r.Context(), vars["categoryId"], vars["itemId"], src)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{SaveResult: res})
}

func (h *Handler) applyCategoryDiscount(w http.ResponseWriter, r *http.Request) {
	var payload discountPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	res, err := h.Mutator.ApplyCategoryDiscount(r.Context(), mux.Vars(r)["categoryId"], payload.Percent)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{SaveResult: res})
}

func (h *Handler) applyGlobalDiscount(w http.ResponseWriter, r *http.Request) {
	var payload discountPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	res, err := h.Mutator.ApplyGlobalDiscount(r.Context(), payload.Percent)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{SaveResult: res})
}

func (h *Handler) clearDiscounts(w http.ResponseWriter, r *http.Request) {
	res, err := h.Mutator.ClearDiscounts(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{SaveResult: res})
}

func (h *Handler) exportJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="menu.json"`)
	if err := service.WriteMenuJSON(w, h.State.Snapshot()); err != nil {
		h.Log.WithError(err).Error("json export failed")
	}
}

func (h *Handler) exportXLSX(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := service.WriteMenuXLSX(&buf, h.State.Snapshot()); err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="menu.xlsx"`)
	w.Write(buf.Bytes())
}
