package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/deepak6009/customer-service-bot/internal/auth"
	"github.com/deepak6009/customer-service-bot/internal/core"
	"github.com/deepak6009/customer-service-bot/internal/store"
)

type APIHandler struct {
	store *store.SQLiteStore
	chat  *core.ChatService
	links core.LinkIssuer
	log   *zap.Logger
}

func NewAPIHandler(s *store.SQLiteStore, chat *core.ChatService, links core.LinkIssuer, log *zap.Logger) *APIHandler {
	return &APIHandler{store: s, chat: chat, links: links, log: log}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

func (h *APIHandler) AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondError(w, http.StatusUnauthorized, "Missing token")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		username, err := auth.ValidateJWT(tokenString)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), adminUserKey{}, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type adminUserKey struct{}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *APIHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if !auth.CheckAdminCredentials(req.Username, req.Password) {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := auth.GenerateJWT(req.Username)
	if err != nil {
		h.log.Error("failed to generate admin token", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Admin: product management

func (h *APIHandler) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var p store.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if p.ID == "" || p.Name == "" {
		respondError(w, http.StatusBadRequest, "Product id and name are required")
		return
	}

	if err := h.store.CreateProduct(r.Context(), p); err != nil {
		h.log.Error("failed to create product", zap.String("id", p.ID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Product added successfully"})
}

func (h *APIHandler) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var p store.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if p.Name == "" {
		respondError(w, http.StatusBadRequest, "Product name is required")
		return
	}

	if err := h.store.UpdateProduct(r.Context(), id, p); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Product not found")
			return
		}
		h.log.Error("failed to update product", zap.String("id", id), zap.Error(err))
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Product updated"})
}

func (h *APIHandler) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Product not found")
			return
		}
		h.log.Error("failed to delete product", zap.String("id", id), zap.Error(err))
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

// Admin: company profile

func (h *APIHandler) UpdateCompanyHandler(w http.ResponseWriter, r *http.Request) {
	var info store.CompanyInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if info.Company == "" {
		respondError(w, http.StatusBadRequest, "Company name is required")
		return
	}

	if err := h.store.UpsertCompany(r.Context(), info); err != nil {
		h.log.Error("failed to update company info", zap.Error(err))
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Company info updated"})
}

// User: chat resolution

func (h *APIHandler) ChatQueryHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		respondError(w, http.StatusBadRequest, "Missing query parameter")
		return
	}

	reply, err := h.chat.Answer(r.Context(), query)
	if err != nil {
		h.log.Error("failed to resolve chat query", zap.Error(err))
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, reply)
}

type SaveChatRequest struct {
	User     *store.ChatUser     `json:"user"`
	Messages []store.ChatMessage `json:"messages"`
}

func (h *APIHandler) SaveChatHandler(w http.ResponseWriter, r *http.Request) {
	var req SaveChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.User == nil || len(req.Messages) == 0 {
		respondError(w, http.StatusBadRequest, "Missing user or messages payload")
		return
	}

	record, err := h.chat.SaveTranscript(r.Context(), *req.User, req.Messages)
	if err != nil {
		h.log.Error("failed to save chat transcript", zap.Error(err))
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Chat history saved successfully",
		"chatId":  record.ChatID,
	})
}

func (h *APIHandler) ImageLinkHandler(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		respondError(w, http.StatusBadRequest, "Missing image key")
		return
	}

	url, err := h.links.SignedURL(r.Context(), key)
	if err != nil {
		h.log.Error("failed to sign image url", zap.String("key", key), zap.Error(err))
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"imageUrl": url})
}
