package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mraditya/go-sheet-market.git/internal/auth"
	"github.com/mraditya/go-sheet-market.git/internal/market"
	"github.com/mraditya/go-sheet-market.git/internal/sheetapi"
)

type AuthHandler struct {
	Sheets *sheetapi.Client
	Tokens auth.Tokens
}

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	NomorHp  string `json:"nomorHp"`
	Jurusan  string `json:"jurusan"`
	Role     string `json:"role"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResp struct {
	Success  bool        `json:"success"`
	User     market.User `json:"user"`
	Token    string      `json:"token"`
	Redirect string      `json:"redirect,omitempty"`
}

func (h *AuthHandler) Register(r chi.Router) {
	r.Post("/auth/register", h.register)
	r.Post("/auth/login", h.login)
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Email == "" || req.Password == "" || req.FullName == "" {
		writeError(w, http.StatusBadRequest, "missing fields")
		return
	}
	if req.Role != market.RoleBuyer && req.Role != market.RoleSeller {
		writeError(w, http.StatusBadRequest, "role must be 'buyer' or 'seller'")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res := h.Sheets.Register(ctx, req.Email, req.Password, req.FullName, req.NomorHp, req.Jurusan, req.Role)
	if !res.Success {
		writeError(w, statusFor(res.Error), res.Error)
		return
	}
	h.writeSession(w, http.StatusCreated, res)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing fields")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res := h.Sheets.Login(ctx, req.Email, req.Password)
	if !res.Success {
		writeError(w, http.StatusUnauthorized, res.Error)
		return
	}
	h.writeSession(w, http.StatusOK, res)
}

// writeSession turns a successful backend auth result into a signed session.
func (h *AuthHandler) writeSession(w http.ResponseWriter, code int, res sheetapi.Result) {
	var user market.User
	if err := json.Unmarshal(res.Data, &user); err != nil {
		writeError(w, http.StatusBadGateway, "unexpected auth response")
		return
	}
	token, err := h.Tokens.Create(user.Email, user.Role, user.FullName)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not issue session token")
		return
	}
	writeJSON(w, code, sessionResp{
		Success:  true,
		User:     user,
		Token:    token,
		Redirect: res.Redirect,
	})
}
