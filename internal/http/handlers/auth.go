package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/stockroom/internal/auth"
	"github.com/hongminglow/stockroom/internal/http/respond"
	"github.com/hongminglow/stockroom/internal/middleware"
	"github.com/hongminglow/stockroom/internal/models"
	"github.com/hongminglow/stockroom/internal/models/dto"
	"github.com/hongminglow/stockroom/internal/storage/sandbox"
)

// AuthHandler owns the /auth/ endpoints.
type AuthHandler struct {
	store  *sandbox.Store
	tokens *auth.TokenManager
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(store *sandbox.Store, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{store: store, tokens: tokens}
}

// RegisterPublic attaches the endpoints that need no token.
func (h *AuthHandler) RegisterPublic(r *mux.Router) {
	r.HandleFunc("/auth/login/", h.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/auth/register/", h.handleRegister).Methods(http.MethodPost)
}

// RegisterProtected attaches the endpoints behind RequireToken.
func (h *AuthHandler) RegisterProtected(r *mux.Router) {
	r.HandleFunc("/auth/logout/", h.handleLogout).Methods(http.MethodPost)
	r.HandleFunc("/auth/profile/", h.handleProfile).Methods(http.MethodGet)
	r.HandleFunc("/auth/profile/", h.handleUpdateProfile).Methods(http.MethodPut)
}

// Authenticate resolves a token to a live, non-revoked user.
func (h *AuthHandler) Authenticate(token string) (models.User, error) {
	claims, err := h.tokens.Parse(token)
	if err != nil {
		return models.User{}, err
	}
	if h.store.IsRevoked(claims.ID) {
		return models.User{}, errors.New("token revoked")
	}
	id, err := claims.UserID()
	if err != nil {
		return models.User{}, err
	}
	return h.store.Users.Get(id)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	user, status, err := h.createAccount(req)
	if err != nil {
		respond.Error(w, status, err.Error())
		return
	}
	h.issue(w, http.StatusCreated, user)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}
	user, hash, err := h.store.FindByEmail(req.Email)
	if err != nil {
		if !errors.Is(err, sandbox.ErrNotFound) {
			log.Printf("login failed: error fetching user %s: %v", req.Email, err)
		}
		respond.Error(w, http.StatusBadRequest, "Unable to log in with provided credentials.")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		respond.Error(w, http.StatusBadRequest, "Unable to log in with provided credentials.")
		return
	}
	h.issue(w, http.StatusOK, user)
}

func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	token, _ := middleware.TokenFromHeader(r)
	if claims, err := h.tokens.Parse(token); err == nil {
		h.store.Revoke(claims.ID)
	}
	respond.NoContent(w)
}

func (h *AuthHandler) handleProfile(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())
	respond.JSON(w, http.StatusOK, user)
}

func (h *AuthHandler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	current, _ := middleware.UserFrom(r.Context())
	var req dto.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		respond.Error(w, http.StatusBadRequest, "Enter a valid email address.")
		return
	}
	if other, _, err := h.store.FindByEmail(req.Email); err == nil && other.ID != current.ID {
		respond.Error(w, http.StatusBadRequest, "A user with that email already exists.")
		return
	}
	updated, err := h.store.Users.Replace(current.ID, func(u models.User) models.User {
		u.FirstName = strings.TrimSpace(req.FirstName)
		u.LastName = strings.TrimSpace(req.LastName)
		u.Email = strings.ToLower(strings.TrimSpace(req.Email))
		return u
	})
	if err != nil {
		respond.Error(w, http.StatusNotFound, "Not found.")
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}

func (h *AuthHandler) createAccount(req dto.RegisterRequest) (models.User, int, error) {
	if err := validateCredentials(req.Email, req.Password); err != nil {
		return models.User{}, http.StatusBadRequest, err
	}
	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		return models.User{}, http.StatusInternalServerError, errors.New("failed to hash password")
	}
	user := models.User{
		Email:     strings.TrimSpace(req.Email),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
	}
	created, err := h.store.CreateAccount(user, passwordHash, models.RoleStaff)
	if err != nil {
		if errors.Is(err, sandbox.ErrAlreadyExists) {
			return models.User{}, http.StatusBadRequest, errors.New("A user with that email already exists.")
		}
		log.Printf("create user error: %v", err)
		return models.User{}, http.StatusInternalServerError, errors.New("failed to create user")
	}
	return created, http.StatusCreated, nil
}

func (h *AuthHandler) issue(w http.ResponseWriter, status int, user models.User) {
	token, err := h.tokens.Generate(user)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	respond.JSON(w, status, dto.AuthResponse{Token: token, User: &user})
}

func validateCredentials(email, password string) error {
	if _, err := mail.ParseAddress(strings.TrimSpace(email)); err != nil {
		return errors.New("Enter a valid email address.")
	}
	if len(password) < 8 || !utf8.ValidString(password) {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
