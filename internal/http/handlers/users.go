package handlers

import (
	"errors"
	"net/mail"
	"slices"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/hongminglow/stockroom/internal/models"
	"github.com/hongminglow/stockroom/internal/models/dto"
	"github.com/hongminglow/stockroom/internal/storage/sandbox"
)

type profileInput struct {
	User       int64  `json:"user"`
	Role       string `json:"role"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
}

// UsersHandler serves /users/ and /profiles/.
type UsersHandler struct {
	users    *resource[models.User, dto.RegisterRequest]
	profiles *resource[models.Profile, profileInput]
}

func NewUsersHandler(store *sandbox.Store, accounts *AuthHandler) *UsersHandler {
	h := &UsersHandler{}
	h.users = &resource[models.User, dto.RegisterRequest]{
		table: store.Users,
		validate: func(in dto.RegisterRequest, creating bool) error {
			if creating {
				return validateCredentials(in.Email, in.Password)
			}
			if _, err := mail.ParseAddress(strings.TrimSpace(in.Email)); err != nil {
				return errors.New("Enter a valid email address.")
			}
			return nil
		},
		insert: func(in dto.RegisterRequest) (models.User, error) {
			user, _, err := accounts.createAccount(in)
			return user, err
		},
		apply: func(u models.User, in dto.RegisterRequest, _ time.Time) models.User {
			u.Email = strings.ToLower(strings.TrimSpace(in.Email))
			u.FirstName = strings.TrimSpace(in.FirstName)
			u.LastName = strings.TrimSpace(in.LastName)
			return u
		},
		filter: searchFilter(func(u models.User) string { return u.Email + " " + u.FirstName + " " + u.LastName }),
		remove: store.DeleteAccount,
	}
	h.profiles = &resource[models.Profile, profileInput]{
		table: store.Profiles,
		validate: func(in profileInput, _ bool) error {
			if !slices.Contains([]string{models.RoleStaff, models.RoleManager, models.RoleAdmin}, in.Role) {
				return errors.New("role must be staff, manager or admin")
			}
			if _, err := store.Users.Get(in.User); err != nil {
				return errors.New("user does not exist")
			}
			return nil
		},
		build: func(id int64, in profileInput, _ time.Time) models.Profile {
			return models.Profile{ID: id, User: in.User, Role: in.Role, Phone: in.Phone, Department: in.Department}
		},
		apply: func(p models.Profile, in profileInput, _ time.Time) models.Profile {
			p.User, p.Role, p.Phone, p.Department = in.User, in.Role, in.Phone, in.Department
			return p
		},
	}
	return h
}

// Register mounts /users/ and /profiles/.
func (h *UsersHandler) Register(r *mux.Router) {
	h.users.Register(r, "/users/")
	h.profiles.Register(r, "/profiles/")
}
