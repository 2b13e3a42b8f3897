package api

import "github.com/hongminglow/stockroom/internal/models"

// UsersAPI covers account administration endpoints.
type UsersAPI struct {
	Users    *Resource[models.User]
	Profiles *Resource[models.Profile]
}

func NewUsersAPI(client *Client) *UsersAPI {
	return &UsersAPI{
		Users:    NewResource[models.User](client, "/users/"),
		Profiles: NewResource[models.Profile](client, "/profiles/"),
	}
}
