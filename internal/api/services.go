package api

// Services bundles every domain module over one client.
type Services struct {
	Client    *Client
	Auth      *AuthAPI
	Inventory *InventoryAPI
	Users     *UsersAPI
}

func NewServices(client *Client) *Services {
	return &Services{
		Client:    client,
		Auth:      NewAuthAPI(client),
		Inventory: NewInventoryAPI(client),
		Users:     NewUsersAPI(client),
	}
}
