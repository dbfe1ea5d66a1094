package petapi

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// ListUsers loads every user account.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	body, err := c.send(ctx, request{method: http.MethodGet, path: "/users"})
	if err != nil {
		return nil, err
	}
	result, err := decodeListing[User](body, "users")
	if err != nil {
		return nil, err
	}
	return result.Items, nil
}

// FindUserByEmail returns the account registered under email, if any.
func (c *Client) FindUserByEmail(ctx context.Context, email string) (User, bool, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return User{}, false, nil
	}
	body, err := c.send(ctx, request{method: http.MethodGet, path: "/users", query: url.Values{"email": {email}}})
	if err != nil {
		return User{}, false, err
	}
	result, err := decodeListing[User](body, "users")
	if err != nil {
		return User{}, false, err
	}
	for _, user := range result.Items {
		if strings.EqualFold(user.Email, email) {
			return user, true, nil
		}
	}
	return User{}, false, nil
}

// RegisterUser stores a new account record.
func (c *Client) RegisterUser(ctx context.Context, user User) (User, error) {
	user.ID = ""
	user.Role = ""
	var created createdResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: "/users", body: user}, &created); err != nil {
		return User{}, err
	}
	user.ID = created.id()
	return user, nil
}

// PromoteToAdmin grants the admin role.
func (c *Client) PromoteToAdmin(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodPatch, path: "/users/" + escape(id) + "/admin"}, nil)
}
