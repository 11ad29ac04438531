package restapi

import (
	"context"
	"net/http"

	"github.com/terraincognita07/vitalog/internal/models"
)

type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      int    `json:"age,omitempty"`
	Gender   string `json:"gender,omitempty"`
}

func (client *Client) Login(ctx context.Context, email string, password string) (LoginResult, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var result LoginResult
	if err := client.doJSON(ctx, http.MethodPost, "/api/auth/login", nil, body, &result); err != nil {
		return LoginResult{}, err
	}
	return result, nil
}

func (client *Client) Register(ctx context.Context, input RegisterInput) error {
	return client.doJSON(ctx, http.MethodPost, "/api/auth/register", nil, input, nil)
}

func (client *Client) Me(ctx context.Context) (models.User, error) {
	var user models.User
	if err := client.doJSON(ctx, http.MethodGet, "/api/auth/me", nil, nil, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}
