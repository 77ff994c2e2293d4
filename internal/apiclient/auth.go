package apiclient

import "context"

// Signin authenticates with the server and returns a token pair.
func (c *Client) Signin(ctx context.Context, username, password string) (*TokenPair, error) {
	req := SigninRequest{
		Username: username,
		Password: password,
	}

	var resp TokenPair
	_, err := c.Post(ctx, "/auth/signin", req, &resp)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

// Register creates a USER account and returns its token pair.
func (c *Client) Register(ctx context.Context, firstName, username, password string) (*TokenPair, error) {
	req := RegisterRequest{
		FirstName: firstName,
		Username:  username,
		Password:  password,
	}

	var resp TokenPair
	_, err := c.Post(ctx, "/auth/register", req, &resp)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

// RegisterAdmin creates an ADMIN account. Requires an admin token.
func (c *Client) RegisterAdmin(ctx context.Context, firstName, username, password string) (*TokenPair, error) {
	req := RegisterRequest{
		FirstName: firstName,
		Username:  username,
		Password:  password,
	}

	var resp TokenPair
	_, err := c.Post(ctx, "/auth/register/admin", req, &resp)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

// Refresh mints a new access token from a refresh token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (string, error) {
	var resp RefreshResponse
	_, err := c.Post(ctx, "/auth/refresh", RefreshRequest{RefreshToken: refreshToken}, &resp)
	if err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	_, err := c.Get(ctx, "/users/me", &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
