package sheets

import (
	"Storybrush-Backend/domain"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	ActionGetUsers      = "getUsers"
	ActionCreateUser    = "createUser"
	ActionDeleteUser    = "deleteUser"
	ActionDeductCredits = "deductCredits"
	ActionAddCredits    = "addCredits"

	requestTokenTTL = 2 * time.Minute
)

type (
	// RemoteUser is a user row as the spreadsheet script returns it.
	// The remote store has no shared primary key with the local store;
	// the lowercase email is the only match key.
	RemoteUser struct {
		Email            string `json:"email"`
		Name             string `json:"name"`
		Credits          int    `json:"credits"`
		Status           string `json:"status"`
		SubscriptionTier string `json:"subscriptionTier"`
	}

	SheetsClient interface {
		GetUsers(ctx context.Context) ([]*RemoteUser, error)
		CreateUser(ctx context.Context, user *RemoteUser) error
		DeleteUser(ctx context.Context, email string) error
		DeductCredits(ctx context.Context, email string, amount int) (int, error)
		AddCredits(ctx context.Context, email string, amount int) (int, error)
	}

	sheetsClient struct {
		endpoint   string
		apiKey     string
		keyID      string
		httpClient *http.Client
	}

	request struct {
		Action string      `json:"action"`
		APIKey string      `json:"apiKey"`
		Token  string      `json:"token"`
		Email  string      `json:"email,omitempty"`
		Amount int         `json:"amount,omitempty"`
		User   *RemoteUser `json:"user,omitempty"`
	}

	response struct {
		Success    bool          `json:"success"`
		Error      string        `json:"error,omitempty"`
		Users      []*RemoteUser `json:"users,omitempty"`
		NewBalance int           `json:"newBalance,omitempty"`
	}
)

// NewSheetsClient builds a client for the spreadsheet scripting endpoint.
// keyID names the shared secret in use so the script can keep accepting
// tokens signed with the previous secret during rotation.
func NewSheetsClient(endpoint, apiKey, keyID string) SheetsClient {
	return &sheetsClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		keyID:    keyID,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *sheetsClient) GetUsers(ctx context.Context) ([]*RemoteUser, error) {
	resp, err := c.call(ctx, request{Action: ActionGetUsers})
	if err != nil {
		return nil, err
	}
	if resp.Users == nil {
		return []*RemoteUser{}, nil
	}
	return resp.Users, nil
}

func (c *sheetsClient) CreateUser(ctx context.Context, user *RemoteUser) error {
	u := *user
	u.Email = strings.ToLower(u.Email)
	_, err := c.call(ctx, request{Action: ActionCreateUser, User: &u})
	return err
}

func (c *sheetsClient) DeleteUser(ctx context.Context, email string) error {
	_, err := c.call(ctx, request{Action: ActionDeleteUser, Email: strings.ToLower(email)})
	return err
}

func (c *sheetsClient) DeductCredits(ctx context.Context, email string, amount int) (int, error) {
	resp, err := c.call(ctx, request{
		Action: ActionDeductCredits,
		Email:  strings.ToLower(email),
		Amount: amount,
	})
	if err != nil {
		return 0, err
	}
	return resp.NewBalance, nil
}

func (c *sheetsClient) AddCredits(ctx context.Context, email string, amount int) (int, error) {
	resp, err := c.call(ctx, request{
		Action: ActionAddCredits,
		Email:  strings.ToLower(email),
		Amount: amount,
	})
	if err != nil {
		return 0, err
	}
	return resp.NewBalance, nil
}

// call performs one HTTP round trip to the fixed endpoint. There is no
// retry or backoff here: a transport error or non-2xx status surfaces to
// the caller immediately, and the reconciler repairs divergence later.
func (c *sheetsClient) call(ctx context.Context, req request) (*response, error) {
	req.APIKey = c.apiKey

	token, err := c.signRequestToken(req.Action)
	if err != nil {
		return nil, err
	}
	req.Token = token

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteStoreUnavailable, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		raw, _ := io.ReadAll(httpResp.Body)
		return nil, fmt.Errorf("%w: %s - %s", domain.ErrRemoteStoreUnavailable, httpResp.Status, string(raw))
	}

	var resp response
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteStoreUnavailable, err)
	}

	if !resp.Success {
		if strings.Contains(strings.ToLower(resp.Error), "not found") {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("remote store error: %s", resp.Error)
	}

	return &resp, nil
}

// signRequestToken mints a short-lived HS256 token over the shared secret
// so the script can reject replayed or stale requests. The kid header
// carries the secret id for rotation.
func (c *sheetsClient) signRequestToken(action string) (string, error) {
	claims := jwt.MapClaims{
		"iss":    "storybrush",
		"action": action,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(requestTokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = c.keyID
	return token.SignedString([]byte(c.apiKey))
}
