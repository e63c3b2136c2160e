package models

import "encoding/json"

// LoginRequest is the credential payload for the login endpoint.
type LoginRequest struct {
	Username string `json:"sf_userName"`
	Password string `json:"sf_userPwd"`
}

// LoginOutput is the "output" object of a successful login response.
// CustomerID and CustomerGroupID arrive as numbers but are kept as
// strings everywhere else in the client.
type LoginOutput struct {
	Token           string      `json:"token"`
	CustomerID      json.Number `json:"CustomerID"`
	DisplayName     string      `json:"DisplayName"`
	CustomerGroupID json.Number `json:"CustomerGroupID"`
}

// Session is the customer identity established at login. It is read-only
// input to order submission and history; only the session manager mutates it.
type Session struct {
	Token           string
	CustomerID      string
	DisplayName     string
	CustomerGroupID string
}

// Authenticated reports whether a usable session is present.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.CustomerID != ""
}
