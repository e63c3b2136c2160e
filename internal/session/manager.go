package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"storefront-client/internal/api"
	"storefront-client/internal/logger"
	"storefront-client/internal/models"
	"storefront-client/internal/storage"
)

// Store keys, kept verbatim from the original client's key-value storage.
const (
	keyToken           = "userToken"
	keyCustomerID      = "customerID"
	keyDisplayName     = "Disp_name"
	keyCustomerGroupID = "FK_CUST_GROUP_ID"
)

// Manager owns the session lifecycle: established at login, cleared at
// logout. Order submission and history read the session but never mutate it.
type Manager struct {
	api     *api.Client
	store   storage.Store
	logger  *logger.Logger
	current models.Session
}

// NewManager creates a session manager over the given store.
func NewManager(client *api.Client, store storage.Store, log *logger.Logger) *Manager {
	return &Manager{
		api:    client,
		store:  store,
		logger: log,
	}
}

// Login exchanges credentials for a session token and customer identity,
// persists them, and arms the REST client with the token.
func (m *Manager) Login(ctx context.Context, username, password string) (models.Session, error) {
	if username == "" || password == "" {
		return models.Session{}, models.ValidationError{
			Field:   "credentials",
			Message: "username and password are required",
		}
	}

	requestID := logger.GenerateRequestID()

	envelope, err := m.api.Post(ctx, api.PathLogin, models.LoginRequest{
		Username: username,
		Password: password,
	}, requestID)
	if err != nil {
		return models.Session{}, err
	}

	// The login endpoint signals success by the presence of "output".
	if len(envelope.Output) == 0 {
		message := envelope.Message
		if message == "" {
			message = "invalid response from server"
		}
		return models.Session{}, &api.BackendRejection{Message: message}
	}

	var output models.LoginOutput
	if err := json.Unmarshal(envelope.Output, &output); err != nil {
		return models.Session{}, fmt.Errorf("failed to parse login response: %w", err)
	}

	session := models.Session{
		Token:           output.Token,
		CustomerID:      output.CustomerID.String(),
		DisplayName:     output.DisplayName,
		CustomerGroupID: output.CustomerGroupID.String(),
	}

	if err := m.persist(session); err != nil {
		return models.Session{}, err
	}

	m.current = session
	m.api.SetToken(session.Token)

	m.logger.Info("login_succeeded", "Session established", requestID, map[string]interface{}{
		"customer_id": session.CustomerID,
	})

	return session, nil
}

// Restore loads a previously persisted session and arms the REST client.
// Returns an unauthenticated session when none is stored.
func (m *Manager) Restore() (models.Session, error) {
	session := models.Session{}

	token, err := m.store.Get(keyToken)
	if errors.Is(err, storage.ErrNotFound) {
		return session, nil
	}
	if err != nil {
		return session, err
	}
	session.Token = token

	if session.CustomerID, err = m.get(keyCustomerID); err != nil {
		return models.Session{}, err
	}
	if session.DisplayName, err = m.get(keyDisplayName); err != nil {
		return models.Session{}, err
	}
	if session.CustomerGroupID, err = m.get(keyCustomerGroupID); err != nil {
		return models.Session{}, err
	}

	m.current = session
	if session.Token != "" {
		m.api.SetToken(session.Token)
	}
	return session, nil
}

// Current returns the active session.
func (m *Manager) Current() models.Session {
	return m.current
}

// Logout clears the persisted identity and drops the bearer token. The
// caller discards its cart; each login produces a fresh one.
func (m *Manager) Logout() error {
	for _, key := range []string{keyToken, keyCustomerID, keyDisplayName, keyCustomerGroupID} {
		if err := m.store.Delete(key); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
	}
	m.current = models.Session{}
	m.api.ClearToken()
	return nil
}

func (m *Manager) persist(session models.Session) error {
	pairs := map[string]string{
		keyToken:           session.Token,
		keyCustomerID:      session.CustomerID,
		keyDisplayName:     session.DisplayName,
		keyCustomerGroupID: session.CustomerGroupID,
	}
	for key, value := range pairs {
		if err := m.store.Set(key, value); err != nil {
			return fmt.Errorf("failed to persist session: %w", err)
		}
	}
	return nil
}

func (m *Manager) get(key string) (string, error) {
	value, err := m.store.Get(key)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	return value, err
}
