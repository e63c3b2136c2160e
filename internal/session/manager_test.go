package session

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-client/internal/api"
	"storefront-client/internal/logger"
	"storefront-client/internal/models"
	"storefront-client/internal/storage"
)

func newManager(baseURL string, store storage.Store) *Manager {
	log := logger.New("session-test")
	return NewManager(api.NewClient(baseURL, 2*time.Second, log), store, log)
}

func TestLoginEstablishesSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sf/getUserAccountID", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"output":{"token":"tok-1","CustomerID":1279,"DisplayName":"Savla Traders","CustomerGroupID":3}}`)
	}))
	defer server.Close()

	store := storage.NewMemoryStore()
	manager := newManager(server.URL, store)

	sess, err := manager.Login(context.Background(), "trader", "secret")
	require.NoError(t, err)
	assert.Equal(t, models.Session{
		Token:           "tok-1",
		CustomerID:      "1279",
		DisplayName:     "Savla Traders",
		CustomerGroupID: "3",
	}, sess)
	assert.True(t, manager.Current().Authenticated())

	// Identity is persisted under the original client's storage keys.
	for key, want := range map[string]string{
		"userToken":        "tok-1",
		"customerID":       "1279",
		"Disp_name":        "Savla Traders",
		"FK_CUST_GROUP_ID": "3",
	} {
		got, err := store.Get(key)
		require.NoError(t, err, key)
		assert.Equal(t, want, got, key)
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	manager := newManager("http://localhost:1", storage.NewMemoryStore())

	_, err := manager.Login(context.Background(), "", "secret")
	var validationErr models.ValidationError
	require.ErrorAs(t, err, &validationErr)

	_, err = manager.Login(context.Background(), "trader", "")
	require.ErrorAs(t, err, &validationErr)
}

func TestLoginWithoutOutputIsRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success":false,"message":"invalid credentials"}`)
	}))
	defer server.Close()

	manager := newManager(server.URL, storage.NewMemoryStore())

	_, err := manager.Login(context.Background(), "trader", "wrong")
	var rejection *api.BackendRejection
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, "invalid credentials", rejection.Message)
	assert.False(t, manager.Current().Authenticated())
}

func TestRestore(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set("userToken", "tok-9"))
	require.NoError(t, store.Set("customerID", "42"))
	require.NoError(t, store.Set("Disp_name", "Trader"))
	require.NoError(t, store.Set("FK_CUST_GROUP_ID", "1"))

	manager := newManager("http://localhost:1", store)
	sess, err := manager.Restore()
	require.NoError(t, err)
	assert.Equal(t, "tok-9", sess.Token)
	assert.Equal(t, "42", sess.CustomerID)
	assert.True(t, manager.Current().Authenticated())
}

func TestRestoreWithoutStoredSession(t *testing.T) {
	manager := newManager("http://localhost:1", storage.NewMemoryStore())
	sess, err := manager.Restore()
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())
}

func TestLogoutClearsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"output":{"token":"tok-1","CustomerID":1279,"DisplayName":"Trader","CustomerGroupID":3}}`)
	}))
	defer server.Close()

	store := storage.NewMemoryStore()
	manager := newManager(server.URL, store)

	_, err := manager.Login(context.Background(), "trader", "secret")
	require.NoError(t, err)

	require.NoError(t, manager.Logout())
	assert.False(t, manager.Current().Authenticated())

	_, err = store.Get("userToken")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
