package launcher

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/dirk.krummacker/contacts-bridge/internal/model"
)

var want = model.Want{
	BundleName:  "com.ohos.contacts",
	AbilityName: "com.ohos.contacts.MainAbility",
	Parameters:  map[string]any{"pageFlag": "page_flag_save_contact", "phoneNumber": "0815"},
}

// TestStartAbility expects the want to be posted as JSON.
func TestStartAbility(t *testing.T) {
	var received model.Want
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/abilities/start", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	err := NewHTTPStarter(server.URL).StartAbility(context.Background(), want)
	require.NoError(t, err)
	assert.Equal(t, want, received)
}

func TestStartAbilityRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unknown ability", http.StatusNotFound)
	}))
	defer server.Close()

	err := NewHTTPStarter(server.URL).StartAbility(context.Background(), want)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestLogStarter(t *testing.T) {
	var buf bytes.Buffer
	s := LogStarter{Logger: zerolog.New(&buf)}

	require.NoError(t, s.StartAbility(context.Background(), want))
	assert.Contains(t, buf.String(), "com.ohos.contacts.MainAbility")
	assert.Contains(t, buf.String(), "page_flag_save_contact")
}
