package platform

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCameraEntities(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/camera_registry", r.URL.Path)
		assert.Equal(t, "camera", r.URL.Query().Get("domain"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"result": {
				"entities": [
					{
						"entity_id": "camera.front_door_high_resolution_channel",
						"platform": "unifiprotect",
						"device_id": "dev1",
						"area": "Porch",
						"friendly_name": "Front Door High resolution channel",
						"available": true
					}
				]
			}
		}`))
	}))
	defer srv.Close()

	c := New(ClientConfig{BaseURL: srv.URL, Token: "test-token"})

	entities, err := c.ListCameraEntities(context.Background())
	require.NoError(t, err)
	require.Len(t, entities, 1)
	assert.Equal(t, "camera.front_door_high_resolution_channel", entities[0].EntityID)
	assert.Equal(t, "unifiprotect", entities[0].Platform)
	assert.Equal(t, "Porch", entities[0].Area)
	assert.True(t, entities[0].Available)
}

func TestListCameraEntitiesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(ClientConfig{BaseURL: srv.URL})
	_, err := c.ListCameraEntities(context.Background())
	assert.Error(t, err)
}

func TestStreamSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/camera_stream_source/camera.front_door", r.URL.Path)
		w.Write([]byte("\"rtsps://10.0.0.1:7441/XYZ\"\n"))
	}))
	defer srv.Close()

	c := New(ClientConfig{BaseURL: srv.URL})

	url, err := c.StreamSource(context.Background(), "camera.front_door")
	require.NoError(t, err)
	assert.Equal(t, "rtsps://10.0.0.1:7441/XYZ", url, "quotes and whitespace are stripped")
}

func TestStreamSourceNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := New(ClientConfig{BaseURL: srv.URL})
	_, err := c.StreamSource(context.Background(), "camera.missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available")
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/", r.URL.Path)
		w.Write([]byte(`{"message": "API running."}`))
	}))
	defer srv.Close()

	c := New(ClientConfig{BaseURL: srv.URL})
	assert.NoError(t, c.Ping())
}

func TestPushConfig(t *testing.T) {
	var savedBody string
	var restarted bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/config/save":
			body, _ := io.ReadAll(r.Body)
			savedBody = string(body)
		case "/api/restart":
			restarted = true
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	require.NoError(t, PushConfig(srv.URL, "mqtt:\n  host: localhost\n", true))
	assert.Contains(t, savedBody, "mqtt:")
	assert.True(t, restarted)
}

func TestPushConfigFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad config", http.StatusBadRequest)
	}))
	defer srv.Close()

	err := PushConfig(srv.URL, "not yaml", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to push config")
}
