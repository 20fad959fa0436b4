package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	return client, srv
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestNewTrimsTrailingSlash(t *testing.T) {
	client, err := New(Config{BaseURL: "http://localhost:3000/"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", client.BaseURL())
}

func TestGetDecodesResponse(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`[{"id":1,"title":"Hi"}]`))
	}))

	var posts []struct {
		ID    int    `json:"id"`
		Title string `json:"title"`
	}
	require.NoError(t, client.Get(context.Background(), "/posts", &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, "Hi", posts[0].Title)
}

func TestPostSendsJSONBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"ok":true}`))
	}))

	body := map[string]string{"title": "Hi"}
	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, client.Post(context.Background(), "/posts", body, &out))
	assert.True(t, out.OK)
}

func TestErrorCarriesServerMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"title is too short"}`))
	}))

	err := client.Post(context.Background(), "/posts", map[string]string{}, nil)
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindValidation, apiErr.Kind)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "title is too short", apiErr.Message)
	assert.EqualError(t, err, "title is too short")
}

func TestErrorFallsBackToGenericMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	err := client.Get(context.Background(), "/posts", nil)
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindServer, apiErr.Kind)
	assert.EqualError(t, err, "request failed with status 500")
}

func TestUnauthorizedKind(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"not logged in"}`))
	}))

	err := client.Get(context.Background(), "/users/current", nil)
	assert.True(t, IsUnauthorized(err))
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	client, err := New(Config{BaseURL: url})
	require.NoError(t, err)

	getErr := client.Get(context.Background(), "/posts", nil)
	require.Error(t, getErr)

	var apiErr *Error
	require.True(t, errors.As(getErr, &apiErr))
	assert.Equal(t, KindNetwork, apiErr.Kind)
	assert.False(t, IsUnauthorized(getErr))
}

func TestCookiesPersistAcrossRequests(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			http.SetCookie(w, &http.Cookie{Name: "blog_session", Value: "token-1", Path: "/"})
			w.Write([]byte(`{}`))
		case "/users/current":
			cookie, err := r.Cookie("blog_session")
			if err != nil || cookie.Value != "token-1" {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"not logged in"}`))
				return
			}
			w.Write([]byte(`{"id":1}`))
		}
	}))

	require.NoError(t, client.Post(context.Background(), "/login", map[string]string{}, nil))

	var identity struct {
		ID int `json:"id"`
	}
	require.NoError(t, client.Get(context.Background(), "/users/current", &identity))
	assert.Equal(t, 1, identity.ID)
}

func TestDeleteIgnoresEmptyBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))

	assert.NoError(t, client.Delete(context.Background(), "/logout"))
}
