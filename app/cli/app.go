// Package cli is the command-line frontend: it renders lists and forms as
// terminal output and delegates every operation to the resource services,
// gated by the session manager.
package cli

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"blogclient/app/api"
	"blogclient/app/services"
	"blogclient/app/session"
)

// App wires the HTTP client, resource services and session manager for one
// CLI invocation.
type App struct {
	session  *session.Manager
	posts    services.PostAPI
	comments services.CommentAPI

	jar  http.CookieJar
	base *url.URL
}

// NewApp builds an App against the given base URL, restoring any session
// cookie saved by a previous invocation.
func NewApp(baseURL string) (*App, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL %q: %w", baseURL, err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	loadCookies(jar, base)

	client, err := api.New(api.Config{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Jar: jar, Timeout: 30 * time.Second},
	})
	if err != nil {
		return nil, err
	}

	auth := services.NewAuthService(client)
	return &App{
		session:  session.NewManager(auth),
		posts:    services.NewPostService(client),
		comments: services.NewCommentService(client),
		jar:      jar,
		base:     base,
	}, nil
}

// Start runs the startup probe so gating decisions are made against a ready
// session state, never a loading one.
func (a *App) Start(ctx context.Context) {
	a.session.Initialize(ctx)
}

// Close persists the session cookie for the next invocation.
func (a *App) Close() error {
	return saveCookies(a.jar, a.base)
}

// requireLogin reports whether an identity is installed, printing a hint
// when it is not.
func (a *App) requireLogin() bool {
	if !a.session.IsAuthenticated() {
		fmt.Println("You need to log in first (blogclient login <email> <password>)")
		return false
	}
	return true
}
