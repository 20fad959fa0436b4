package cli

import (
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// The browser keeps the session cookie between page loads; the CLI keeps it
// between invocations in a small JSON file under the user's home directory.

type storedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Expires time.Time `json:"expires,omitempty"`
}

func cookiePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".blogclient", "cookies.json"), nil
}

// loadCookies seeds the jar with cookies saved by a previous invocation.
func loadCookies(jar http.CookieJar, base *url.URL) {
	path, err := cookiePath()
	if err != nil {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	var stored []storedCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		return
	}

	cookies := make([]*http.Cookie, 0, len(stored))
	for _, c := range stored {
		if !c.Expires.IsZero() && c.Expires.Before(time.Now()) {
			continue
		}
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value, Path: "/"})
	}
	jar.SetCookies(base, cookies)
}

// saveCookies persists the jar's cookies for the base URL.
func saveCookies(jar http.CookieJar, base *url.URL) error {
	path, err := cookiePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	var stored []storedCookie
	for _, c := range jar.Cookies(base) {
		stored = append(stored, storedCookie{Name: c.Name, Value: c.Value, Expires: c.Expires})
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
