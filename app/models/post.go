package models

import "strings"

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	return validate.Struct(p)
}

// Preview returns the first n characters of the body, with an ellipsis
// when the body is longer.
func (p *Post) Preview(n int) string {
	body := strings.TrimSpace(p.Body)
	if len(body) <= n {
		return body
	}
	return body[:n] + "..."
}
