package models

import "strings"

// CommunityUserID is the reserved owner of the community board's shared list.
const CommunityUserID = "_community"

// Identity is the signed-in user extracted from a bearer token.
type Identity struct {
	UserID string `json:"user_id"`
	Name   string `json:"name,omitempty"`
}

// DisplayName returns "FirstName L." format (first name + last initial).
func (i Identity) DisplayName() string {
	parts := splitName(i.Name)
	if len(parts) == 0 {
		return i.UserID
	}
	if len(parts) == 1 {
		return parts[0]
	}
	lastName := parts[len(parts)-1]
	return parts[0] + " " + string([]rune(lastName)[0]) + "."
}

func splitName(name string) []string {
	var parts []string
	for _, p := range strings.Split(strings.TrimSpace(name), " ") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// NotFoundResponse points the client back at the catalog it came from.
type NotFoundResponse struct {
	Error string `json:"error"`
	Back  string `json:"back"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
