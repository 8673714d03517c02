package models

// TokenPair is the credential pair issued by POST /auth/token and rotated by
// POST /auth/refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Session mirrors the server-side session on the client. The server is
// authoritative; this is the cached view the UI keys off.
type Session struct {
	User   *User     `json:"user,omitempty"`
	Tokens TokenPair `json:"tokens"`
}

// IsAuthenticated is derived state: a session counts as authenticated only
// with both a resolved user and a non-empty access token.
func (s Session) IsAuthenticated() bool {
	return s.User != nil && s.Tokens.AccessToken != ""
}

// Credentials are the form-encoded fields for POST /auth/token.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the payload for POST /auth/register.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
