package session

// User is the authenticated identity as the backend reports it.
type User struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

func (u User) IsAdmin() bool {
	return u.Role == "admin"
}

// Session pairs the bearer token with its user. A zero session is
// unauthenticated.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}

// UserPatch carries partial profile updates; nil fields are left untouched.
type UserPatch struct {
	Name   *string
	Avatar *string
}
