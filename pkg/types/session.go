package types

// Session describes the signed-in user for a single request. It is built
// once by the auth middleware and handed to handlers and page data.
type Session struct {
	UserID  string
	Email   string
	Groups  []string
	IsAdmin bool
}

func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != ""
}
