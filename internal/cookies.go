package internal

const (
	COOKIE_ACCESS_TOKEN_NAME = "ea_access_token"
	COOKIE_REDIRECT_NAME     = "ea_redirect"
)
