// Package auth signs administrators in against Cognito and turns their
// access tokens back into sessions.
package auth

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"entrepreneurawards/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	ctypes "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

const groupsClaim = "cognito:groups"

type cognitoAPI interface {
	InitiateAuth(ctx context.Context, params *cognitoidentityprovider.InitiateAuthInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.InitiateAuthOutput, error)
}

type Authenticator struct {
	client   cognitoAPI
	clientID string
}

func NewAuthenticator(client cognitoAPI, clientID string) *Authenticator {
	return &Authenticator{client: client, clientID: clientID}
}

// Login exchanges an email and password for an access token and its
// lifetime in seconds.
func (a *Authenticator) Login(ctx context.Context, email, password string) (string, int, error) {
	input := &cognitoidentityprovider.InitiateAuthInput{
		AuthFlow: ctypes.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(a.clientID),
		AuthParameters: map[string]string{
			"USERNAME": strings.TrimSpace(email),
			"PASSWORD": password,
		},
	}

	resp, err := a.client.InitiateAuth(ctx, input)
	if err != nil {
		var notAuthorized *ctypes.NotAuthorizedException
		var notFound *ctypes.UserNotFoundException
		if errors.As(err, &notAuthorized) || errors.As(err, &notFound) {
			return "", 0, ErrInvalidCredentials
		}
		return "", 0, fmt.Errorf("failed to initiate auth: %w", err)
	}

	if resp.AuthenticationResult == nil || resp.AuthenticationResult.AccessToken == nil {
		return "", 0, ErrInvalidCredentials
	}

	return aws.ToString(resp.AuthenticationResult.AccessToken), int(resp.AuthenticationResult.ExpiresIn), nil
}

type keySetSource interface {
	Lookup(ctx context.Context, u string) (jwk.Set, error)
}

type Verifier struct {
	keys       keySetSource
	jwksURL    string
	adminGroup string
}

// NewVerifier checks tokens against the key set published at jwksURL.
// With an empty adminGroup every signed-in user is an administrator.
func NewVerifier(keys keySetSource, jwksURL, adminGroup string) *Verifier {
	return &Verifier{keys: keys, jwksURL: jwksURL, adminGroup: adminGroup}
}

func JWKSURL(issuerURL string) string {
	return strings.TrimSuffix(issuerURL, "/") + "/.well-known/jwks.json"
}

func (v *Verifier) Verify(ctx context.Context, accessToken string) (*types.Session, error) {
	set, err := v.keys.Lookup(ctx, v.jwksURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS: %w", err)
	}

	token, err := jwt.Parse(
		[]byte(accessToken),
		jwt.WithKeySet(set),
		jwt.WithValidate(true),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrUnauthenticated, err)
	}

	return SessionFromToken(token, v.adminGroup)
}

// SessionFromToken reads the subject, email and Cognito groups claims.
// Access tokens carry username rather than email, so username is used
// when email is absent.
func SessionFromToken(token jwt.Token, adminGroup string) (*types.Session, error) {
	userID, ok := token.Subject()
	if !ok || userID == "" {
		return nil, fmt.Errorf("%w: no subject claim", types.ErrUnauthenticated)
	}

	session := &types.Session{UserID: userID}

	if err := token.Get("email", &session.Email); err != nil || session.Email == "" {
		_ = token.Get("username", &session.Email)
	}

	var rawGroups any
	if err := token.Get(groupsClaim, &rawGroups); err == nil {
		session.Groups = stringSlice(rawGroups)
	}

	session.IsAdmin = adminGroup == "" || slices.Contains(session.Groups, adminGroup)

	return session, nil
}

func stringSlice(v any) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{vv}
	}
	return nil
}
