package route

import (
	"context"
	"crypto/subtle"
	"net/http"

	"go.akshayshah.org/connectauth"

	"lockstats/pkg/config"
)

// AuthCtx holds user authentication information
type AuthCtx struct {
	Username string
}

// Authenticate checks API callers against the admin credentials. With no
// password configured every caller is let through anonymously.
func Authenticate(admin config.AdminConfig) func(context.Context, *connectauth.Request) (any, error) {
	return func(ctx context.Context, req *connectauth.Request) (any, error) {
		if !admin.AuthEnabled() {
			return AuthCtx{Username: "anonymous"}, nil
		}
		username, password, ok := (&http.Request{Header: req.Header}).BasicAuth()
		if !ok {
			return nil, connectauth.Errorf("missing credentials")
		}
		userOK := subtle.ConstantTimeCompare([]byte(username), []byte(admin.Username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(password), []byte(admin.Password)) == 1
		if !userOK || !passOK {
			return nil, connectauth.Errorf("invalid credentials")
		}
		return AuthCtx{Username: username}, nil
	}
}
