package switchboard

import (
	"context"
	"time"

	"github.com/agentstation/utc"

	"github.com/unitworks/switchboard/pkg/errors"
)

// Session is the state a successful sign-in leaves behind. HTTP
// cookies live in the client's cookie jar; Session carries everything
// else.
type Session struct {
	// Unit is the signed-in user's unit number, used to auto-fill
	// unit template parameters.
	Unit string

	// Token is the access token returned by the sign-in endpoint,
	// empty for cookie-only sessions.
	Token string

	// TokenExpiry is the token's expiry claim. Zero for opaque tokens
	// and cookie-only sessions.
	TokenExpiry time.Time

	// SignedInAt records when the session was established.
	SignedInAt utc.Time

	valid bool
}

// Valid reports whether the session is signed in.
func (s Session) Valid() bool {
	return s.valid
}

// Expired reports whether the session's token has a known expiry in
// the past. Cookie-only sessions and opaque tokens never report
// expired.
func (s Session) Expired() bool {
	return !s.TokenExpiry.IsZero() && time.Now().After(s.TokenExpiry)
}

// WithSession builds a client, signs in, runs fn, and always signs out
// on the way out: on fn's return, on its error, and on panic (the
// panic keeps propagating after sign-out). A sign-out failure is
// joined onto fn's error, never swallowed. Construction or sign-in
// failure returns immediately; there is nothing to sign out of.
func WithSession(ctx context.Context, username, password string, fn func(*Client) error, opts ...Option) (err error) {
	client, err := New(ctx, opts...)
	if err != nil {
		return err
	}
	if err = client.SignIn(ctx, username, password); err != nil {
		return err
	}
	defer func() {
		if signOutErr := client.SignOut(ctx); signOutErr != nil {
			err = errors.Join(err, signOutErr)
		}
	}()
	return fn(client)
}
