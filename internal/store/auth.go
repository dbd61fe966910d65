package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hungrynow/hungrynow/internal/api"
	"github.com/hungrynow/hungrynow/internal/domain"
	"github.com/hungrynow/hungrynow/pkg/logger"
)

// Auth action types.
const (
	ActionLogin          = "auth/login"
	ActionRegister       = "auth/register"
	ActionLogout         = "auth/logout"
	ActionForgotPassword = "auth/forgotPassword"
	ActionRestoreSession = "auth/restore"
)

const msgLoggedOut = "Logged out successfully"

// AuthState holds the session. Token is empty when signed out.
type AuthState struct {
	Token string
	User  *domain.User
	Status
}

var login = Thunk[domain.Credentials, domain.Session]{
	Type:      ActionLogin,
	Fallback:  "Login failed",
	Exclusive: true,
	Run: func(ctx context.Context, sess Session, in domain.Credentials) (domain.Session, error) {
		env, err := sess.Client().Login(ctx, in)
		if err != nil {
			return domain.Session{}, err
		}
		if err := sess.Login(ctx, env.Data.Token); err != nil {
			return domain.Session{}, fmt.Errorf("save session: %w", err)
		}
		return env.Data, nil
	},
}

var register = Thunk[domain.Registration, domain.Session]{
	Type:      ActionRegister,
	Fallback:  "Registration failed",
	Exclusive: true,
	Run: func(ctx context.Context, sess Session, in domain.Registration) (domain.Session, error) {
		env, err := sess.Client().Register(ctx, in)
		if err != nil {
			return domain.Session{}, err
		}
		if err := sess.Login(ctx, env.Data.Token); err != nil {
			return domain.Session{}, fmt.Errorf("save session: %w", err)
		}
		return env.Data, nil
	},
}

// logout forgets the local session even when the backend cannot be told
// or the persisted token cannot be removed. The credential is dropped in
// both cases.
var logout = Thunk[struct{}, struct{}]{
	Type:      ActionLogout,
	Fallback:  "Logout failed",
	Exclusive: true,
	Run: func(ctx context.Context, sess Session, _ struct{}) (struct{}, error) {
		log := logger.FromContext(ctx)
		if _, err := sess.Client().Logout(ctx); err != nil {
			log.WarnContext(ctx, "backend logout failed", slog.String("error", err.Error()))
		}
		if err := sess.Logout(ctx); err != nil {
			log.WarnContext(ctx, "local logout incomplete", slog.String("error", err.Error()))
		}
		return struct{}{}, nil
	},
}

var forgotPassword = Thunk[string, string]{
	Type:      ActionForgotPassword,
	Fallback:  "Failed to send reset email",
	Exclusive: true,
	Run: func(ctx context.Context, sess Session, email string) (string, error) {
		env, err := sess.Client().ForgotPassword(ctx, email)
		return env.Message, err
	},
}

// restoreSession resolves to the zero Session when nobody is signed in. A
// persisted token the backend no longer accepts is discarded.
var restoreSession = Thunk[struct{}, domain.Session]{
	Type:     ActionRestoreSession,
	Fallback: "Failed to restore session",
	Run: func(ctx context.Context, sess Session, _ struct{}) (domain.Session, error) {
		ok, err := sess.Restore(ctx)
		if err != nil || !ok {
			return domain.Session{}, err
		}

		client := sess.Client()
		env, err := client.GetProfile(ctx)
		if err != nil {
			if api.StatusCode(err) == http.StatusUnauthorized {
				return domain.Session{}, errors.Join(err, sess.Logout(ctx))
			}
			return domain.Session{}, err
		}
		return domain.Session{Token: client.Credential().Token, User: env.Data}, nil
	},
}

// Login signs in and persists the session token.
func (s *Store) Login(ctx context.Context, email, password string) (domain.Session, error) {
	return login.Dispatch(ctx, s, domain.Credentials{Email: email, Password: password})
}

// Register creates an account and signs in to it.
func (s *Store) Register(ctx context.Context, reg domain.Registration) (domain.Session, error) {
	return register.Dispatch(ctx, s, reg)
}

// Logout signs out and resets every slice.
func (s *Store) Logout(ctx context.Context) error {
	_, err := logout.Dispatch(ctx, s, struct{}{})
	return err
}

// ForgotPassword asks the backend to email a reset link.
func (s *Store) ForgotPassword(ctx context.Context, email string) (string, error) {
	return forgotPassword.Dispatch(ctx, s, email)
}

// RestoreSession signs in with a persisted token, if there is one. It
// reports whether a session was restored.
func (s *Store) RestoreSession(ctx context.Context) (bool, error) {
	sess, err := restoreSession.Dispatch(ctx, s, struct{}{})
	return sess.Token != "", err
}

func (st *AuthState) reduce(a Action) {
	switch a.Type {
	case ActionLogin:
		st.reduceAsync(a, func() string {
			st.setSession(a.Payload)
			return "Logged in successfully"
		})
	case ActionRegister:
		st.reduceAsync(a, func() string {
			st.setSession(a.Payload)
			return "Account created successfully"
		})
	case ActionRestoreSession:
		st.reduceAsync(a, func() string {
			st.setSession(a.Payload)
			if st.Token == "" {
				return "Please sign in"
			}
			return "Welcome back"
		})
	case ActionForgotPassword:
		st.reduceAsync(a, func() string {
			return messageOr(a.Payload, "Password reset email sent")
		})
	case ActionLogout:
		// Fulfilment resets the whole state; see State.reduce.
		st.reduceAsync(a, func() string { return msgLoggedOut })
	}
}

func (st *AuthState) setSession(payload any) {
	sess, ok := payload.(domain.Session)
	if !ok || sess.Token == "" {
		st.Token = ""
		st.User = nil
		return
	}
	st.Token = sess.Token
	st.User = cloneUser(&sess.User)
}
