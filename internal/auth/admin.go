package auth

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"golang.org/x/crypto/bcrypt"

	"github.com/goto/folio/internal/errors"
)

const (
	EntityAdmin = "admin"

	realm = `Basic realm="folio admin"`
)

type userKey struct{}

// Admin is the single account allowed to manage blogs
type Admin struct {
	email string
	hash  []byte
}

func NewAdmin(email, password string, cost int) (*Admin, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, errors.InvalidArgument(EntityAdmin, "admin email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, errors.InternalError(EntityAdmin, "unable to hash admin password", err)
	}
	return &Admin{email: email, hash: hash}, nil
}

func (a *Admin) Email() string {
	return a.email
}

func (a *Admin) Verify(email, password string) error {
	sameEmail := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(email)), []byte(a.email)) == 1
	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(password)); err != nil || !sameEmail {
		return errors.Forbidden(EntityAdmin, "invalid admin credentials")
	}
	return nil
}

// Protect rejects requests without valid admin basic auth credentials
func (a *Admin) Protect(next runtime.HandlerFunc) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
		email, password, ok := r.BasicAuth()
		if !ok || a.Verify(email, password) != nil {
			w.Header().Set("WWW-Authenticate", realm)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"unauthorized"}`))
			return
		}

		next(w, r.WithContext(WithUser(r.Context(), a.email)), pathParams)
	}
}

func WithUser(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, userKey{}, email)
}

func UserFrom(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(userKey{}).(string)
	return email, ok && email != ""
}
