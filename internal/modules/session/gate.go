package session

import (
	"context"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/eko/gocache/store/go_cache/v4"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// Gate is the optional shared-secret login check. With no credentials
// configured every login and every protected request is authorized.
// Configured credentials are compared exactly, case-sensitive; there is
// no hashing, rate limiting, or lockout. That is acceptable only because
// this guards a shared-use tool, not a multi-tenant system.
type Gate struct {
	username string
	password string
	expire   time.Duration
	tokens   *cache.Cache[bool]
}

func NewGate(username, password string, expire time.Duration) *Gate {
	client := gocache.New(expire, expire)
	return &Gate{
		username: username,
		password: password,
		expire:   expire,
		tokens:   cache.New[bool](go_cache.NewGoCache(client)),
	}
}

// Required reports whether a login is needed before protected requests.
// A partially configured pair counts as unconfigured.
func (g *Gate) Required() bool {
	return g.username != "" && g.password != ""
}

// Login returns a session token on success. In the unconfigured state
// any credentials succeed. Failure does not reveal which field was wrong.
func (g *Gate) Login(username, password string) (string, bool) {
	if g.Required() {
		if username != g.username || password != g.password {
			return "", false
		}
	}
	token := uuid.NewString()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := g.tokens.Set(ctx, token, true, store.WithExpiration(g.expire))
	if err != nil {
		return "", false
	}
	return token, true
}

func (g *Gate) Authenticated(token string) bool {
	if !g.Required() {
		return true
	}
	if token == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	ok, err := g.tokens.Get(ctx, token)
	if err != nil {
		// not found and store errors both mean "not authenticated"
		return false
	}
	return ok
}

func (g *Gate) Logout(token string) {
	if token == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = g.tokens.Delete(ctx, token)
}
