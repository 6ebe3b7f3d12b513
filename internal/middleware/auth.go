// Package middleware содержит HTTP middleware магазина.
package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"
	"time"
)

type contextKey string

const customerIDKey contextKey = "customerID"

// Значения по умолчанию для cookie покупателя.
const (
	DefaultCookieName = "customer_token"
	DefaultCookieTTL  = 30 * 24 * time.Hour
)

// AuthMiddleware определяет покупателя по подписанному cookie.
// Значение cookie имеет вид "<id>.<expires>.<hmac>", срок действия проверяется на сервере.
type AuthMiddleware struct {
	secretKey  []byte
	cookieName string
	ttl        time.Duration
	now        func() time.Time
}

// AuthOption настраивает AuthMiddleware.
type AuthOption func(*AuthMiddleware)

// WithCookieName задаёт имя cookie. Пустое имя игнорируется.
func WithCookieName(name string) AuthOption {
	return func(a *AuthMiddleware) {
		if name != "" {
			a.cookieName = name
		}
	}
}

// WithCookieTTL задаёт срок действия cookie. Неположительное значение игнорируется.
func WithCookieTTL(ttl time.Duration) AuthOption {
	return func(a *AuthMiddleware) {
		if ttl > 0 {
			a.ttl = ttl
		}
	}
}

// NewAuthMiddleware создаёт новый экземпляр AuthMiddleware с указанным секретным ключом.
// Пустой ключ заменяется случайным, такие cookie не переживут перезапуск.
func NewAuthMiddleware(secret string, opts ...AuthOption) *AuthMiddleware {
	key := []byte(secret)
	if len(key) == 0 {
		randomKey := make([]byte, 32)
		if _, err := rand.Read(randomKey); err == nil {
			key = randomKey
		} else {
			key = []byte("default-secret-key")
		}
	}

	a := &AuthMiddleware{
		secretKey:  key,
		cookieName: DefaultCookieName,
		ttl:        DefaultCookieTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Middleware проверяет cookie покупателя и добавляет его идентификатор в контекст запроса.
func (a *AuthMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(a.cookieName)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		customerID, ok := a.parse(cookie.Value)
		if !ok {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), customerIDKey, customerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SetAuthCookie устанавливает cookie для указанного покупателя.
func (a *AuthMiddleware) SetAuthCookie(w http.ResponseWriter, customerID int64) {
	expires := a.now().Add(a.ttl)
	payload := strconv.FormatInt(customerID, 10) + "." + strconv.FormatInt(expires.Unix(), 10)

	http.SetCookie(w, &http.Cookie{
		Name:     a.cookieName,
		Value:    payload + "." + a.sign(payload),
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(a.ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *AuthMiddleware) sign(payload string) string {
	mac := hmac.New(sha256.New, a.secretKey)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func (a *AuthMiddleware) parse(cookieValue string) (int64, bool) {
	i := strings.LastIndexByte(cookieValue, '.')
	if i < 0 {
		return 0, false
	}
	payload, signature := cookieValue[:i], cookieValue[i+1:]

	if !hmac.Equal([]byte(signature), []byte(a.sign(payload))) {
		return 0, false
	}

	idStr, expiresStr, found := strings.Cut(payload, ".")
	if !found {
		return 0, false
	}

	expires, err := strconv.ParseInt(expiresStr, 10, 64)
	if err != nil || a.now().Unix() >= expires {
		return 0, false
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, false
	}

	return id, true
}

// GetCustomerIDFromContext извлекает идентификатор покупателя из контекста запроса.
func GetCustomerIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(customerIDKey).(int64)
	return id, ok
}
