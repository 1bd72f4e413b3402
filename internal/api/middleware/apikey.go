package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
	"strconv"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/niveshai/niveshai-backend/internal/api/response"
)

// TimeTokenTTL is how long a token from GenerateTimeToken is accepted.
const TimeTokenTTL = 5 * time.Minute

// timeTokenKey derives the fernet key from the API key.
func timeTokenKey(apiKey string) *fernet.Key {
	sum := sha256.Sum256([]byte(apiKey))
	var k fernet.Key
	copy(k[:], sum[:])
	return &k
}

// GenerateTimeToken returns a fernet token, signed with a key derived from
// apiKey, carrying the current unix time. Clients send it as X-Time-Token.
func GenerateTimeToken(apiKey string) string {
	tok, err := fernet.EncryptAndSign([]byte(strconv.FormatInt(time.Now().Unix(), 10)), timeTokenKey(apiKey))
	if err != nil {
		return ""
	}
	return string(tok)
}

// validTimeToken reports whether token was issued for apiKey within TimeTokenTTL.
func validTimeToken(token, apiKey string) bool {
	msg := fernet.VerifyAndDecrypt([]byte(token), TimeTokenTTL, []*fernet.Key{timeTokenKey(apiKey)})
	return msg != nil
}

// APIKeyMiddleware protects internal endpoints. Requests need the X-API-Key
// header matching apiKey and a fresh X-Time-Token.
//
// Returns 500 if apiKey is empty, 401 for a missing or wrong key and for a
// missing, invalid or expired token.
func APIKeyMiddleware(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return apiKeyHandler(apiKey, next)
	}
}

func apiKeyHandler(apiKey string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if apiKey == "" {
			response.RespondError(w, http.StatusInternalServerError, "internal server error", "Authentication not loaded")
			return
		}

		provided := r.Header.Get("X-API-Key")
		if provided == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API key")
			return
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key")
			return
		}

		token := r.Header.Get("X-Time-Token")
		if token == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing Time token")
			return
		}
		if !validTimeToken(token, apiKey) {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Time token is invalid or expired")
			return
		}

		next.ServeHTTP(w, r)
	})
}
