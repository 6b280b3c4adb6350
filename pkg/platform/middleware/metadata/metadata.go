package metadata

import (
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"greenpass/pkg/requestcontext"
)

// ClientMetadata extracts the client IP address and User-Agent from the
// request, classifies the verifier client, and stores all three in the
// context. Apply it early in the chain so the request logger sees it.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ClientIPFromRequest(r)
		userAgent := r.Header.Get("User-Agent")

		ctx := requestcontext.WithClientMetadata(r.Context(), ip, userAgent, ClassifyClient(userAgent))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClassifyClient reduces a User-Agent to a coarse, low-cardinality label such
// as "mobile-android", "desktop-linux", "bot" or "unknown". Scanner apps that
// send a bare product token fall into "app".
func ClassifyClient(userAgent string) string {
	if strings.TrimSpace(userAgent) == "" {
		return "unknown"
	}
	ua := useragent.New(userAgent)
	if ua.Bot() {
		return "bot"
	}

	osName := strings.ToLower(ua.OSInfo().Name)
	if osName == "" {
		return "app"
	}
	platform := "desktop"
	if ua.Mobile() {
		platform = "mobile"
	}
	return platform + "-" + strings.ReplaceAll(osName, " ", "_")
}

// ClientIPFromRequest extracts the real client IP from the request, handling proxies and load balancers.
func ClientIPFromRequest(r *http.Request) string {
	// X-Forwarded-For may hold a chain; the first entry is the original client.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// RemoteAddr is "ip:port" or "[::1]:port".
	if addr := r.RemoteAddr; addr != "" {
		if idx := strings.LastIndex(addr, ":"); idx != -1 {
			return strings.Trim(addr[:idx], "[]")
		}
		return addr
	}

	return ""
}
