package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/founder-command-center/internal/errors"
)

// AllowedHosts rejects requests whose Host header matches none of hosts.
// "*" matches everything and ".example.com" matches the domain and its
// subdomains.
func AllowedHosts(hosts []string) gin.HandlerFunc {
	patterns := make([]string, 0, len(hosts))
	for _, h := range hosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			patterns = append(patterns, h)
		}
	}

	return func(c *gin.Context) {
		host := hostWithoutPort(c.Request.Host)
		for _, pattern := range patterns {
			if hostMatches(pattern, host) {
				c.Next()
				return
			}
		}
		apierrors.InvalidHost(c, c.Request.Host)
	}
}

func hostWithoutPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.ToLower(strings.Trim(host, "[]"))
}

func hostMatches(pattern, host string) bool {
	switch {
	case pattern == "*":
		return true
	case strings.HasPrefix(pattern, "."):
		return host == pattern[1:] || strings.HasSuffix(host, pattern)
	default:
		return host == pattern
	}
}
