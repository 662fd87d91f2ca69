// Package middleware holds the HTTP middleware shared by every gymcore route.
package middleware

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"github.com/gymstack/gymcore/pkg/response"
)

type window struct {
	count   int
	resetAt time.Time
}

type ipLimiter struct {
	mu        sync.Mutex
	max       int
	span      time.Duration
	windows   map[string]*window
	nextSweep time.Time
	now       func() time.Time
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.After(l.nextSweep) {
		for key, w := range l.windows {
			if now.After(w.resetAt) {
				delete(l.windows, key)
			}
		}
		l.nextSweep = now.Add(l.span)
	}

	w, ok := l.windows[ip]
	if !ok || now.After(w.resetAt) {
		w = &window{resetAt: now.Add(l.span)}
		l.windows[ip] = w
	}
	w.count++
	return w.count <= l.max
}

// RateLimit allows each client IP at most max requests per span.
// Expired windows are swept inline, so no background goroutine is needed.
// X-Forwarded-For is only read when the direct peer is in trusted.
func RateLimit(max int, span time.Duration, trusted []netip.Prefix) func(http.Handler) http.Handler {
	l := &ipLimiter{max: max, span: span, windows: map[string]*window{}, now: time.Now}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.allow(clientIP(r, trusted)) {
				response.Error(w, http.StatusTooManyRequests, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ParseTrustedProxies reads proxy addresses given as single IPs or CIDRs.
func ParseTrustedProxies(entries []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if strings.Contains(e, "/") {
			p, err := netip.ParsePrefix(e)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", e, err)
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(e)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", e, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// clientIP is the direct peer unless that peer is a trusted proxy. Then the
// X-Forwarded-For chain is walked from the right, skipping trusted hops, and
// the first untrusted address wins. Anything left of it is client-supplied.
func clientIP(r *http.Request, trusted []netip.Prefix) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	peer, err := netip.ParseAddr(host)
	if err != nil || !isTrusted(peer, trusted) {
		return host
	}

	hops := strings.Split(strings.Join(r.Header.Values("X-Forwarded-For"), ","), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		addr, err := netip.ParseAddr(hop)
		if err != nil {
			break
		}
		if !isTrusted(addr, trusted) {
			return addr.Unmap().String()
		}
	}
	return host
}

func isTrusted(addr netip.Addr, trusted []netip.Prefix) bool {
	addr = addr.Unmap()
	for _, p := range trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
