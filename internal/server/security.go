package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/BoxLedger_Go/internal/logger"
)

// TrustedProxies is the set of peers whose X-Forwarded-For header is believed.
// Entries are single addresses or CIDR ranges.
type TrustedProxies struct {
	prefixes []netip.Prefix
}

// ParseTrustedProxies parses TRUSTED_PROXIES entries, skipping and logging invalid ones
func ParseTrustedProxies(entries []string) *TrustedProxies {
	tp := &TrustedProxies{}
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if p, err := netip.ParsePrefix(e); err == nil {
			tp.prefixes = append(tp.prefixes, p.Masked())
			continue
		}
		if a, err := netip.ParseAddr(e); err == nil {
			a = a.Unmap()
			tp.prefixes = append(tp.prefixes, netip.PrefixFrom(a, a.BitLen()))
			continue
		}
		slog.Warn(LogMsgInvalidTrustedProxy, "entry", e)
	}
	return tp
}

// Contains reports whether ip belongs to a trusted proxy
func (tp *TrustedProxies) Contains(ip string) bool {
	if tp == nil || len(tp.prefixes) == 0 {
		return false
	}
	a, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	a = a.Unmap()
	for _, p := range tp.prefixes {
		if p.Contains(a) {
			return true
		}
	}
	return false
}

// providedAPIKey reads the key from X-API-Key or an Authorization bearer token
func providedAPIKey(r *http.Request) string {
	if k := r.Header.Get(HeaderAPIKey); k != "" {
		return k
	}
	auth := r.Header.Get(HeaderAuthorization)
	if len(auth) > len(BearerPrefix) && strings.EqualFold(auth[:len(BearerPrefix)], BearerPrefix) {
		return strings.TrimSpace(auth[len(BearerPrefix):])
	}
	return ""
}

func isPublicPath(path string) bool {
	for _, p := range PublicPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// AuthMiddleware rejects requests to non-public paths that do not carry the API key
func AuthMiddleware(apiKey string, proxies *TrustedProxies, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			provided := providedAPIKey(r)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				ip := extractIP(r, proxies)
				detector.RecordFailedAuth(ip)

				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					"path", r.URL.Path,
					"has_key", provided != "",
					"ip", ip)

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequestSizeLimitMiddleware caps request bodies at maxBytes
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// ipWindow counts events for one IP inside a fixed window
type ipWindow struct {
	count int
	start time.Time
}

// SuspiciousActivityDetector tracks failed logins and request rates per IP.
// Each IP gets its own fixed window; idle IPs expire from a bounded LRU.
type SuspiciousActivityDetector struct {
	mu         sync.Mutex
	failedAuth *expirable.LRU[string, ipWindow]
	requests   *expirable.LRU[string, ipWindow]
	limit      int
	now        func() time.Time
}

func NewSuspiciousActivityDetector() *SuspiciousActivityDetector {
	return &SuspiciousActivityDetector{
		failedAuth: expirable.NewLRU[string, ipWindow](DetectorCapacity, nil, ActivityWindow),
		requests:   expirable.NewLRU[string, ipWindow](DetectorCapacity, nil, ActivityWindow),
		limit:      RequestRateLimit,
		now:        time.Now,
	}
}

// bump increments the IP's counter, starting a new window when the old one has passed.
// Caller must hold the mutex.
func (s *SuspiciousActivityDetector) bump(lru *expirable.LRU[string, ipWindow], ip string) ipWindow {
	now := s.now()
	w, ok := lru.Get(ip)
	if !ok || now.Sub(w.start) > ActivityWindow {
		w = ipWindow{start: now}
	}
	w.count++
	lru.Add(ip, w)
	return w
}

// RecordFailedAuth counts a failed authentication and alerts past the threshold
func (s *SuspiciousActivityDetector) RecordFailedAuth(ip string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w := s.bump(s.failedAuth, ip); w.count >= FailedAuthAlertThreshold {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", w.count)
	}
}

// RecordRequest counts a request. Over the limit it returns false and how long
// until the IP's window resets.
func (s *SuspiciousActivityDetector) RecordRequest(ip string) (bool, time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.bump(s.requests, ip)
	if w.count <= s.limit {
		return true, 0
	}
	if w.count%RateLogEvery == 0 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count_in_window", w.count)
	}
	retry := w.start.Add(ActivityWindow).Sub(s.now())
	if retry < time.Second {
		retry = time.Second
	}
	return false, retry
}

// requestCount returns the IP's count in its current window
func (s *SuspiciousActivityDetector) requestCount(ip string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, _ := s.requests.Get(ip)
	return w.count
}

// RateLimitMiddleware answers 429 with Retry-After once an IP exceeds its window budget
func RateLimitMiddleware(proxies *TrustedProxies, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, retry := detector.RecordRequest(extractIP(r, proxies))
			if !ok {
				w.Header().Set(HeaderRetryAfter, strconv.Itoa(int(retry.Round(time.Second)/time.Second)))
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractIP returns the client address. X-Forwarded-For is only consulted when the
// direct peer is a trusted proxy; the chain is walked from the right and the first
// hop that is not itself a trusted proxy is the client.
func extractIP(r *http.Request, proxies *TrustedProxies) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}
	if !proxies.Contains(remoteIP) {
		return remoteIP
	}

	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return remoteIP
	}
	hops := strings.Split(forwarded, ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if !proxies.Contains(hop) {
			return hop
		}
	}
	return remoteIP
}

// SecurityHeadersMiddleware sets the hardening headers on every response.
// API responses carry balances and rewards, so they are never cached.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set(HeaderContentType, HeaderValueNoSniff)
			h.Set(HeaderFrameOptions, HeaderValueDeny)
			h.Set(HeaderReferrerPolicy, HeaderValueNoReferrer)
			if strings.HasPrefix(r.URL.Path, APIPrefix) {
				h.Set(HeaderCacheControl, HeaderValueNoStore)
			}
			next.ServeHTTP(w, r)
		})
	}
}
