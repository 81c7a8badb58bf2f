// Package security identifies API clients, screens API requests and sets
// response hardening headers.
package security

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
)

// Reason names why the guard rejected a request.
type Reason string

const (
	ReasonScanner   Reason = "scanner_agent"
	ReasonTraversal Reason = "path_traversal"
	ReasonMethod    Reason = "unusual_method"
	ReasonQuery     Reason = "oversized_query"
	ReasonForwarded Reason = "forwarded_chain"
)

var reasons = []Reason{ReasonScanner, ReasonTraversal, ReasonMethod, ReasonQuery, ReasonForwarded}

// API query strings carry a handful of dates and small integers.
const (
	defaultMaxQueryBytes = 512
	maxForwardedHops     = 5
)

var (
	scannerAgents = []string{
		"sqlmap", "nmap", "nikto", "gobuster", "dirb",
		"masscan", "zgrab", "nuclei", "ffuf",
	}
	unusualMethods = map[string]bool{
		"TRACE": true, "TRACK": true, "DEBUG": true, "CONNECT": true,
	}
	traversalMarkers = []string{"..", "%2e%2e", "\\", "%5c", "\x00", "%00"}
)

// GuardConfig scopes the screening.
type GuardConfig struct {
	// PathPrefix limits screening to matching paths; empty screens all.
	PathPrefix string
	// MaxQueryBytes caps the raw query string length.
	MaxQueryBytes int
}

// DefaultGuardConfig screens the JSON API and leaves probes alone.
func DefaultGuardConfig() GuardConfig {
	return GuardConfig{PathPrefix: "/api/", MaxQueryBytes: defaultMaxQueryBytes}
}

// GuardMetrics is a snapshot of the guard counters.
type GuardMetrics struct {
	Blocked          int64
	InvalidForwarded int64
	ByReason         map[Reason]int64
}

// Guard rejects API requests that no legitimate client sends and resolves
// the client address behind trusted proxies.
type Guard struct {
	cfg            GuardConfig
	trustedProxies []*net.IPNet

	blocked          atomic.Int64
	invalidForwarded atomic.Int64
	byReason         map[Reason]*atomic.Int64
}

// NewGuard creates a guard that trusts loopback and private networks as
// proxies.
func NewGuard(cfg GuardConfig) *Guard {
	if cfg.MaxQueryBytes <= 0 {
		cfg.MaxQueryBytes = defaultMaxQueryBytes
	}
	g := &Guard{
		cfg: cfg,
		trustedProxies: []*net.IPNet{
			parseCIDR("127.0.0.0/8"),
			parseCIDR("10.0.0.0/8"),
			parseCIDR("172.16.0.0/12"),
			parseCIDR("192.168.0.0/16"),
		},
		byReason: make(map[Reason]*atomic.Int64, len(reasons)),
	}
	for _, r := range reasons {
		g.byReason[r] = new(atomic.Int64)
	}
	return g
}

func parseCIDR(cidr string) *net.IPNet {
	_, network, err := net.ParseCIDR(cidr)
	if err != nil {
		panic(fmt.Sprintf("failed to parse trusted proxy CIDR %s: %v", cidr, err))
	}
	return network
}

// AddTrustedProxy adds a trusted proxy network. Call it before serving.
func (g *Guard) AddTrustedProxy(cidr string) error {
	_, network, err := net.ParseCIDR(cidr)
	if err != nil {
		return fmt.Errorf("invalid CIDR %s: %w", cidr, err)
	}
	g.trustedProxies = append(g.trustedProxies, network)
	return nil
}

// Screen reports whether r should be rejected and why. Requests outside
// the configured prefix always pass.
func (g *Guard) Screen(r *http.Request) (Reason, bool) {
	if g.cfg.PathPrefix != "" && !strings.HasPrefix(r.URL.Path, g.cfg.PathPrefix) {
		return "", false
	}

	if unusualMethods[r.Method] {
		return ReasonMethod, true
	}

	agent := strings.ToLower(r.Header.Get("User-Agent"))
	for _, s := range scannerAgents {
		if strings.Contains(agent, s) {
			return ReasonScanner, true
		}
	}

	path := strings.ToLower(r.URL.EscapedPath())
	for _, m := range traversalMarkers {
		if strings.Contains(path, m) || strings.Contains(r.URL.Path, m) {
			return ReasonTraversal, true
		}
	}

	if len(r.URL.RawQuery) > g.cfg.MaxQueryBytes {
		return ReasonQuery, true
	}

	if xff := r.Header.Get("X-Forwarded-For"); strings.Count(xff, ",") >= maxForwardedHops {
		return ReasonForwarded, true
	}
	return "", false
}

// Middleware rejects screened requests through onBlock. A nil onBlock
// answers with a bare 403.
func (g *Guard) Middleware(onBlock func(http.ResponseWriter, *http.Request, Reason)) func(http.Handler) http.Handler {
	if onBlock == nil {
		onBlock = func(w http.ResponseWriter, _ *http.Request, _ Reason) {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reason, blocked := g.Screen(r)
			if !blocked {
				next.ServeHTTP(w, r)
				return
			}
			g.blocked.Add(1)
			g.byReason[reason].Add(1)
			slog.WarnContext(r.Context(), "Blocked request",
				"reason", string(reason),
				"client_ip", g.ExtractClientIP(r),
				"method", r.Method,
				"path", r.URL.Path,
				"user_agent", r.Header.Get("User-Agent"))
			onBlock(w, r, reason)
		})
	}
}

// ExtractClientIP returns the address that reached the outermost trusted
// proxy. X-Forwarded-For is read right to left so entries a client
// prepends cannot override the hop our proxy recorded.
func (g *Guard) ExtractClientIP(r *http.Request) string {
	peer, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		peer = r.RemoteAddr
	}
	ip := net.ParseIP(peer)
	if ip == nil || !g.isTrustedProxy(ip) {
		return peer
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			hopIP := net.ParseIP(hop)
			if hopIP == nil {
				g.invalidForwarded.Add(1)
				return peer
			}
			if i == 0 || !g.isTrustedProxy(hopIP) {
				return hop
			}
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		if net.ParseIP(xri) != nil {
			return xri
		}
		g.invalidForwarded.Add(1)
	}
	return peer
}

func (g *Guard) isTrustedProxy(ip net.IP) bool {
	for _, network := range g.trustedProxies {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// GetMetrics returns current guard counters.
func (g *Guard) GetMetrics() GuardMetrics {
	m := GuardMetrics{
		Blocked:          g.blocked.Load(),
		InvalidForwarded: g.invalidForwarded.Load(),
		ByReason:         make(map[Reason]int64, len(g.byReason)),
	}
	for r, c := range g.byReason {
		m.ByReason[r] = c.Load()
	}
	return m
}

// Reasons lists every rejection reason in a stable order.
func Reasons() []Reason {
	return append([]Reason(nil), reasons...)
}
