// Package clientip derives the caller's own IP address from a forwarding
// header or the transport peer address.
//
// The forwarding header is split on commas and its first entry wins. Colons
// are never treated as a delimiter since an IPv6 entry contains them.
package clientip

import (
	"net"
	"net/http"
	"strings"

	"github.com/evyataryagoni/ipgeo/internal/apperror"
)

// DefaultHeader is the forwarding header consulted when none is configured
const DefaultHeader = "X-Forwarded-For"

// Resolve returns the client IP from a forwarding header value or, when the
// header is absent or blank, from the peer address (host or host:port).
// The returned value is not validated as an IP address.
func Resolve(forwarded, peerAddr string) (string, error) {
	if strings.TrimSpace(forwarded) != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first), nil
	}

	if host := peerHost(peerAddr); host != "" {
		return host, nil
	}

	return "", apperror.CannotDetermineIP()
}

// FromRequest resolves the client IP of r using the named forwarding header
func FromRequest(r *http.Request, header string) (string, error) {
	if header == "" {
		header = DefaultHeader
	}
	return Resolve(r.Header.Get(header), r.RemoteAddr)
}

// peerHost strips the port and IPv6 brackets from a peer address
func peerHost(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return ""
	}

	// RemoteAddr is normally host:port, but may be a bare address
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return strings.TrimSuffix(strings.TrimPrefix(addr, "["), "]")
}
