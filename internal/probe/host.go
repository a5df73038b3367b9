package probe

import (
	"regexp"
	"strconv"
	"strings"
)

// hostPattern is the strict charset accepted for hostnames and IPv4
// addresses. Anything else is rejected before a socket is opened.
var hostPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidHost reports whether a host passes the charset validation
func ValidHost(host string) bool {
	return hostPattern.MatchString(host)
}

// DefaultTCPPort is used when the connection string carries no parsable port
const DefaultTCPPort = 22

// ParseTCPTarget splits a tcp connection string into host and port. The
// scheme prefix is optional; a missing or unparsable port falls back to
// DefaultTCPPort.
func ParseTCPTarget(raw string) (host string, port int) {
	cleaned := strings.TrimPrefix(raw, "tcp://")

	idx := strings.LastIndex(cleaned, ":")
	if idx == -1 {
		return cleaned, DefaultTCPPort
	}

	host = cleaned[:idx]
	port, err := strconv.Atoi(cleaned[idx+1:])
	if err != nil || port <= 0 {
		port = DefaultTCPPort
	}
	return host, port
}

// ExtractPingHost strips scheme prefixes, path and port from a connection
// string, leaving the bare host to ping.
func ExtractPingHost(raw string) string {
	cleaned := strings.TrimPrefix(raw, "ping://")
	cleaned = strings.TrimPrefix(cleaned, "https://")
	cleaned = strings.TrimPrefix(cleaned, "http://")

	if i := strings.Index(cleaned, "/"); i != -1 {
		cleaned = cleaned[:i]
	}
	if i := strings.Index(cleaned, ":"); i != -1 {
		cleaned = cleaned[:i]
	}
	return cleaned
}
