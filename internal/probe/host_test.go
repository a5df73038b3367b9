package probe

import "testing"

func TestValidHost(t *testing.T) {
	tests := []struct {
		name string
		host string
		want bool
	}{
		{name: "hostname", host: "example.com", want: true},
		{name: "ipv4", host: "10.0.0.5", want: true},
		{name: "underscores and hyphens", host: "my_host-01.internal", want: true},
		{name: "semicolon injection", host: "bad;host", want: false},
		{name: "shell substitution", host: "$(whoami).com", want: false},
		{name: "spaces", host: "two words", want: false},
		{name: "empty", host: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidHost(tt.host); got != tt.want {
				t.Errorf("ValidHost(%q) = %v, want %v", tt.host, got, tt.want)
			}
		})
	}
}

func TestParseTCPTarget(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantHost string
		wantPort int
	}{
		{name: "host and port", raw: "db.internal:5432", wantHost: "db.internal", wantPort: 5432},
		{name: "scheme prefix stripped", raw: "tcp://db.internal:5432", wantHost: "db.internal", wantPort: 5432},
		{name: "no port defaults to 22", raw: "bastion.example.com", wantHost: "bastion.example.com", wantPort: 22},
		{name: "unparsable port defaults to 22", raw: "host:abc", wantHost: "host", wantPort: 22},
		{name: "ipv4 with port", raw: "10.0.0.5:9999", wantHost: "10.0.0.5", wantPort: 9999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, port := ParseTCPTarget(tt.raw)
			if host != tt.wantHost || port != tt.wantPort {
				t.Errorf("ParseTCPTarget(%q) = (%q, %d), want (%q, %d)",
					tt.raw, host, port, tt.wantHost, tt.wantPort)
			}
		})
	}
}

func TestExtractPingHost(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "bare host", raw: "example.com", want: "example.com"},
		{name: "ping scheme", raw: "ping://example.com", want: "example.com"},
		{name: "https scheme with path", raw: "https://example.com/health", want: "example.com"},
		{name: "http scheme with port", raw: "http://example.com:8080", want: "example.com"},
		{name: "ipv4", raw: "10.0.0.5", want: "10.0.0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractPingHost(tt.raw); got != tt.want {
				t.Errorf("ExtractPingHost(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
