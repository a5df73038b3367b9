package utils

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple name", in: "My API", want: "my-api"},
		{name: "already a slug", in: "edge-gateway", want: "edge-gateway"},
		{name: "punctuation collapses", in: "Prod / EU (west)", want: "prod-eu-west"},
		{name: "leading and trailing junk", in: "  *Status*  ", want: "status"},
		{name: "digits preserved", in: "Node 01", want: "node-01"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
