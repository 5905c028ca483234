package validation

import "testing"

func TestIsValidCPF(t *testing.T) {
	tests := []struct {
		name  string
		cpf   string
		valid bool
	}{
		{
			name:  "valid example 1",
			cpf:   "82842151011",
			valid: true,
		},
		{
			name:  "valid example 2",
			cpf:   "52998224725",
			valid: true,
		},
		{
			name:  "valid with punctuation",
			cpf:   "529.982.247-25",
			valid: true,
		},
		{
			name:  "punctuation out of place",
			cpf:   "8-2.8-4.2-1.5-1.0-1.1",
			valid: false,
		},
		{
			name:  "partial punctuation",
			cpf:   "529982247-25",
			valid: false,
		},
		{
			name:  "non-ascii digit",
			cpf:   "٨2842151011",
			valid: false,
		},
		{
			name:  "invalid first check digit",
			cpf:   "82842151001",
			valid: false,
		},
		{
			name:  "invalid second check digit",
			cpf:   "82842151012",
			valid: false,
		},
		{
			name:  "repeated digits",
			cpf:   "11111111111",
			valid: false,
		},
		{
			name:  "too short",
			cpf:   "1234567890",
			valid: false,
		},
		{
			name:  "contains letters",
			cpf:   "8284215101a",
			valid: false,
		},
		{
			name:  "empty string",
			cpf:   "",
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsValidCPF(tt.cpf)
			if got != tt.valid {
				t.Fatalf("IsValidCPF(%q) = %v, want %v", tt.cpf, got, tt.valid)
			}
		})
	}
}

func TestNormalizeCPF(t *testing.T) {
	tests := []struct {
		name string
		cpf  string
		want string
	}{
		{
			name: "digits only",
			cpf:  "52998224725",
			want: "52998224725",
		},
		{
			name: "formatted",
			cpf:  "529.982.247-25",
			want: "52998224725",
		},
		{
			name: "unknown layout is kept",
			cpf:  "5-2.9982247-25",
			want: "5-2.9982247-25",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeCPF(tt.cpf); got != tt.want {
				t.Fatalf("NormalizeCPF(%q) = %q, want %q", tt.cpf, got, tt.want)
			}
		})
	}
}
