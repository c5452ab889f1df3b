package cpf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cadastro-livre/backend/pkg/cpf"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"formatted", "123.456.789-09", "12345678909"},
		{"plain", "12345678909", "12345678909"},
		{"spaces and letters", " 123 456 789 09 abc", "12345678909"},
		{"empty", "", ""},
		{"only punctuation", "..-", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cpf.Normalize(tt.in))
		})
	}
}

func TestNormalizeEquivalence(t *testing.T) {
	// The punctuated display form and the plain form are the same identity.
	assert.Equal(t, cpf.Normalize("123.456.789-09"), cpf.Normalize("12345678909"))
}

func TestValid(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"valid sequence", "12345678909", true},
		{"another valid", "52998224725", true},
		{"third valid", "11144477735", true},
		{"corrupted last check digit", "12345678908", false},
		{"corrupted first check digit", "12345678919", false},
		{"repeated digits", "11111111111", false},
		{"all zeros", "00000000000", false},
		{"too short", "1234567890", false},
		{"too long", "123456789090", false},
		{"non digits", "123456789a9", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cpf.Valid(tt.value))
		})
	}
}
