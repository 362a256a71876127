package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"Valid", "Secret", false},
		{"Long Mixed Case", "CorrectHorseBatteryStaple", false},
		{"Digits Not Required", "abcDEF", false},
		{"Too Short", "Abcde", true},
		{"No Upper", "abcdef1", true},
		{"No Lower", "ABCDEF1", true},
		{"Empty", "", true},
		{"Non-ASCII Upper", "Ångström", true},
		{"Non-ASCII Upper Only", "ÉÀÎabc", true},
		{"Non-ASCII Lower Only", "ABCDEFé", true},
		{"Accents Around ASCII", "Ångström Ok", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"Valid", "ada@example.com", false},
		{"Empty", "", true},
		{"Missing At", "ada.example.com", true},
		{"Display Name", "Ada <ada@example.com>", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
