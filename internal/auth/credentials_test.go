package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAuthorization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		header     string
		wantScheme string
		wantValue  string
		wantErr    error
	}{
		{
			name:       "bearer token",
			header:     "Bearer abc.def.ghi",
			wantScheme: "bearer",
			wantValue:  "abc.def.ghi",
		},
		{
			name:       "basic credentials",
			header:     "Basic dXNlcjpwYXNz",
			wantScheme: "basic",
			wantValue:  "dXNlcjpwYXNz",
		},
		{
			name:       "scheme casing normalized",
			header:     "BEARER token",
			wantScheme: "bearer",
			wantValue:  "token",
		},
		{
			name:    "empty header",
			header:  "",
			wantErr: ErrNoCredentials,
		},
		{
			name:    "scheme only",
			header:  "Bearer",
			wantErr: ErrCredentialMalformed,
		},
		{
			name:    "too many parts",
			header:  "Bearer one two",
			wantErr: ErrCredentialMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			scheme, value, err := ParseAuthorization(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantScheme, scheme)
			assert.Equal(t, tt.wantValue, value)
		})
	}
}
