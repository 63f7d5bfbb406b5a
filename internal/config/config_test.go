package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNetworkAddress_Set проверяет разбор адреса host:port
func TestNetworkAddress_Set(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    NetworkAddress
		wantErr bool
	}{
		{
			name:  "Host and port",
			value: "localhost:8080",
			want:  NetworkAddress{Host: "localhost", Port: 8080},
		},
		{
			name:  "Empty host",
			value: ":9090",
			want:  NetworkAddress{Host: "", Port: 9090},
		},
		{
			name:    "Missing port",
			value:   "localhost",
			wantErr: true,
		},
		{
			name:    "Non-numeric port",
			value:   "localhost:http",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetworkAddress
			err := addr.Set(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, addr)
			assert.Equal(t, tt.value, addr.String())
		})
	}
}

// TestURLPrefix_Set проверяет валидацию базового URL коротких ссылок
func TestURLPrefix_Set(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    URLPrefix
		wantErr bool
	}{
		{
			name:  "HTTP prefix",
			value: "http://localhost:8080",
			want:  "http://localhost:8080",
		},
		{
			name:  "HTTPS prefix with trailing slash trimmed",
			value: "https://sh.example.com/",
			want:  "https://sh.example.com",
		},
		{
			name:    "Missing scheme",
			value:   "localhost:8080",
			wantErr: true,
		},
		{
			name:    "Disallowed scheme",
			value:   "ftp://example.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var prefix URLPrefix
			err := prefix.Set(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, prefix)
		})
	}
}
