package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/srdevmiller/meumeu3.0-sub000/internal/domain"
)

func TestDeviceClassFromUserAgent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ua   string
		want string
	}{
		{
			name: "desktop chrome",
			ua:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0 Safari/537.36",
			want: domain.DeviceDesktop,
		},
		{
			name: "iphone",
			ua:   "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Mobile/15E148 Safari/604.1",
			want: domain.DeviceMobile,
		},
		{
			name: "android phone",
			ua:   "Mozilla/5.0 (Linux; Android 14; Pixel 8) Mobile Safari/537.36",
			want: domain.DeviceMobile,
		},
		{
			// Many tablet UAs also contain "Mobile"; tablet wins.
			name: "android tablet with mobile token",
			ua:   "Mozilla/5.0 (Linux; Android 13; Tablet) Mobile Safari/537.36",
			want: domain.DeviceTablet,
		},
		{
			name: "case insensitive",
			ua:   "SOMETHING TABLET SOMETHING",
			want: domain.DeviceTablet,
		},
		{
			name: "empty ua falls back to desktop",
			ua:   "",
			want: domain.DeviceDesktop,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, domain.DeviceClassFromUserAgent(tt.ua))
		})
	}
}
