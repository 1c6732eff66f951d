package server_test

import (
	"testing"
	"time"

	"license-sync/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_DirectoryCacheTTL(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		want    time.Duration
	}{
		{"Default", 300, 5 * time.Minute},
		{"Disabled", 0, 0},
		{"Negative", -10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{DirectoryCacheSeconds: tt.seconds}
			assert.Equal(t, tt.want, c.DirectoryCacheTTL())
		})
	}
}
