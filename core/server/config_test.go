package server_test

import (
	"testing"
	"time"

	"immich-album-sync/core/server"

	"github.com/stretchr/testify/assert"
)

func TestSyncInterval(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		want    time.Duration
	}{
		{"Configured", 15, 15 * time.Minute},
		{"Zero", 0, server.DefaultSyncInterval},
		{"Negative", -5, server.DefaultSyncInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, server.SyncInterval(tt.minutes))
		})
	}
}

func TestConfig_Address(t *testing.T) {
	c := server.Config{Port: "9090"}
	assert.Equal(t, ":9090", c.Address())
}
