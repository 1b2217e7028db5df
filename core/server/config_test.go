package server_test

import (
	"testing"

	"refcheck/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_RepairEnabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  server.Config
		want bool
	}{
		{"Secured and allowed", server.Config{ApiKey: "k", AllowRepair: true}, true},
		{"Allowed without key", server.Config{AllowRepair: true}, false},
		{"Secured not allowed", server.Config{ApiKey: "k"}, false},
		{"Empty", server.Config{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.RepairEnabled())
		})
	}
}
