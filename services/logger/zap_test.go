package logsvc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/trezcool/mentorhub/core/session"
)

func TestZapLogger(t *testing.T) {
	obs, logs := observer.New(zap.DebugLevel)
	logger := NewZapLoggerFrom(zap.New(obs))

	usr := session.User{UserID: 9, Name: "Ada", Role: session.RoleMentor}
	logger.Error("assigning batch", errors.New("HTTP 500"), map[string]interface{}{"batch": "B"}, usr)
	logger.Info("loaded")

	entries := logs.AllUntimed()
	if assert.Len(t, entries, 2) {
		ctx := entries[0].ContextMap()
		assert.Equal(t, "assigning batch", entries[0].Message)
		assert.Equal(t, "HTTP 500", ctx["error"])
		assert.Equal(t, "B", ctx["batch"])
		assert.Equal(t, int64(9), ctx["userId"])
		assert.Equal(t, "MENTOR", ctx["role"])
		assert.Empty(t, entries[1].ContextMap())
	}
}
