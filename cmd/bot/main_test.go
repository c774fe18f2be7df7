package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type countingSyncer struct {
	bytes.Buffer
	syncs int
}

func (s *countingSyncer) Sync() error {
	s.syncs++
	return nil
}

func newCountingLogger() (*zap.Logger, *countingSyncer) {
	out := &countingSyncer{}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), out, zapcore.DebugLevel)
	return zap.New(core), out
}

func TestFinish(t *testing.T) {
	t.Run("error flushes log and exits with 1", func(t *testing.T) {
		logger, out := newCountingLogger()

		assert.Equal(t, 1, finish(logger, errors.New("webhook failed")))
		assert.Equal(t, 1, out.syncs)
		assert.Contains(t, out.String(), "Bot stopped with error")
		assert.Contains(t, out.String(), "webhook failed")
	})

	t.Run("clean stop", func(t *testing.T) {
		logger, out := newCountingLogger()

		assert.Equal(t, 0, finish(logger, nil))
		assert.Equal(t, 1, out.syncs)
		assert.Contains(t, out.String(), "Bot stopped")
	})
}
