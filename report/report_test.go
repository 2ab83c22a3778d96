package report_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/on-the-ground/effectpipe/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func failure(name string) report.Failure {
	return report.Failure{
		ItemID:     uuid.New(),
		ItemName:   name,
		EffectName: "Resize",
		Err:        errors.New("invalid parameter: boom"),
	}
}

func TestFailure_Message(t *testing.T) {
	assert.Equal(t, "invalid parameter: boom", failure("a").Message())
	assert.Equal(t, "", report.Failure{}.Message())
}

func TestCollector_KeepsArrivalOrder(t *testing.T) {
	c := report.NewCollector()
	ctx := context.Background()
	c.Report(ctx, failure("a"))
	c.Report(ctx, failure("b"))

	got := c.Failures()
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ItemName)
	assert.Equal(t, "b", got[1].ItemName)

	c.Reset()
	assert.Equal(t, 0, c.Len())
}

func TestCollector_ConcurrentReports(t *testing.T) {
	c := report.NewCollector()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Report(context.Background(), failure("x"))
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, c.Len())
}

func TestMulti_FansOut(t *testing.T) {
	a, b := report.NewCollector(), report.NewCollector()
	report.Multi(a, report.Nop, b).Report(context.Background(), failure("x"))
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 1, b.Len())
}

func TestZapReporter_Levels(t *testing.T) {
	tests := []struct {
		level report.Level
		want  zapcore.Level
	}{
		{report.LevelInfo, zapcore.InfoLevel},
		{report.LevelWarn, zapcore.WarnLevel},
		{report.LevelError, zapcore.ErrorLevel},
		{report.LevelDebug, zapcore.DebugLevel},
		{report.Level("bogus"), zapcore.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			zr := report.NewZapReporter(zap.New(core), tt.level)

			f := failure("Image#2")
			zr.Report(context.Background(), f)

			entries := logs.All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.want, entries[0].Level)
			fields := entries[0].ContextMap()
			assert.Equal(t, "Image#2", fields["item_name"])
			assert.Equal(t, "Resize", fields["effect_name"])
			assert.Equal(t, "invalid parameter: boom", fields["error_message"])
			assert.Equal(t, f.ItemID.String(), fields["item_id"])
		})
	}
}

func TestZapReporter_NilLogger(t *testing.T) {
	zr := report.NewZapReporter(nil, report.LevelWarn)
	assert.NotPanics(t, func() {
		zr.Report(context.Background(), failure("a"))
	})
}

func TestZapReporter_Sync(t *testing.T) {
	core, _ := observer.New(zapcore.DebugLevel)
	zr := report.NewZapReporter(zap.New(core), report.LevelWarn)
	assert.NoError(t, zr.Sync())

	assert.NoError(t, report.NewZapReporter(nil, report.LevelWarn).Sync())
}

func TestConsoleReporter_ReportsAndSyncs(t *testing.T) {
	zr := report.NewConsoleReporter()
	require.NotNil(t, zr)
	assert.NotPanics(t, func() {
		zr.Report(context.Background(), failure("Image#2"))
		// stdout may not support fsync
		_ = zr.Sync()
	})
}
