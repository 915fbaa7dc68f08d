package audit

import (
	"context"
	"testing"

	"github.com/kasuganosora/fe8rguide/model"
	"github.com/kasuganosora/fe8rguide/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_BufferedUntilFlush(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := New(db, "trace-123", 10, testutil.Logger())
	ctx := context.Background()

	require.NoError(t, svc.Log(ctx, Entry{Stage: "units", Reason: "dangling_support", Subject: "Colm", Target: "Ghost"}))

	var count int64
	db.Model(&model.RefreshSkip{}).Count(&count)
	assert.Equal(t, int64(0), count)

	require.NoError(t, svc.Flush(ctx))

	var skips []model.RefreshSkip
	db.Find(&skips)
	require.Len(t, skips, 1)
	assert.Equal(t, "trace-123", skips[0].TraceID)
	assert.Equal(t, "units", skips[0].Stage)
	assert.Equal(t, "dangling_support", skips[0].Reason)
	assert.Equal(t, "Colm", skips[0].Subject)
	assert.Equal(t, "Ghost", skips[0].Target)
}

func TestLog_BatchFlush(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := New(db, "t", 0, testutil.Logger())
	ctx := context.Background()

	// Reaching the default batch size writes immediately
	for i := 0; i < DefaultBatchSize; i++ {
		require.NoError(t, svc.Log(ctx, Entry{Stage: "items", Reason: "batch"}))
	}
	assert.Equal(t, DefaultBatchSize, svc.Written())

	require.NoError(t, svc.Log(ctx, Entry{Stage: "items", Reason: "batch"}))
	require.NoError(t, svc.Flush(ctx))

	var count int64
	db.Model(&model.RefreshSkip{}).Count(&count)
	assert.Equal(t, int64(DefaultBatchSize+1), count)
}

func TestFlush_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := New(db, "t", 5, testutil.Logger())
	assert.NoError(t, svc.Flush(context.Background()))
	assert.Zero(t, svc.Written())
}
