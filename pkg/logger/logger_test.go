package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		encoding string
		wantErr  bool
	}{
		{name: "defaults", level: "", encoding: ""},
		{name: "debug console", level: "debug", encoding: "console"},
		{name: "upper case level", level: "WARN", encoding: "json"},
		{name: "bad level", level: "loud", encoding: "json", wantErr: true},
		{name: "bad encoding", level: "info", encoding: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.level, tt.encoding)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, l.Logger)
		})
	}
}

func TestWithContextFields(t *testing.T) {
	ctx := WithContextFields(context.Background(), zap.String("scan_id", "abc"))
	ctx = WithContextFields(ctx, zap.Int("step", 2))

	fields := fieldsFromContext(ctx)
	require.Len(t, fields, 2)
	assert.Equal(t, "scan_id", fields[0].Key)
	assert.Equal(t, "step", fields[1].Key)

	l := NewNop()
	merged := l.withContext(ctx, []zap.Field{zap.String("symbol", "AAPL")})
	assert.Len(t, merged, 3)
	assert.Equal(t, "symbol", merged[2].Key)
}
