package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rec     Record
		wantErr string
	}{
		{
			name: "valid",
			rec:  Record{SessionID: "s1", Satisfaction: 3},
		},
		{
			name: "valid bounds",
			rec:  Record{SessionID: "s1", Satisfaction: 5, Relevant: true, Comment: "great"},
		},
		{
			name:    "missing session",
			rec:     Record{Satisfaction: 3},
			wantErr: "session_id",
		},
		{
			name:    "satisfaction too low",
			rec:     Record{SessionID: "s1", Satisfaction: 0},
			wantErr: "satisfaction",
		},
		{
			name:    "satisfaction too high",
			rec:     Record{SessionID: "s1", Satisfaction: 6},
			wantErr: "satisfaction",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.rec.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_NilRecord(t *testing.T) {
	t.Parallel()
	var rec *Record
	require.Error(t, rec.Validate())
}

func TestStamp(t *testing.T) {
	t.Parallel()

	rec := Record{SessionID: "s1", Satisfaction: 4}
	rec.Stamp()
	assert.NotZero(t, rec.TSMs)

	fixed := Record{SessionID: "s1", Satisfaction: 4, TSMs: 42}
	fixed.Stamp()
	assert.Equal(t, int64(42), fixed.TSMs, "existing timestamp must be preserved")
}
