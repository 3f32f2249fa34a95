package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{in: "09:00", want: 540},
		{in: "17:30", want: 1050},
		{in: "00:00", want: 0},
		{in: "24:00", want: 1440},
		{in: "24:30", wantErr: true},
		{in: "9:00", wantErr: true},
		{in: "09:60", wantErr: true},
		{in: "ab:cd", wantErr: true},
		{in: "", wantErr: true},
		{in: "+9:30", wantErr: true},
		{in: "-0:00", wantErr: true},
		{in: "09:+0", wantErr: true},
		{in: "09:-5", wantErr: true},
		{in: " 9:30", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestClockOnGrid(t *testing.T) {
	assert.True(t, NewClock(9, 0).OnGrid())
	assert.True(t, NewClock(9, 30).OnGrid())
	assert.False(t, NewClock(9, 15).OnGrid())
	assert.False(t, Clock(-30).OnGrid())
}

func TestClockJSON(t *testing.T) {
	data, err := json.Marshal(NewClock(10, 30))
	require.NoError(t, err)
	assert.JSONEq(t, `"10:30"`, string(data))

	var c Clock
	require.NoError(t, json.Unmarshal([]byte(`"14:00"`), &c))
	assert.Equal(t, NewClock(14, 0), c)

	assert.Error(t, json.Unmarshal([]byte(`840`), &c))
}
