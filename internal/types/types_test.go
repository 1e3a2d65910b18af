package types

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFrameRate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    FrameRate
		wantFPS float64
		wantErr bool
	}{
		{name: "integer rational", in: "25/1", want: FrameRate{25, 1}, wantFPS: 25},
		{name: "ntsc", in: "30000/1001", want: FrameRate{30000, 1001}, wantFPS: 29.97002997},
		{name: "plain integer", in: "24", want: FrameRate{24000, 1000}, wantFPS: 24},
		{name: "plain decimal", in: " 29.97 ", want: FrameRate{29970, 1000}, wantFPS: 29.97},
		{name: "zero", in: "0/0", wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{name: "garbage", in: "fast", wantErr: true},
		{name: "bad denominator", in: "25/x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFrameRate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.InDelta(t, tt.wantFPS, got.FPS(), 1e-6)
		})
	}
}

func TestFrameRateString(t *testing.T) {
	assert.Equal(t, "25", FrameRate{25, 1}.String())
	assert.Equal(t, "30000/1001", FrameRate{30000, 1001}.String())
	assert.Zero(t, FrameRate{}.FPS())
}

func TestFrameName(t *testing.T) {
	assert.Equal(t, "frame_0000.jpg", FrameName(0))
	assert.Equal(t, "frame_0042.jpg", FrameName(42))
	assert.Equal(t, "frame_12345.jpg", FrameName(12345))
	assert.Equal(t, filepath.Join("frames", "frame_0007.jpg"), FramePath("frames", 7))
}
