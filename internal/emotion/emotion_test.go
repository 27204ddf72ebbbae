package emotion

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/ppiankov/textprobe/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestDetectContext(t *testing.T) {
	tests := []struct {
		name  string
		color color.RGBA
		want  []string
	}{
		{"blue", color.RGBA{R: 60, G: 60, B: 200, A: 255}, []string{model.ContextOffice}},
		{"blue with green cast", color.RGBA{R: 40, G: 60, B: 200, A: 255}, []string{model.ContextOffice, model.ContextNature}},
		{"green", color.RGBA{R: 40, G: 180, B: 60, A: 255}, []string{model.ContextNature}},
		{"teal", color.RGBA{R: 10, G: 100, B: 200, A: 255}, []string{model.ContextOffice, model.ContextNature}},
		{"grey", color.RGBA{R: 128, G: 128, B: 128, A: 255}, []string{model.ContextUndefined}},
		{"margin is strict", color.RGBA{R: 100, G: 110, B: 120, A: 255}, []string{model.ContextUndefined}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectContext(solid(tt.color)))
		})
	}
}

func TestMeans_MixedPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 0, G: 100, B: 200, A: 255})
	img.Set(1, 0, color.RGBA{R: 100, G: 200, B: 0, A: 255})

	m := Means(img)
	assert.InDelta(t, 50, m.R, 1e-9)
	assert.InDelta(t, 150, m.G, 1e-9)
	assert.InDelta(t, 100, m.B, 1e-9)
}

func TestMeans_EmptyImage(t *testing.T) {
	assert.Equal(t, ChannelMeans{}, Means(image.NewRGBA(image.Rect(0, 0, 0, 0))))
	assert.Equal(t, []string{model.ContextUndefined}, DetectContext(image.NewRGBA(image.Rect(0, 0, 0, 0))))
}

func TestDecode_PNGAndJPEG(t *testing.T) {
	src := solid(color.RGBA{R: 30, G: 170, B: 40, A: 255})

	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, src))
	img, format, err := Decode(&pngBuf)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, []string{model.ContextNature}, DetectContext(img))

	var jpgBuf bytes.Buffer
	require.NoError(t, jpeg.Encode(&jpgBuf, src, &jpeg.Options{Quality: 95}))
	img, format, err = Decode(&jpgBuf)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, []string{model.ContextNature}, DetectContext(img))

	_, _, err = Decode(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}

func TestAdjust_Rules(t *testing.T) {
	tests := []struct {
		name     string
		emotion  string
		conf     float64
		context  []string
		want     string
		wantConf float64
		rule     string
	}{
		{"office sad", "sad", 70, []string{"office"}, "focused", 80, "office_sad_focused"},
		{"party angry", "angry", 60, []string{"party"}, "excited", 65, "party_angry_excited"},
		{"nature neutral", "neutral", 50, []string{"nature"}, "pensive", 58, "nature_neutral_pensive"},
		{"cap", "sad", 90, []string{"office"}, "focused", 95, "office_sad_focused"},
		{"case-insensitive emotion", "Sad", 40, []string{"office"}, "focused", 50, "office_sad_focused"},
		{"no matching context", "sad", 70, []string{"nature"}, "sad", 70, ""},
		{"undefined", "happy", 88, []string{"undefined"}, "happy", 88, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Adjust(tt.emotion, tt.conf, tt.context)
			assert.Equal(t, tt.emotion, got.OriginalEmotion)
			assert.Equal(t, tt.conf, got.OriginalConfidence)
			assert.Equal(t, tt.want, got.AdjustedEmotion)
			assert.Equal(t, tt.wantConf, got.AdjustedConfidence)
			assert.Equal(t, tt.rule, got.Rule)
			assert.Equal(t, tt.context, got.Context)
			if tt.rule == "" {
				assert.Equal(t, UnchangedReason, got.Reason)
			} else {
				assert.NotEqual(t, UnchangedReason, got.Reason)
			}
		})
	}
}

func TestAdjust_FirstRuleWins(t *testing.T) {
	rules := []Rule{
		{Name: "a", Context: "office", Emotion: "sad", Adjusted: "first", Boost: 1},
		{Name: "b", Context: "office", Emotion: "sad", Adjusted: "second", Boost: 2},
	}
	got := AdjustWith(rules, "sad", 10, []string{"office"})
	assert.Equal(t, "first", got.AdjustedEmotion)
	assert.Equal(t, 11.0, got.AdjustedConfidence)
}
