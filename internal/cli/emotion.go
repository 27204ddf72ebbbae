package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/textprobe/internal/emotion"
	"github.com/ppiankov/textprobe/internal/model"
	"github.com/ppiankov/textprobe/internal/pipeline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	emotionLabel      string
	emotionConfidence float64
	emotionImage      string
	emotionContext    []string
)

// emotionCmd represents the emotion command
var emotionCmd = &cobra.Command{
	Use:   "emotion",
	Short: "Reinterpret a detected facial emotion using the scene context",
	Long: `Emotion adjusts a facial emotion reading using where it was captured.

Context comes from --context labels (office, nature, party) or is detected
from --image by average colour: a blue-dominated scene reads as office, a
green-dominated one as nature.

Rules, first match wins:
  office + sad      -> focused  (+10)
  party  + angry    -> excited  (+5)
  nature + neutral  -> pensive  (+8)
Confidence never exceeds 95.

Example:
  textprobe emotion --emotion sad --confidence 70 --context office
  textprobe emotion --emotion neutral --confidence 60 --image photo.jpg`,
	Args: cobra.NoArgs,
	RunE: runEmotion,
}

func init() {
	rootCmd.AddCommand(emotionCmd)

	emotionCmd.Flags().StringVar(&emotionLabel, "emotion", "", "detected facial emotion (required)")
	emotionCmd.Flags().Float64Var(&emotionConfidence, "confidence", 50, "detection confidence (0-100)")
	emotionCmd.Flags().StringVar(&emotionImage, "image", "", "PNG or JPEG image to detect context from")
	emotionCmd.Flags().StringSliceVar(&emotionContext, "context", nil, "context labels (comma-separated)")
	emotionCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	_ = emotionCmd.MarkFlagRequired("emotion")
}

func runEmotion(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if strings.TrimSpace(emotionLabel) == "" {
		return fmt.Errorf("--emotion is required")
	}
	if emotionConfidence < 0 || emotionConfidence > 100 {
		return fmt.Errorf("--confidence must be between 0 and 100")
	}

	labels := append([]string(nil), emotionContext...)
	if emotionImage != "" {
		detected, err := detectImageContext(emotionImage)
		if err != nil {
			return err
		}
		logger.Debug("image context detected", zap.String("image", emotionImage), zap.Strings("context", detected))
		for _, label := range detected {
			if label != model.ContextUndefined {
				labels = append(labels, label)
			}
		}
	}
	if len(labels) == 0 {
		labels = []string{model.ContextUndefined}
	}

	adj := emotion.Adjust(emotionLabel, emotionConfidence, labels)

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(adj, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
	}
	renderer.RenderEmotion(&adj)
	return nil
}

func detectImageContext(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := emotion.Decode(f)
	if err != nil {
		return nil, err
	}
	return emotion.DetectContext(img), nil
}
