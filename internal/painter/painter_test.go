package painter

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/asevenm/xhs-anime-ip/internal/store"
	"github.com/asevenm/xhs-anime-ip/internal/types"
)

func newTestPainter(t *testing.T) (*Painter, *store.Store) {
	t.Helper()
	s, err := store.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("创建store失败: %v", err)
	}
	t.Setenv("IMAGE_API_KEY", "")
	t.Setenv("IMAGE_API_URL", "")
	return NewPainter(s), s
}

func TestSimulationMode(t *testing.T) {
	t.Run("no_key", func(t *testing.T) {
		p, _ := newTestPainter(t)
		if !p.simulationMode() {
			t.Error("未配置API Key应进入模拟模式")
		}
	})

	t.Run("example_url", func(t *testing.T) {
		s, _ := store.NewStore(t.TempDir())
		t.Setenv("IMAGE_API_KEY", "k")
		t.Setenv("IMAGE_API_URL", "https://api.nano-banana.example.com/generate")
		if !NewPainter(s).simulationMode() {
			t.Error("占位URL应进入模拟模式")
		}
	})

	t.Run("real_config", func(t *testing.T) {
		s, _ := store.NewStore(t.TempDir())
		t.Setenv("IMAGE_API_KEY", "k")
		t.Setenv("IMAGE_API_URL", "https://image.example.org/v1/generate")
		if NewPainter(s).simulationMode() {
			t.Error("配置完整时不应进入模拟模式")
		}
	})
}

func TestWritePlaceholder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "1.png")
	if err := writePlaceholder(path, 1); err != nil {
		t.Fatalf("生成占位图失败: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("打开占位图失败: %v", err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("占位图应是合法PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != imageWidth || bounds.Dy() != imageHeight {
		t.Errorf("占位图尺寸应为%dx%d，实际%dx%d", imageWidth, imageHeight, bounds.Dx(), bounds.Dy())
	}
}

func TestPaintAllSimulation(t *testing.T) {
	p, s := newTestPainter(t)

	content := &types.DailyContent{
		Date:         "2026-08-30",
		Title:        "t",
		ImagePrompts: []string{"p1", "p2", "p3"},
	}
	if err := s.SaveMeta(content); err != nil {
		t.Fatal(err)
	}

	if err := p.PaintAll(context.Background(), content); err != nil {
		t.Fatalf("模拟模式生成失败: %v", err)
	}

	images := s.Images("2026-08-30")
	if len(images) != 3 {
		t.Fatalf("期望3张图片，实际%d张", len(images))
	}

	// 已存在的图片应跳过而非覆盖
	info, _ := os.Stat(images[0])
	before := info.ModTime()
	if err := p.PaintAll(context.Background(), content); err != nil {
		t.Fatalf("二次生成失败: %v", err)
	}
	info, _ = os.Stat(images[0])
	if !info.ModTime().Equal(before) {
		t.Error("已存在的图片不应被重新生成")
	}
}
