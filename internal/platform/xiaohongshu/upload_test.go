package xiaohongshu

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestUploadSequential(t *testing.T) {
	// 等待间隔归零，循环语义与时序无关
	p := NewPublisherWithConfig(Config{})

	t.Run("results_match_input_order", func(t *testing.T) {
		images := []string{"1.png", "2.png", "3.png"}
		var submitted []string
		results := p.uploadSequential(context.Background(), images, func(path string) error {
			submitted = append(submitted, path)
			return nil
		})

		if len(results) != len(images) {
			t.Fatalf("期望%d条结果，实际%d条", len(images), len(results))
		}
		for i, r := range results {
			if r.Path != images[i] {
				t.Errorf("第%d条结果应对应 %s，实际 %s", i+1, images[i], r.Path)
			}
			if !r.Success {
				t.Errorf("第%d张图片应上传成功", i+1)
			}
		}
		if len(submitted) != len(images) {
			t.Errorf("期望提交%d次，实际%d次", len(images), len(submitted))
		}
	})

	t.Run("mid_failure_recorded_and_continues", func(t *testing.T) {
		images := []string{"1.png", "2.png", "3.png"}
		calls := 0
		results := p.uploadSequential(context.Background(), images, func(path string) error {
			calls++
			if path == "2.png" {
				return errors.New("上传中断")
			}
			return nil
		})

		if calls != 3 {
			t.Fatalf("单张失败不应中断后续提交，期望3次提交，实际%d次", calls)
		}
		if len(results) != 3 {
			t.Fatalf("期望3条结果，实际%d条", len(results))
		}
		if results[0].Success != true || results[2].Success != true {
			t.Error("失败图片前后的图片都应上传成功")
		}
		if results[1].Success {
			t.Error("第2张图片应记录为失败")
		}
		if results[1].Reason == "" {
			t.Error("失败结果应携带原因")
		}
	})

	t.Run("every_input_has_result", func(t *testing.T) {
		var images []string
		for i := 1; i <= 6; i++ {
			images = append(images, fmt.Sprintf("%d.png", i))
		}
		results := p.uploadSequential(context.Background(), images, func(path string) error {
			return errors.New("持续失败")
		})

		if len(results) != len(images) {
			t.Fatalf("全部失败时也应返回%d条结果，实际%d条", len(images), len(results))
		}
		for i, r := range results {
			if r.Path != images[i] {
				t.Errorf("第%d条结果顺序不符: %s", i+1, r.Path)
			}
		}
	})

	t.Run("cancelled_context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		submitted := 0
		results := p.uploadSequential(ctx, []string{"1.png", "2.png"}, func(path string) error {
			submitted++
			return nil
		})

		if submitted != 0 {
			t.Errorf("取消后不应再提交，实际提交%d次", submitted)
		}
		if len(results) != 2 {
			t.Fatalf("取消后仍应逐张记录结果，期望2条，实际%d条", len(results))
		}
		for _, r := range results {
			if r.Success || r.Reason == "" {
				t.Errorf("取消的上传应记录为失败并携带原因: %+v", r)
			}
		}
	})
}

func TestPickImageInput(t *testing.T) {
	tests := []struct {
		name    string
		accepts []string
		want    int
	}{
		{"explicit_image_wins", []string{"video/mp4", "image/png,image/jpeg"}, 1},
		{"extension_hint", []string{".mp4", ".png,.jpg"}, 1},
		{"image_star", []string{"image/*"}, 0},
		{"fallback_unrestricted", []string{"video/*", ""}, 1},
		{"all_video_rejected", []string{"video/mp4", ".mp4,.mov"}, -1},
		{"first_image_among_many", []string{"image/*", "image/png"}, 0},
		{"empty_list", nil, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pickImageInput(tt.accepts); got != tt.want {
				t.Errorf("pickImageInput(%v) = %d, 期望 %d", tt.accepts, got, tt.want)
			}
		})
	}
}

func TestIsVideoOnly(t *testing.T) {
	tests := []struct {
		accept string
		want   bool
	}{
		{"video/mp4", true},
		{"video/*", true},
		{".mp4,.mov", true},
		{"", false},
		{"image/png", false},
		{"video/mp4,image/png", false},
		{".mp4, .png", false},
	}

	for _, tt := range tests {
		t.Run(tt.accept, func(t *testing.T) {
			if got := isVideoOnly(tt.accept); got != tt.want {
				t.Errorf("isVideoOnly(%q) = %v, 期望 %v", tt.accept, got, tt.want)
			}
		})
	}
}
