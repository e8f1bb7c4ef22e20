package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/asevenm/xhs-anime-ip/internal/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("创建store失败: %v", err)
	}
	return s
}

func TestSaveAndLoadMeta(t *testing.T) {
	s := newTestStore(t)

	content := &types.DailyContent{
		Date:         "2026-08-30",
		Theme:        "黄昏的天台",
		Title:        "落日余晖治愈壁纸🌇",
		Content:      "今天的天空也很温柔",
		Tags:         []string{"#壁纸", "#新海诚"},
		ImagePrompts: []string{"p1", "p2"},
	}

	if err := s.SaveMeta(content); err != nil {
		t.Fatalf("保存meta失败: %v", err)
	}

	loaded, err := s.LoadMeta("2026-08-30")
	if err != nil {
		t.Fatalf("读取meta失败: %v", err)
	}
	if loaded.Title != content.Title {
		t.Errorf("标题不一致: %q != %q", loaded.Title, content.Title)
	}
	if len(loaded.Tags) != 2 || loaded.Tags[0] != "#壁纸" {
		t.Errorf("标签不一致: %v", loaded.Tags)
	}

	// 中文不应被转义
	raw, err := os.ReadFile(filepath.Join(s.WorkDir("2026-08-30"), MetaFileName))
	if err != nil {
		t.Fatalf("读取meta文件失败: %v", err)
	}
	if !strings.Contains(string(raw), "黄昏的天台") {
		t.Error("meta.json中的中文应保持原样")
	}
}

func TestSaveMetaWithoutDate(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveMeta(&types.DailyContent{Title: "x"}); err == nil {
		t.Error("缺少日期应报错")
	}
}

func TestLatestDate(t *testing.T) {
	s := newTestStore(t)

	t.Run("empty", func(t *testing.T) {
		latest, err := s.LatestDate()
		if err != nil {
			t.Fatalf("查询最新日期失败: %v", err)
		}
		if latest != "" {
			t.Errorf("空目录应返回空字符串，实际: %q", latest)
		}
	})

	t.Run("ordered", func(t *testing.T) {
		for _, d := range []string{"2026-08-28", "2026-08-30", "2026-08-29"} {
			if err := s.SaveMeta(&types.DailyContent{Date: d, Title: "t"}); err != nil {
				t.Fatalf("保存meta失败: %v", err)
			}
		}
		// 非日期目录应被忽略
		if err := os.Mkdir(filepath.Join(s.root, "tmp"), 0755); err != nil {
			t.Fatal(err)
		}

		latest, err := s.LatestDate()
		if err != nil {
			t.Fatalf("查询最新日期失败: %v", err)
		}
		if latest != "2026-08-30" {
			t.Errorf("期望最新日期2026-08-30，实际: %q", latest)
		}
	})
}

func TestImages(t *testing.T) {
	s := newTestStore(t)
	date := "2026-08-30"
	if err := s.SaveMeta(&types.DailyContent{Date: date, Title: "t"}); err != nil {
		t.Fatal(err)
	}

	// 只有1、3存在，2缺失
	for _, n := range []int{1, 3} {
		if err := os.WriteFile(s.ImagePath(date, n), []byte("png"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	images := s.Images(date)
	if len(images) != 2 {
		t.Fatalf("期望2张图片，实际%d张: %v", len(images), images)
	}
	if filepath.Base(images[0]) != "1.png" || filepath.Base(images[1]) != "3.png" {
		t.Errorf("图片应按序号顺序返回，实际: %v", images)
	}
}
