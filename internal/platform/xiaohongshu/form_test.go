package xiaohongshu

import (
	"strings"
	"testing"
)

func TestTruncateRunes(t *testing.T) {
	t.Run("over_limit_truncated", func(t *testing.T) {
		title := strings.Repeat("A", 30)
		got := truncateRunes(title, 20)
		if got != strings.Repeat("A", 20) {
			t.Errorf("超长标题应截断为前20个字符，实际: %q", got)
		}
	})

	t.Run("chinese_counted_by_rune", func(t *testing.T) {
		title := strings.Repeat("光", 25)
		got := truncateRunes(title, 20)
		if len([]rune(got)) != 20 {
			t.Errorf("按字符截断应得到20个字，实际%d个", len([]rune(got)))
		}
	})

	t.Run("within_limit_unchanged", func(t *testing.T) {
		if got := truncateRunes("晚霞壁纸", 20); got != "晚霞壁纸" {
			t.Errorf("未超限的标题不应改动，实际: %q", got)
		}
	})

	t.Run("exact_limit_unchanged", func(t *testing.T) {
		title := strings.Repeat("x", 20)
		if got := truncateRunes(title, 20); got != title {
			t.Errorf("恰好等于上限不应改动，实际: %q", got)
		}
	})
}

func TestComposeBody(t *testing.T) {
	t.Run("tags_joined_by_single_space", func(t *testing.T) {
		got := composeBody("治愈系天空", []string{"#壁纸", "#新海诚", "#光影"})
		want := "治愈系天空\n\n#壁纸 #新海诚 #光影"
		if got != want {
			t.Errorf("正文拼接错误:\n得到: %q\n期望: %q", got, want)
		}
	})

	t.Run("missing_hash_prefixed", func(t *testing.T) {
		got := composeBody("正文", []string{"壁纸"})
		if !strings.Contains(got, "#壁纸") {
			t.Errorf("无#前缀的标签应补齐，实际: %q", got)
		}
	})

	t.Run("empty_tags_skipped", func(t *testing.T) {
		got := composeBody("正文", []string{"", "  ", "#x"})
		want := "正文\n\n#x"
		if got != want {
			t.Errorf("空标签应跳过，实际: %q", got)
		}
	})

	t.Run("no_tags", func(t *testing.T) {
		if got := composeBody("正文", nil); got != "正文" {
			t.Errorf("无标签时正文不应改动，实际: %q", got)
		}
	})

	t.Run("empty_body", func(t *testing.T) {
		if got := composeBody("", []string{"#x", "#y"}); got != "#x #y" {
			t.Errorf("空正文时应只有标签，实际: %q", got)
		}
	})
}
