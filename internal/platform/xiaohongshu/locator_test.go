package xiaohongshu

import (
	"testing"
	"time"
)

func TestFirstMatch(t *testing.T) {
	t.Run("first_hit_wins", func(t *testing.T) {
		candidates := []string{"a", "b", "c"}
		idx, ok := firstMatch(candidates, func(sel string) bool {
			return sel == "b" || sel == "c"
		})
		if !ok {
			t.Fatal("期望命中候选，实际未命中")
		}
		if idx != 1 {
			t.Errorf("期望命中下标1，实际为%d", idx)
		}
	})

	t.Run("later_candidates_not_evaluated", func(t *testing.T) {
		candidates := []string{"a", "b", "c"}
		var evaluated []string
		idx, ok := firstMatch(candidates, func(sel string) bool {
			evaluated = append(evaluated, sel)
			return sel == "b"
		})
		if !ok || idx != 1 {
			t.Fatalf("期望命中下标1，实际 idx=%d ok=%v", idx, ok)
		}
		if len(evaluated) != 2 {
			t.Errorf("命中后不应继续评估后续候选，实际评估了%v", evaluated)
		}
	})

	t.Run("declared_order_respected", func(t *testing.T) {
		candidates := []string{"a", "b"}
		idx, ok := firstMatch(candidates, func(sel string) bool { return true })
		if !ok || idx != 0 {
			t.Errorf("全部命中时应返回声明顺序中的第一个，实际 idx=%d ok=%v", idx, ok)
		}
	})

	t.Run("no_match", func(t *testing.T) {
		if idx, ok := firstMatch([]string{"a"}, func(string) bool { return false }); ok {
			t.Errorf("全部落空应返回ok=false，实际 idx=%d", idx)
		}
	})

	t.Run("empty_candidates", func(t *testing.T) {
		if _, ok := firstMatch(nil, func(string) bool { return true }); ok {
			t.Error("空候选列表应返回ok=false")
		}
	})
}

func TestPollUntil(t *testing.T) {
	t.Run("immediate_hit", func(t *testing.T) {
		calls := 0
		ok := pollUntil(100*time.Millisecond, time.Millisecond, func() bool {
			calls++
			return true
		})
		if !ok {
			t.Fatal("条件立即成立应返回true")
		}
		if calls != 1 {
			t.Errorf("立即命中只应评估1次，实际%d次", calls)
		}
	})

	t.Run("eventual_hit", func(t *testing.T) {
		calls := 0
		ok := pollUntil(time.Second, time.Millisecond, func() bool {
			calls++
			return calls >= 3
		})
		if !ok {
			t.Fatal("限时内成立的条件应返回true")
		}
		if calls != 3 {
			t.Errorf("期望评估3次，实际%d次", calls)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		if pollUntil(10*time.Millisecond, time.Millisecond, func() bool { return false }) {
			t.Error("超时应返回false")
		}
	})

	t.Run("zero_timeout_evaluates_once", func(t *testing.T) {
		calls := 0
		pollUntil(0, time.Millisecond, func() bool {
			calls++
			return false
		})
		if calls != 1 {
			t.Errorf("零超时也应评估1次，实际%d次", calls)
		}
	})
}

func TestLocatorsComplete(t *testing.T) {
	roles := []Role{
		RoleLoginWall,
		RoleImageUploadInput,
		RoleTitleField,
		RoleBodyField,
		RoleSubmitButton,
		RoleChallengeSlider,
		RoleSuccessIndicator,
	}

	for _, role := range roles {
		t.Run(string(role), func(t *testing.T) {
			if len(Locators.Candidates[role]) == 0 {
				t.Errorf("角色 %s 缺少候选选择器", role)
			}
		})
	}

	if Locators.ComposerURL == "" || Locators.SuccessURLPattern == "" {
		t.Error("发布页URL与成功路由配置不能为空")
	}
}
