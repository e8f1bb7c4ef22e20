package database

import (
	"path/filepath"
	"testing"

	"github.com/asevenm/xhs-anime-ip/internal/types"

	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Init(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("初始化数据库失败: %v", err)
	}
	return db
}

func TestRecordAndQuery(t *testing.T) {
	db := newTestDB(t)

	result := &types.PublishResult{
		Status:      types.PublishStatusSuccess,
		Diagnostics: "发布完成",
		Uploads: []types.UploadResult{
			{Path: "1.png", Success: true},
			{Path: "2.png", Success: true},
		},
	}
	if err := RecordPublish(db, "2026-08-30", "测试标题", result); err != nil {
		t.Fatalf("保存发布记录失败: %v", err)
	}

	records, err := RecentRecords(db, 10)
	if err != nil {
		t.Fatalf("查询发布记录失败: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("期望1条记录，实际%d条", len(records))
	}
	r := records[0]
	if r.Date != "2026-08-30" || r.Title != "测试标题" {
		t.Errorf("记录内容不符: %+v", r)
	}
	if r.Uploaded != 2 || r.Failed != 0 {
		t.Errorf("上传计数不符: uploaded=%d failed=%d", r.Uploaded, r.Failed)
	}
}

func TestHasPublished(t *testing.T) {
	db := newTestDB(t)

	published, err := HasPublished(db, "2026-08-30")
	if err != nil {
		t.Fatal(err)
	}
	if published {
		t.Error("没有记录时不应视为已发布")
	}

	// 失败的记录不算已发布
	_ = RecordPublish(db, "2026-08-30", "t", &types.PublishResult{Status: types.PublishStatusError})
	published, _ = HasPublished(db, "2026-08-30")
	if published {
		t.Error("失败记录不应视为已发布")
	}

	_ = RecordPublish(db, "2026-08-30", "t", &types.PublishResult{Status: types.PublishStatusPartialFailure})
	published, _ = HasPublished(db, "2026-08-30")
	if !published {
		t.Error("部分成功也应视为已发布")
	}

	// 其他日期不受影响
	published, _ = HasPublished(db, "2026-08-31")
	if published {
		t.Error("其他日期不应视为已发布")
	}
}

func TestRecentRecordsLimit(t *testing.T) {
	db := newTestDB(t)

	for i := 0; i < 5; i++ {
		_ = RecordPublish(db, "2026-08-30", "t", &types.PublishResult{Status: types.PublishStatusSuccess})
	}

	records, err := RecentRecords(db, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Errorf("期望3条记录，实际%d条", len(records))
	}
}
