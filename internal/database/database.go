package database

import (
	"fmt"
	"time"

	"github.com/asevenm/xhs-anime-ip/internal/types"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PublishRecord 发布历史记录
type PublishRecord struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	Date        string              `gorm:"index" json:"date"` // 内容日期，2006-01-02
	Title       string              `json:"title"`
	Status      types.PublishStatus `gorm:"index" json:"status"`
	Diagnostics string              `json:"diagnostics"`
	Uploaded    int                 `json:"uploaded"` // 上传成功图片数
	Failed      int                 `json:"failed"`   // 上传失败图片数
	CreatedAt   time.Time           `json:"createdAt"`
}

func Init(dbPath string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("打开数据库失败: %w", err)
	}

	if err := db.AutoMigrate(&PublishRecord{}); err != nil {
		return nil, fmt.Errorf("迁移数据库失败: %w", err)
	}

	return db, nil
}

// RecordPublish 保存一次发布运行的结果
func RecordPublish(db *gorm.DB, date, title string, result *types.PublishResult) error {
	record := &PublishRecord{
		Date:        date,
		Title:       title,
		Status:      result.Status,
		Diagnostics: result.Diagnostics,
		Uploaded:    result.UploadedCount(),
		Failed:      result.FailedCount(),
	}
	if err := db.Create(record).Error; err != nil {
		return fmt.Errorf("保存发布记录失败: %w", err)
	}
	return nil
}

// HasPublished 查询指定日期是否已有成功（或部分成功）的发布记录
func HasPublished(db *gorm.DB, date string) (bool, error) {
	var count int64
	err := db.Model(&PublishRecord{}).
		Where("date = ? AND status IN ?", date, []types.PublishStatus{
			types.PublishStatusSuccess,
			types.PublishStatusPartialFailure,
		}).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// RecentRecords 返回最近的发布记录
func RecentRecords(db *gorm.DB, limit int) ([]PublishRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var records []PublishRecord
	err := db.Order("created_at DESC").Limit(limit).Find(&records).Error
	return records, err
}
