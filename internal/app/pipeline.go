// Package app 把 策划→绘图→发布 串成一条流水线
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/asevenm/xhs-anime-ip/internal/config"
	"github.com/asevenm/xhs-anime-ip/internal/database"
	"github.com/asevenm/xhs-anime-ip/internal/painter"
	"github.com/asevenm/xhs-anime-ip/internal/planner"
	"github.com/asevenm/xhs-anime-ip/internal/platform/xiaohongshu"
	"github.com/asevenm/xhs-anime-ip/internal/store"
	"github.com/asevenm/xhs-anime-ip/internal/types"
	"github.com/asevenm/xhs-anime-ip/internal/utils"

	"gorm.io/gorm"
)

type App struct {
	Store     *store.Store
	DB        *gorm.DB
	Planner   *planner.Planner
	Painter   *painter.Painter
	Publisher *xiaohongshu.Publisher
}

func New() (*App, error) {
	s, err := store.NewStore(config.Config.ContentPath)
	if err != nil {
		return nil, err
	}

	db, err := database.Init(config.GetDbPath())
	if err != nil {
		return nil, err
	}

	cfg := xiaohongshu.DefaultConfig()
	cfg.AutoConfirm = config.Config.AutoConfirm

	return &App{
		Store:     s,
		DB:        db,
		Planner:   planner.NewPlanner(s),
		Painter:   painter.NewPainter(s),
		Publisher: xiaohongshu.NewPublisherWithConfig(cfg),
	}, nil
}

// Plan 生成当日内容计划
func (a *App) Plan(ctx context.Context) (*types.DailyContent, error) {
	return a.Planner.GenerateDailyPlan(ctx)
}

// Paint 为指定日期的内容计划生成图片；date为空时取最新日期
func (a *App) Paint(ctx context.Context, date string) error {
	date, content, err := a.loadContent(date)
	if err != nil {
		return err
	}
	utils.Info(fmt.Sprintf("[-] 为 %s 生成图片...", date))
	return a.Painter.PaintAll(ctx, content)
}

// Publish 发布指定日期的内容；date为空时取最新日期
// 发布结果无论成败都会写入历史记录
func (a *App) Publish(ctx context.Context, date string) (*types.PublishResult, error) {
	date, content, err := a.loadContent(date)
	if err != nil {
		return nil, err
	}

	images := a.Store.Images(date)
	note := types.NoteFromContent(content, images)

	result := a.Publisher.Publish(ctx, note)

	if err := database.RecordPublish(a.DB, date, content.Title, result); err != nil {
		utils.Warn(fmt.Sprintf("[-] %v", err))
	}
	return result, nil
}

// RunOnce 执行一轮完整流水线：当日无计划则策划，补齐图片，未发布则发布
func (a *App) RunOnce(ctx context.Context) error {
	today := time.Now().Format("2006-01-02")

	published, err := database.HasPublished(a.DB, today)
	if err != nil {
		return fmt.Errorf("失败: 查询发布历史 - %w", err)
	}
	if published {
		utils.Info(fmt.Sprintf("[-] %s 已发布过，跳过", today))
		return nil
	}

	if _, err := a.Store.LoadMeta(today); err != nil {
		if _, err := a.Plan(ctx); err != nil {
			return err
		}
	}

	if err := a.Paint(ctx, today); err != nil {
		utils.Warn(fmt.Sprintf("[-] 部分图片生成失败: %v", err))
	}

	result, err := a.Publish(ctx, today)
	if err != nil {
		return err
	}

	utils.Info(fmt.Sprintf("[-] 发布结果: %s | %s", result.Status, result.Diagnostics))
	if result.Status != types.PublishStatusSuccess && result.Status != types.PublishStatusPartialFailure {
		return fmt.Errorf("失败: 发布 - 状态: %s（%s）", result.Status, result.Diagnostics)
	}
	return nil
}

// loadContent 加载指定日期的内容计划，date为空时回退到最新日期
func (a *App) loadContent(date string) (string, *types.DailyContent, error) {
	if date == "" {
		latest, err := a.Store.LatestDate()
		if err != nil {
			return "", nil, err
		}
		if latest == "" {
			return "", nil, fmt.Errorf("失败: 加载内容 - 没有任何内容，请先执行 plan")
		}
		date = latest
	}

	content, err := a.Store.LoadMeta(date)
	if err != nil {
		return "", nil, err
	}
	return date, content, nil
}
