// Package scheduler 定时驱动每日发布流水线
package scheduler

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/asevenm/xhs-anime-ip/internal/app"
	"github.com/asevenm/xhs-anime-ip/internal/utils"
)

const defaultRunAt = "09:00"

type Scheduler struct {
	app      *app.App
	runAt    string // 每日执行时刻，格式 15:04
	stopChan chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool
}

func New(a *app.App) *Scheduler {
	runAt := os.Getenv("XHS_SCHEDULE_TIME")
	if _, err := time.Parse("15:04", runAt); err != nil {
		runAt = defaultRunAt
	}
	return &Scheduler{
		app:      a,
		runAt:    runAt,
		stopChan: make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.loop()

	utils.Info(fmt.Sprintf("[+] 调度器已启动，每日执行时刻: %s", s.runAt))
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopChan)
	s.wg.Wait()

	utils.Info("[+] 调度器已停止")
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case now := <-ticker.C:
			if now.Format("15:04") != s.runAt {
				continue
			}
			// RunOnce内部按日期去重，同一分钟内多次触发无害
			if err := s.app.RunOnce(context.Background()); err != nil {
				utils.Error(fmt.Sprintf("失败: 定时流水线 - %v", err))
			}
		}
	}
}
