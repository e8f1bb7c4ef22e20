// Package store 管理 content/<date>/ 目录下的内容计划与图片
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/asevenm/xhs-anime-ip/internal/types"
)

const (
	MetaFileName = "meta.json"
	// MaxImages 每篇笔记的图片数上限
	MaxImages = 6
)

var dateDirPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type Store struct {
	root string
}

func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("失败: 初始化内容目录 - %w", err)
	}
	return &Store{root: root}, nil
}

// WorkDir 返回指定日期的内容目录
func (s *Store) WorkDir(date string) string {
	return filepath.Join(s.root, date)
}

// ImagePath 返回指定日期第n张图片的路径（n从1开始）
func (s *Store) ImagePath(date string, n int) string {
	return filepath.Join(s.WorkDir(date), fmt.Sprintf("%d.png", n))
}

// SaveMeta 保存内容计划到 content/<date>/meta.json
func (s *Store) SaveMeta(c *types.DailyContent) error {
	if c.Date == "" {
		return fmt.Errorf("失败: 保存内容计划 - 日期为空")
	}

	dir := s.WorkDir(c.Date)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("失败: 保存内容计划 - 创建目录失败: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("失败: 保存内容计划 - 序列化失败: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, MetaFileName), buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("失败: 保存内容计划 - 写入文件失败: %w", err)
	}
	return nil
}

// LoadMeta 读取 content/<date>/meta.json
func (s *Store) LoadMeta(date string) (*types.DailyContent, error) {
	data, err := os.ReadFile(filepath.Join(s.WorkDir(date), MetaFileName))
	if err != nil {
		return nil, fmt.Errorf("失败: 读取内容计划 - %w", err)
	}

	var c types.DailyContent
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("失败: 读取内容计划 - 解析失败: %w", err)
	}
	return &c, nil
}

// Dates 返回所有日期目录，按日期升序
func (s *Store) Dates() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("失败: 读取内容目录 - %w", err)
	}

	var dates []string
	for _, e := range entries {
		if e.IsDir() && dateDirPattern.MatchString(e.Name()) {
			dates = append(dates, e.Name())
		}
	}
	sort.Strings(dates)
	return dates, nil
}

// LatestDate 返回最新的日期目录；没有任何内容时返回空字符串
func (s *Store) LatestDate() (string, error) {
	dates, err := s.Dates()
	if err != nil {
		return "", err
	}
	if len(dates) == 0 {
		return "", nil
	}
	return dates[len(dates)-1], nil
}

// Images 返回指定日期已存在的图片路径，按 1.png..6.png 顺序
func (s *Store) Images(date string) []string {
	var paths []string
	for i := 1; i <= MaxImages; i++ {
		p := s.ImagePath(date, i)
		if _, err := os.Stat(p); err == nil {
			paths = append(paths, p)
		}
	}
	return paths
}
