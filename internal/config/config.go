package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	ContentPath string // 内容目录（content/<date>/meta.json + 图片）
	ProfilePath string // 浏览器用户数据目录（持久化登录态）
	LogPath     string // 日志目录
	DbPath      string // 发布历史数据库文件
	DebugMode   bool   // 调试模式开关
	Headless    bool   // 浏览器无头模式开关（true=隐藏浏览器窗口，默认显示以便人工登录）
	AutoConfirm bool   // 发布未确认成功时是否仍然关闭浏览器（false=留给人工处理）
}

var Config *AppConfig

func Init() error {
	// .env 不存在时忽略，环境变量可直接提供
	_ = godotenv.Load()

	baseDir := os.Getenv("XHS_DATA_DIR")
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		baseDir = wd
	}

	Config = &AppConfig{
		ContentPath: filepath.Join(baseDir, DefaultContentPath),
		ProfilePath: filepath.Join(baseDir, DefaultProfilePath),
		LogPath:     filepath.Join(baseDir, DefaultLogPath),
		DbPath:      filepath.Join(baseDir, DefaultDbPath),
		DebugMode:   os.Getenv("XHS_DEBUG") == "true",
		Headless:    os.Getenv("XHS_HEADLESS") == "true",
		AutoConfirm: os.Getenv("XHS_AUTO_CONFIRM") != "false",
	}

	dirs := []string{
		Config.ContentPath,
		Config.ProfilePath,
		Config.LogPath,
		filepath.Dir(Config.DbPath),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s failed: %w", dir, err)
		}
	}

	return nil
}

func GetDbPath() string {
	return Config.DbPath
}
