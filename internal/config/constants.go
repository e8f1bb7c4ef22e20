package config

const (
	DefaultContentPath = "content"
	DefaultProfilePath = "storage/profile"
	DefaultLogPath     = "storage/logs"
	DefaultDbPath      = "storage/xhs.db"
)
