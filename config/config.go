package config

import "strconv"

const (
	DefaultFilename      = "folio"
	DefaultFileExtension = "yaml"
	EnvPrefix            = "FOLIO"
)

// BuildVersion is injected at build time with -ldflags
var BuildVersion = "dev"

type Version int

func (v Version) String() string {
	return strconv.Itoa(int(v))
}

type LogLevel string

const (
	LogLevelDebug   LogLevel = "DEBUG"
	LogLevelInfo    LogLevel = "INFO"
	LogLevelWarning LogLevel = "WARNING"
	LogLevelError   LogLevel = "ERROR"
	LogLevelFatal   LogLevel = "FATAL"
)

func (l LogLevel) String() string {
	return string(l)
}

type LogConfig struct {
	Level  LogLevel `default:"INFO"       mapstructure:"level"`
	Format string   `mapstructure:"format"`
}
