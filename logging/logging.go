package logging

import (
	"io"
	"log"
	"os"

	"getaround-api/config"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup routes the standard logger to stdout and, when cfg.File is set, to a
// size-rotated file. The returned writer is meant for gin's access log.
func Setup(cfg config.LogConfig) io.Writer {
	var out io.Writer = os.Stdout
	if cfg.File != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		})
	}

	log.SetOutput(out)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return out
}
