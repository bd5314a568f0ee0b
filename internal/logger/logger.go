// Package logger builds the logrus loggers used by the server and the tools.
package logger

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sanity-io/litter"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config configures a logger.
type Config struct {
	Level string // Defaults to info
	File  string // Rotated log file, disabled when empty
	Quiet bool   // Discard the console output
}

// New returns a new well configured logger.
func New(cfg Config) (*logrus.Logger, error) {
	level := logrus.InfoLevel
	if cfg.Level != "" {
		var err error
		if level, err = logrus.ParseLevel(cfg.Level); err != nil {
			return nil, errors.Wrap(err, "could not parse log level")
		}
	}

	formatter := new(Formatter)

	log := logrus.New()
	log.SetLevel(level)
	log.SetFormatter(formatter)
	log.SetOutput(os.Stdout)
	if cfg.Quiet {
		log.SetOutput(io.Discard)
	}

	if cfg.File != "" {
		log.AddHook(&fileHook{
			rotate: &lumberjack.Logger{
				Filename:   cfg.File,
				MaxSize:    20, // megabytes
				MaxBackups: 2,
				MaxAge:     10, // days
			},
			formatter: formatter,
		})
	}

	return log, nil
}

// Dump logs a deep representation of v at debug level.
func Dump(log logrus.FieldLogger, v any) {
	log.Debug(litter.Sdump(v))
}

////////////////////
//                //
// File hook      //
//                //
////////////////////

type fileHook struct {
	sync.Mutex
	rotate    io.Writer
	formatter logrus.Formatter
}

// Fire writes the formatted entry to the rotated file.
func (hook *fileHook) Fire(entry *logrus.Entry) error {
	hook.Lock()
	defer hook.Unlock()

	msg, err := hook.formatter.Format(entry)
	if err != nil {
		return errors.Wrap(err, "failed to format entry")
	}

	_, err = hook.rotate.Write(msg)
	return err
}

// Levels returns configured log levels.
func (hook *fileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

////////////////////
//                //
// Log formatter  //
//                //
////////////////////

// A Formatter renders entries as `[time] LEVEL: message (key=value, ...)`.
type Formatter struct{}

// Format implements Logrus formatter.
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	fields := ""
	if len(entry.Data) > 0 {
		fs := []string{}
		for _, k := range slices.Sorted(maps.Keys(entry.Data)) {
			fs = append(fs, fmt.Sprintf("%s=%v", k, entry.Data[k]))
		}
		fields = fmt.Sprintf(" (%s)", strings.Join(fs, ", "))
	}

	t := entry.Time
	if t.IsZero() {
		t = time.Now()
	}

	data := fmt.Sprintf("[%s] %+5s: %s%s\n",
		t.Format(time.RFC3339),
		strings.ToUpper(entry.Level.String()),
		entry.Message,
		fields,
	)
	return []byte(data), nil
}
