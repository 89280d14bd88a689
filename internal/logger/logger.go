package logger

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Leveled logger for the GoalGorithm MCP server.
// When serving MCP over stdio, stdout carries JSON-RPC traffic, so every
// sink here writes to stderr or to a file - never to stdout.

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorOrange = "\033[38;5;208m"
)

var (
	defaultLogger *Logger
	showDateTime  bool
	logFile       *os.File
)

type Logger struct {
	out   *log.Logger
	level LogLevel
}

func init() {
	defaultLogger = NewLogger(INFO)
	showDateTime = false
}

func NewLogger(level LogLevel) *Logger {
	return &Logger{
		out:   log.New(os.Stderr, "", flags()),
		level: level,
	}
}

func flags() int {
	if showDateTime {
		return log.Ldate | log.Ltime
	}
	return 0
}

func SetShowDateTime(value bool) {
	showDateTime = value
	defaultLogger.out.SetFlags(flags())
}

func SetLevel(level LogLevel) {
	defaultLogger.level = level
}

// SetLogFile redirects all output to the given file, appending.
// Used when serving over stdio so logs survive without touching the pipe.
func SetLogFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	defaultLogger.out = log.New(f, "", flags())
	return nil
}

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

func (l *Logger) log(level LogLevel, msg string, v ...any) {
	if level < l.level {
		return
	}

	_, file, line, ok := runtime.Caller(2)
	if !ok {
		file = "unknown"
		line = 0
	}
	file = filepath.Base(file)

	if len(v) > 0 {
		msg = msg + " " + formatArgs(v...)
	}

	var colorCode string
	switch level {
	case DEBUG:
		colorCode = colorBlue
	case INFO:
		colorCode = colorGreen
	case WARN:
		colorCode = colorYellow
	case ERROR:
		colorCode = colorOrange
	case FATAL:
		colorCode = colorRed
	default:
		colorCode = colorReset
	}

	l.out.Printf("[%s] %s:%d: %s%s%s", level.String(), file, line, colorCode, msg, colorReset)
}

// formatArgs renders trailing arguments; structs and maps become JSON so
// payloads stay readable in the log.
func formatArgs(args ...any) string {
	var parts []string
	for _, arg := range args {
		switch v := arg.(type) {
		case string:
			parts = append(parts, v)
		case error:
			parts = append(parts, v.Error())
		case float32:
			parts = append(parts, fmt.Sprintf("%.3f", v))
		case float64:
			parts = append(parts, fmt.Sprintf("%.3f", v))
		case int:
			parts = append(parts, fmt.Sprintf("%d", v))
		case bool:
			parts = append(parts, fmt.Sprintf("%v", v))
		case nil:
			parts = append(parts, "nil")
		default:
			if b, err := json.Marshal(arg); err == nil {
				parts = append(parts, string(b))
			} else {
				parts = append(parts, fmt.Sprintf("%v", arg))
			}
		}
	}
	return strings.Join(parts, " ")
}

func Debug(msg string, v ...any) {
	defaultLogger.log(DEBUG, msg, v...)
}

func Info(msg string, v ...any) {
	defaultLogger.log(INFO, msg, v...)
}

func Warn(msg string, v ...any) {
	defaultLogger.log(WARN, msg, v...)
}

func Error(msg string, v ...any) {
	defaultLogger.log(ERROR, msg, v...)
}

func Fatal(msg string, v ...any) {
	defaultLogger.log(FATAL, msg, v...)
	os.Exit(1)
}
