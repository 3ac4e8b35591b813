package log

import (
	"fmt"
	"strings"
	"time"
)

func splitLevel(level string) Levels {
	var l Levels
	enabled := strings.Split(level, "|")
	for x := range enabled {
		switch enabled[x] {
		case "DEBUG":
			l.Debug = true
		case "INFO":
			l.Info = true
		case "WARN":
			l.Warn = true
		case "ERROR":
			l.Error = true
		}
	}
	return l
}

func (sl *SubLogger) stage(header, data string) {
	if sl == nil || sl.output == nil {
		return
	}
	fmt.Fprintf(sl.output, "%s %s%s%s%s%s\n",
		time.Now().Format(timestampFormat),
		header,
		spacer,
		sl.name,
		spacer,
		data)
}

// Info takes a pointer sub logger and writes at info level
func Info(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil || !sl.levels.Info {
		return
	}
	sl.stage(infoHeader, data)
}

// Infoln takes a pointer sub logger and values, writes at info level
func Infoln(sl *SubLogger, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil || !sl.levels.Info {
		return
	}
	sl.stage(infoHeader, strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

// Infof takes a pointer sub logger and format args, writes at info level
func Infof(sl *SubLogger, data string, v ...interface{}) {
	Info(sl, fmt.Sprintf(data, v...))
}

// Debug takes a pointer sub logger and writes at debug level
func Debug(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil || !sl.levels.Debug {
		return
	}
	sl.stage(debugHeader, data)
}

// Debugf takes a pointer sub logger and format args, writes at debug level
func Debugf(sl *SubLogger, data string, v ...interface{}) {
	Debug(sl, fmt.Sprintf(data, v...))
}

// Warn takes a pointer sub logger and writes at warn level
func Warn(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil || !sl.levels.Warn {
		return
	}
	sl.stage(warnHeader, data)
}

// Warnf takes a pointer sub logger and format args, writes at warn level
func Warnf(sl *SubLogger, data string, v ...interface{}) {
	Warn(sl, fmt.Sprintf(data, v...))
}

// Error takes a pointer sub logger and writes at error level
func Error(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil || !sl.levels.Error {
		return
	}
	sl.stage(errorHeader, data)
}

// Errorln takes a pointer sub logger and values, writes at error level
func Errorln(sl *SubLogger, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil || !sl.levels.Error {
		return
	}
	sl.stage(errorHeader, strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

// Errorf takes a pointer sub logger and format args, writes at error level
func Errorf(sl *SubLogger, data string, v ...interface{}) {
	Error(sl, fmt.Sprintf(data, v...))
}
