package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

const (
	timestampFormat = "02/01/2006 15:04:05"
	spacer          = " | "

	infoHeader  = "[INFO]"
	warnHeader  = "[WARN]"
	debugHeader = "[DEBUG]"
	errorHeader = "[ERROR]"
)

var (
	subLoggers = map[string]*SubLogger{}

	// Global is the catch-all sublogger for anything without a dedicated
	// subsystem
	Global        *SubLogger
	BackTester    *SubLogger
	OrderBookMgr  *SubLogger
	PortfolioMgr  *SubLogger
	StrategyMgr   *SubLogger
	StatisticsMgr *SubLogger
	DataMgr       *SubLogger

	mu = &sync.RWMutex{}
)

// Levels flags for each sub logger type
type Levels struct {
	Info, Debug, Warn, Error bool
}

// SubLogger defines a logger for a subsystem with independent level flags
// and output
type SubLogger struct {
	name   string
	levels Levels
	output io.Writer
}

func init() {
	Global = NewSubLogger("LOG")
	BackTester = NewSubLogger("BACKTESTER")
	OrderBookMgr = NewSubLogger("ORDERBOOK")
	PortfolioMgr = NewSubLogger("PORTFOLIO")
	StrategyMgr = NewSubLogger("STRATEGY")
	StatisticsMgr = NewSubLogger("STATISTICS")
	DataMgr = NewSubLogger("DATA")
}

// NewSubLogger registers a new sub logger with default levels writing to
// stdout; registering the same name twice returns the existing instance
func NewSubLogger(name string) *SubLogger {
	mu.Lock()
	defer mu.Unlock()
	if sl, ok := subLoggers[name]; ok {
		return sl
	}
	sl := &SubLogger{
		name:   name,
		levels: splitLevel("INFO|WARN|ERROR"),
		output: os.Stdout,
	}
	subLoggers[name] = sl
	return sl
}

// SetLevel sets sub logger levels from a pipe delimited string
// eg "INFO|WARN|DEBUG|ERROR"
func (sl *SubLogger) SetLevel(levels string) {
	mu.Lock()
	defer mu.Unlock()
	sl.levels = splitLevel(levels)
}

// SetOutput redirects the sub logger to the supplied writer
func (sl *SubLogger) SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	sl.output = w
}

// SetGlobalOutput redirects every registered sub logger to the supplied
// writer
func SetGlobalOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	for _, sl := range subLoggers {
		sl.output = w
	}
}

// SetGlobalLevel applies a minimum severity to every registered sub
// logger. Accepted levels are DEBUG, INFO, WARN and ERROR
func SetGlobalLevel(level string) error {
	var flags string
	switch strings.ToUpper(level) {
	case "DEBUG":
		flags = "INFO|WARN|DEBUG|ERROR"
	case "INFO":
		flags = "INFO|WARN|ERROR"
	case "WARN":
		flags = "WARN|ERROR"
	case "ERROR":
		flags = "ERROR"
	default:
		return fmt.Errorf("unknown log level %q", level)
	}
	mu.Lock()
	defer mu.Unlock()
	for _, sl := range subLoggers {
		sl.levels = splitLevel(flags)
	}
	return nil
}
