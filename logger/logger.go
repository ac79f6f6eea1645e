package logger

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/tomasen/realip"
	"gopkg.in/natefinch/lumberjack.v2"
)

type (
	Logger = zerolog.Logger
)

// PkgLogger is the logger each package keeps in a package-level
// variable.
type PkgLogger struct {
	Logger
}

const EnvPrefixDefault = "LOG"

func newRollingFile(config Config) io.WriteCloser {
	filena := config.Filename
	if filena == "" {
		filena = "blobstore.log"
	}
	if err := os.MkdirAll(config.Directory, 0744); err != nil {
		return nil
	}

	return &lumberjack.Logger{
		Filename:   filepath.Join(config.Directory, filena),
		MaxBackups: config.MaxBackups, // files
		MaxSize:    config.MaxSize,    // megabytes
		MaxAge:     config.MaxAge,     // days
	}
}

func newWriter(config Config) (out io.Writer, closer io.Closer) {
	var console io.Writer = os.Stderr
	if config.Pretty {
		console = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	out = console
	if config.FileLogging {
		if file := newRollingFile(config); file != nil {
			out = zerolog.MultiLevelWriter(console, file)
			closer = file
		}
	}
	return out, closer
}

func parseLevel(levelStr string) zerolog.Level {
	if levelStr != "" {
		if level, err := zerolog.ParseLevel(levelStr); err == nil {
			return level
		}
	}
	return zerolog.InfoLevel
}

// New builds a logger from an explicit configuration.
func New(config Config) Logger {
	out, _ := newWriter(config)
	return zerolog.New(out).Level(parseLevel(config.Level))
}

// pkgWriter is the output shared by every package logger. Its writer
// and level can be swapped while the loggers are in use.
type pkgWriter struct {
	mu     sync.RWMutex
	out    zerolog.LevelWriter
	closer io.Closer
	level  zerolog.Level
}

var pkgOutput = &pkgWriter{
	out:   zerolog.MultiLevelWriter(os.Stderr),
	level: zerolog.InfoLevel,
}

func init() {
	cfg, err := ConfigFromEnv()
	if err != nil {
		cfg = Config{Level: zerolog.InfoLevel.String()}
	}
	ConfigurePkgLoggers(cfg)
}

func (w *pkgWriter) Write(p []byte) (int, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.out.Write(p)
}

func (w *pkgWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if level < w.level {
		return len(p), nil
	}
	return w.out.WriteLevel(level, p)
}

// ConfigurePkgLoggers applies config to every logger made by
// NewPkgLogger, including the ones created before this call.
func ConfigurePkgLoggers(config Config) {
	out, closer := newWriter(config)

	pkgOutput.mu.Lock()
	prevCloser := pkgOutput.closer
	pkgOutput.out = zerolog.MultiLevelWriter(out)
	pkgOutput.closer = closer
	pkgOutput.level = parseLevel(config.Level)
	pkgOutput.mu.Unlock()

	if prevCloser != nil {
		_ = prevCloser.Close()
	}
}

// NewPkgLogger creates a logger writing to the shared package output,
// configured from the LOG_ environment variables and later by
// ConfigurePkgLoggers.
func NewPkgLogger() PkgLogger {
	logCtx := zerolog.New(pkgOutput).With().Timestamp().CallerWithSkipFrameCount(2)
	return PkgLogger{logCtx.Logger()}
}

// WithRequest returns a logger carrying the request's method, URL,
// client address and user agent.
func (logger PkgLogger) WithRequest(req *http.Request) *Logger {
	if req == nil {
		return &logger.Logger
	}

	var urlStr string
	if req.URL != nil {
		urlStr = req.URL.String()
	}
	remoteAddr := realip.FromRequest(req)
	if remoteAddr == "" {
		remoteAddr = req.RemoteAddr
	}
	l := logger.With().
		Str("method", req.Method).
		Str("url", urlStr).
		Str("remote_ip", remoteAddr).
		Str("user_agent", req.UserAgent()).
		Logger()

	return &l
}
