package log

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// Options configures the process-wide action logger.
type Options struct {
	Level  string
	Format string // json | console
	Output io.Writer
}

var current atomic.Pointer[zerolog.Logger]

func init() {
	zerolog.TimestampFieldName = "ts"
	zerolog.ErrorFieldName = "err"
	zerolog.TimeFieldFormat = time.RFC3339
	Setup(Options{})
}

// Setup replaces the logger. Safe to call while requests are in flight.
func Setup(opts Options) {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if strings.EqualFold(opts.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}
	l := zerolog.New(out).With().Timestamp().Str("service", "adsstore").Logger().Level(ParseLevel(opts.Level))
	current.Store(&l)
}

// SetOutput points the logger at w and returns a func restoring the previous one.
func SetOutput(w io.Writer) (restore func()) {
	prev := current.Load()
	l := prev.Output(w)
	current.Store(&l)
	return func() { current.Store(prev) }
}

func ParseLevel(value string) zerolog.Level {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return zerolog.InfoLevel
	}
	if lvl, err := zerolog.ParseLevel(v); err == nil {
		return lvl
	}
	return zerolog.InfoLevel
}

func write(level zerolog.Level, kind string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	ev := current.Load().WithLevel(level)
	if ev == nil {
		return
	}
	ev = ev.Str("action", action)
	if kind != "" {
		ev = ev.Str("kind", kind)
	}
	if c != nil {
		ev = ev.Str("ip", c.IP()).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode())
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			ev = ev.Str("req_id", rid)
		}
	}
	if err != nil {
		ev = ev.Err(err)
	}
	if len(fields) > 0 {
		ev = ev.Interface("fields", fields)
	}
	ev.Send()
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(zerolog.InfoLevel, "", c, action, nil, fields)
}

func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write(zerolog.InfoLevel, "audit", c, action, nil, fields)
}

func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(zerolog.WarnLevel, "security", c, action, nil, fields)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(zerolog.ErrorLevel, "", c, action, err, fields)
}
