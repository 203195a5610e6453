// Package cli holds the logic behind the photosphere commands so that it
// can be exercised without a process boundary.
package cli

import (
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/photosphere/internal/logging"
	"github.com/aretw0/photosphere/pkg/adapters/memory"
	"github.com/aretw0/photosphere/pkg/adapters/redis"
	"github.com/aretw0/photosphere/pkg/ports"
)

// GlobalOptions are the persistent flags shared by every command.
type GlobalOptions struct {
	LogLevel  string
	LogFormat string
	// RedisAddr selects the Redis atom data cache; empty keeps an in-process cache.
	RedisAddr string
	CacheTTL  time.Duration
}

// Logger builds the slog logger described by the options, writing to w.
func (o GlobalOptions) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := logging.ParseLevel(defaultString(o.LogLevel, "info"))
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(defaultString(o.LogFormat, string(logging.FormatText)))
	if err != nil {
		return nil, err
	}
	return logging.NewWithWriter(w, level, format), nil
}

// Cache opens the atom data cache. The returned func releases it.
func (o GlobalOptions) Cache() (ports.AtomDataCache, func() error) {
	if o.RedisAddr == "" {
		return memory.NewCache(memory.WithTTL(o.CacheTTL)), func() error { return nil }
	}
	c := redis.New(o.RedisAddr, redis.WithTTL(o.CacheTTL))
	return c, c.Close
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
