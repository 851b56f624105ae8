package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	once     sync.Once
	instance *zap.Logger
)

// Init configures the process-wide logger. Only the first call has effect;
// call it from main before anything else logs.
func Init(env string) {
	once.Do(func() {
		var (
			l   *zap.Logger
			err error
		)
		if env == "production" {
			l, err = zap.NewProduction()
		} else {
			l, err = zap.NewDevelopment()
		}
		if err != nil {
			l = zap.NewNop()
		}
		instance = l
	})
}

// L returns the singleton logger, initializing a development logger if
// Init was never called (tests, tools).
func L() *zap.Logger {
	if instance == nil {
		Init("development")
	}
	return instance
}

// Named returns a logger tagged with a component name.
func Named(name string) *zap.Logger {
	return L().Named(name)
}

// Sync flushes buffered entries. Defer it in main.
func Sync() error {
	if instance != nil {
		return instance.Sync()
	}
	return nil
}
