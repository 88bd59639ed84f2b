package logger

import (
	"time"

	"go.uber.org/zap"
)

// Field type alias so callers do not import zap directly
type Field = zap.Field

func String(key, val string) Field {
	return zap.String(key, val)
}

func Err(err error) Field {
	return zap.Error(err)
}

func Int(key string, val int) Field {
	return zap.Int(key, val)
}

func Int64(key string, val int64) Field {
	return zap.Int64(key, val)
}

func Bool(key string, val bool) Field {
	return zap.Bool(key, val)
}

func Any(key string, val interface{}) Field {
	return zap.Any(key, val)
}

func Duration(key string, val time.Duration) Field {
	return zap.Duration(key, val)
}

func Strings(key string, val []string) Field {
	return zap.Strings(key, val)
}
