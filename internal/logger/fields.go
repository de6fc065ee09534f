package logger

import (
	"time"

	"github.com/rs/zerolog"
)

// Field is a typed key/value attached to a log event.
type Field struct {
	key   string
	kind  fieldKind
	str   string
	num   int64
	float float64
	any   interface{}
	err   error
}

type fieldKind uint8

const (
	kindString fieldKind = iota
	kindInt
	kindFloat
	kindBool
	kindDuration
	kindError
	kindAny
)

func (f Field) addTo(e *zerolog.Event) {
	switch f.kind {
	case kindString:
		e.Str(f.key, f.str)
	case kindInt:
		e.Int64(f.key, f.num)
	case kindFloat:
		e.Float64(f.key, f.float)
	case kindBool:
		e.Bool(f.key, f.num != 0)
	case kindDuration:
		e.Dur(f.key, time.Duration(f.num))
	case kindError:
		e.AnErr(f.key, f.err)
	default:
		e.Interface(f.key, f.any)
	}
}

func (f Field) addToContext(c zerolog.Context) zerolog.Context {
	switch f.kind {
	case kindString:
		return c.Str(f.key, f.str)
	case kindInt:
		return c.Int64(f.key, f.num)
	case kindFloat:
		return c.Float64(f.key, f.float)
	case kindBool:
		return c.Bool(f.key, f.num != 0)
	case kindDuration:
		return c.Dur(f.key, time.Duration(f.num))
	case kindError:
		return c.AnErr(f.key, f.err)
	default:
		return c.Interface(f.key, f.any)
	}
}

func String(key, value string) Field { return Field{key: key, kind: kindString, str: value} }

func Int(key string, value int) Field { return Field{key: key, kind: kindInt, num: int64(value)} }

func Float(key string, value float64) Field { return Field{key: key, kind: kindFloat, float: value} }

func Bool(key string, value bool) Field {
	f := Field{key: key, kind: kindBool}
	if value {
		f.num = 1
	}
	return f
}

// Duration is rendered in milliseconds (zerolog's default duration unit).
func Duration(key string, value time.Duration) Field {
	return Field{key: key, kind: kindDuration, num: int64(value)}
}

func Error(err error) Field { return Field{key: "error", kind: kindError, err: err} }

func Any(key string, value interface{}) Field { return Field{key: key, kind: kindAny, any: value} }
