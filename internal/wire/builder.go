package wire

import (
	"strconv"
	"strings"
)

// TypicalResponseSize is the initial capacity of a Builder.
const TypicalResponseSize = 8192

// Builder accumulates JSON text. Every value is followed by a comma, which the
// enclosing EndObject/EndArray replaces with the closing bracket.
type Builder struct {
	buf []byte
}

func NewBuilder() *Builder {
	return NewBuilderSize(TypicalResponseSize)
}

func NewBuilderSize(size int) *Builder {
	return &Builder{buf: make([]byte, 0, size)}
}

func (b *Builder) Reset() { b.buf = b.buf[:0] }

func (b *Builder) BeginObject() { b.buf = append(b.buf, '{') }
func (b *Builder) EndObject()   { b.close('}') }
func (b *Builder) BeginArray()  { b.buf = append(b.buf, '[') }
func (b *Builder) EndArray()    { b.close(']') }

// close terminates a container. A closed container is itself a value and gets
// its own separator; String drops the one after the outermost container.
func (b *Builder) close(c byte) {
	if n := len(b.buf); n > 0 && b.buf[n-1] == ',' {
		b.buf[n-1] = c
	} else {
		b.buf = append(b.buf, c)
	}
	b.buf = append(b.buf, ',')
}

func (b *Builder) Key(k string) {
	b.buf = append(b.buf, '"')
	b.escape(k)
	b.buf = append(b.buf, '"', ':')
}

func (b *Builder) ValueString(v string) {
	b.buf = append(b.buf, '"')
	b.escape(v)
	b.buf = append(b.buf, '"', ',')
}

func (b *Builder) ValueInt(v int64) {
	b.buf = strconv.AppendInt(b.buf, v, 10)
	b.buf = append(b.buf, ',')
}

func (b *Builder) ValueBool(v bool) {
	b.buf = strconv.AppendBool(b.buf, v)
	b.buf = append(b.buf, ',')
}

// ValueRaw appends v verbatim. The caller is responsible for it being valid JSON.
func (b *Builder) ValueRaw(v string) {
	b.buf = append(b.buf, v...)
	b.buf = append(b.buf, ',')
}

func (b *Builder) KVString(k, v string) {
	b.Key(k)
	b.ValueString(v)
}

func (b *Builder) KVInt(k string, v int64) {
	b.Key(k)
	b.ValueInt(v)
}

func (b *Builder) KVBool(k string, v bool) {
	b.Key(k)
	b.ValueBool(v)
}

// String returns the accumulated text. A trailing separator left by a
// top-level scalar is dropped.
func (b *Builder) String() string {
	return strings.TrimSuffix(string(b.buf), ",")
}

func (b *Builder) escape(s string) {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			b.buf = append(b.buf, '\\', '"')
		case '\\':
			b.buf = append(b.buf, '\\', '\\')
		case '\n':
			b.buf = append(b.buf, '\\', 'n')
		case '\r':
			b.buf = append(b.buf, '\\', 'r')
		case '\t':
			b.buf = append(b.buf, '\\', 't')
		default:
			b.buf = append(b.buf, c)
		}
	}
}
