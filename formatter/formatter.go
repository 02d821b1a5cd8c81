// Package formatter serializes log records into single-line byte slices:
// timestamp, level name and message joined by a configurable separator,
// followed by the record values concatenated without separators.
package formatter

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/davecgh/go-spew/spew"
	"github.com/lixenwraith/fanlog/sanitizer"
)

// Formatter manages the buffered formatting of log records. It reuses an
// internal buffer across calls and is not safe for concurrent use; each
// owner serializes access.
type Formatter struct {
	sanitizer       *sanitizer.Sanitizer
	timestampFormat string
	separator       byte
	buf             []byte
}

// New creates a formatter with the provided sanitizer, RFC 3339 timestamps
// and tab-separated fields. Without a sanitizer the record policy is used,
// which escapes control characters so one record stays on one line.
func New(s ...*sanitizer.Sanitizer) *Formatter {
	var san *sanitizer.Sanitizer
	if len(s) > 0 && s[0] != nil {
		san = s[0]
	} else {
		san = sanitizer.New().Policy(sanitizer.PolicyRecord)
	}
	return &Formatter{
		sanitizer:       san,
		timestampFormat: time.RFC3339,
		separator:       '\t',
		buf:             make([]byte, 0, 1024),
	}
}

// TimestampFormat sets the timestamp format string
func (f *Formatter) TimestampFormat(format string) *Formatter {
	if format != "" {
		f.timestampFormat = format
	}
	return f
}

// Separator sets the byte between the record fields. Values are not
// affected; they concatenate directly.
func (f *Formatter) Separator(sep byte) *Formatter {
	f.separator = sep
	return f
}

// Format serializes one record into a newline-terminated line. The values
// field is omitted entirely when no values were logged. The returned slice
// aliases the internal buffer and is valid until the next call.
func (f *Formatter) Format(timestamp time.Time, level string, message string, values []any) []byte {
	f.Reset()

	f.buf = timestamp.AppendFormat(f.buf, f.timestampFormat)
	f.buf = append(f.buf, f.separator)
	f.buf = append(f.buf, level...)
	f.buf = append(f.buf, f.separator)
	f.buf = append(f.buf, f.sanitizer.Sanitize(message)...)

	if len(values) > 0 {
		f.buf = append(f.buf, f.separator)
		for _, value := range values {
			f.convertValue(&f.buf, value)
		}
	}

	f.buf = append(f.buf, '\n')
	return f.buf
}

// FormatValue serializes a single value using the formatter's configuration.
func (f *Formatter) FormatValue(v any) []byte {
	f.Reset()
	f.convertValue(&f.buf, v)
	return f.buf
}

// Reset clears the formatter buffer for reuse
func (f *Formatter) Reset() {
	f.buf = f.buf[:0]
}

// convertValue provides unified type conversion. String-like values pass
// through the sanitizer; numeric and bool values append their canonical
// text; everything else is dumped through spew.
func (f *Formatter) convertValue(buf *[]byte, v any) {
	switch val := v.(type) {
	case string:
		*buf = append(*buf, f.sanitizer.Sanitize(val)...)

	case []byte:
		*buf = append(*buf, f.sanitizer.Sanitize(string(val))...)

	case rune:
		var runeStr [utf8.UTFMax]byte
		n := utf8.EncodeRune(runeStr[:], val)
		*buf = append(*buf, f.sanitizer.Sanitize(string(runeStr[:n]))...)

	case int:
		*buf = strconv.AppendInt(*buf, int64(val), 10)

	case int64:
		*buf = strconv.AppendInt(*buf, val, 10)

	case uint:
		*buf = strconv.AppendUint(*buf, uint64(val), 10)

	case uint64:
		*buf = strconv.AppendUint(*buf, val, 10)

	case float32:
		*buf = strconv.AppendFloat(*buf, float64(val), 'f', -1, 32)

	case float64:
		*buf = strconv.AppendFloat(*buf, val, 'f', -1, 64)

	case bool:
		*buf = strconv.AppendBool(*buf, val)

	case nil:
		*buf = append(*buf, "nil"...)

	case time.Time:
		*buf = append(*buf, f.sanitizer.Sanitize(val.Format(f.timestampFormat))...)

	case error:
		*buf = append(*buf, f.sanitizer.Sanitize(val.Error())...)

	case fmt.Stringer:
		*buf = append(*buf, f.sanitizer.Sanitize(val.String())...)

	default:
		f.writeComplex(buf, val)
	}
}

// writeComplex dumps structs, maps, slices and pointers through spew with a
// deterministic configuration. The sanitizer folds spew's multi-line output
// back onto the record line.
func (f *Formatter) writeComplex(buf *[]byte, v any) {
	var b bytes.Buffer
	dumper := &spew.ConfigState{
		Indent:                  " ",
		MaxDepth:                10,
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}
	dumper.Fdump(&b, v)
	*buf = append(*buf, f.sanitizer.Sanitize(string(bytes.TrimSpace(b.Bytes())))...)
}
