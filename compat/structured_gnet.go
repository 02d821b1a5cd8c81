package compat

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lixenwraith/fanlog"
)

// Pattern to detect common structured patterns like "key=%v" or "key: %v"
var keyValuePattern = regexp.MustCompile(`(\w+)\s*[:=]\s*%[vsdqxXeEfFgGpbcU]`)

// parseFormat attempts to extract structured fields from printf-style format
// strings, turning each recognized pair into a rendered "key=value" record
// value. Useful for preserving structured logging semantics.
func parseFormat(format string, args []any) (string, []any) {
	matches := keyValuePattern.FindAllStringSubmatchIndex(format, -1)
	if len(matches) == 0 || len(matches) > len(args) {
		// Fallback to simple message if pattern doesn't match
		return fmt.Sprintf(format, args...), nil
	}

	// Text before the first match becomes the message
	message := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(format[:matches[0][0]]), ":,"))

	// Build rendered key=value fields, space-prefixed after the first
	// since record values concatenate without separators
	values := make([]any, 0, len(matches))
	argIndex := 0
	for _, match := range matches {
		if argIndex >= len(args) {
			break
		}
		key := format[match[2]:match[3]]
		rendered := fmt.Sprintf("%s=%v", key, args[argIndex])
		if len(values) > 0 {
			rendered = " " + rendered
		}
		values = append(values, rendered)
		argIndex++
	}

	return message, values
}

// StructuredGnetAdapter provides enhanced structured logging for gnet
type StructuredGnetAdapter struct {
	*GnetAdapter
	extractFields bool
}

// NewStructuredGnetAdapter creates a gnet adapter with structured field extraction
func NewStructuredGnetAdapter(dispatcher *fanlog.Dispatcher, opts ...GnetOption) *StructuredGnetAdapter {
	return &StructuredGnetAdapter{
		GnetAdapter:   NewGnetAdapter(dispatcher, opts...),
		extractFields: true,
	}
}

// structuredValues merges extracted fields with the adapter's source tag
func (a *StructuredGnetAdapter) structuredValues(fields []any) []any {
	if a.source == "" {
		return fields
	}
	tag := "source=" + a.source
	if len(fields) > 0 {
		tag = " " + tag
	}
	return append(fields, tag)
}

// Debugf logs with structured field extraction
func (a *StructuredGnetAdapter) Debugf(format string, args ...any) {
	if a.extractFields {
		message, fields := parseFormat(format, args)
		a.dispatcher.Debug(message, a.structuredValues(fields)...)
	} else {
		a.GnetAdapter.Debugf(format, args...)
	}
}

// Infof logs with structured field extraction
func (a *StructuredGnetAdapter) Infof(format string, args ...any) {
	if a.extractFields {
		message, fields := parseFormat(format, args)
		a.dispatcher.Info(message, a.structuredValues(fields)...)
	} else {
		a.GnetAdapter.Infof(format, args...)
	}
}

// Warnf logs with structured field extraction
func (a *StructuredGnetAdapter) Warnf(format string, args ...any) {
	if a.extractFields {
		message, fields := parseFormat(format, args)
		a.dispatcher.Warn(message, a.structuredValues(fields)...)
	} else {
		a.GnetAdapter.Warnf(format, args...)
	}
}

// Errorf logs with structured field extraction
func (a *StructuredGnetAdapter) Errorf(format string, args ...any) {
	if a.extractFields {
		message, fields := parseFormat(format, args)
		a.dispatcher.Error(message, a.structuredValues(fields)...)
	} else {
		a.GnetAdapter.Errorf(format, args...)
	}
}
