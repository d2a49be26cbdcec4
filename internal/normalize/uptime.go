package normalize

import (
	"fmt"
	"strings"
)

// FormatUptime converts an Uptime Kuma webhook payload into a single
// human readable line. It never fails: missing fields degrade to
// defaults.
func FormatUptime(payload map[string]any) string {
	name := firstString(payload, "monitor_name", "name")
	if name == "" {
		name = "Unknown monitor"
	}

	status := firstString(payload, "status", "event")
	if status == "" {
		status = "unknown"
	}

	parts := []string{fmt.Sprintf("[Uptime Kuma] %s is %s", name, strings.ToUpper(status))}

	if url := firstString(payload, "monitor_url", "url"); url != "" {
		parts = append(parts, "URL: "+url)
	}
	if msg := firstString(payload, "msg", "message"); msg != "" {
		parts = append(parts, "Message: "+msg)
	}

	return strings.Join(parts, " | ")
}

// firstString walks the candidate keys in order and returns the first
// value that renders to a non-empty string.
func firstString(payload map[string]any, keys ...string) string {
	for _, key := range keys {
		v, ok := payload[key]
		if !ok || v == nil {
			continue
		}
		if s, ok := v.(string); ok {
			if s != "" {
				return s
			}
			continue
		}
		return fmt.Sprintf("%v", v)
	}
	return ""
}
