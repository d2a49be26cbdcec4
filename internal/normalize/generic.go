package normalize

import (
	"encoding/json"
	"fmt"
)

// FormatGeneric renders an arbitrary payload as two-space-indented JSON.
// If the payload cannot be marshaled it falls back to a best-effort
// string representation. Callers rely on this never failing.
func FormatGeneric(payload any) string {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", payload)
	}
	return string(data)
}
