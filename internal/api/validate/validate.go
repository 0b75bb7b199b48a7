package validate

import (
	"encoding/json"
	"strings"

	"github.com/baharkarakas/legion/internal/apperr"
)

// RequiredKeys fails unless every key is present in body with a value that is
// not null, false, zero or an empty string. Empty arrays count as present.
func RequiredKeys(body map[string]json.RawMessage, keys ...string) error {
	for _, k := range keys {
		if blank(body[k]) {
			return apperr.Validation("One of the following keys is missing or is empty in request body: %s", quoteList(keys))
		}
	}
	return nil
}

// Param fails when a path parameter is empty.
func Param(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperr.Validation("Parameter ':%s' can not be empty", name)
	}
	return nil
}

func blank(v json.RawMessage) bool {
	switch strings.TrimSpace(string(v)) {
	case "", "null", `""`, "false", "0":
		return true
	}
	return false
}

func quoteList(keys []string) string {
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("'" + k + "'")
	}
	return b.String()
}
