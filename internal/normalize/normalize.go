// Package normalize folds keys so that case and surrounding whitespace never
// distinguish two values that are meant to be the same.
package normalize

import "strings"

func Text(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func Equal(a, b string) bool {
	return Text(a) == Text(b)
}
