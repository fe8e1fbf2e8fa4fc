package repositorycache

import (
	"reflect"
	"strings"
	"unicode"
)

// namespaceOf derives a cache namespace from a record type: *store.CartItem
// becomes "cart_item".
func namespaceOf[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice {
		t = t.Elem()
	}
	return toSnake(t.Name())
}

// toSnake lowercases s and separates words with underscores. Anything that
// is not a letter or digit becomes a separator, so generic suffixes such as
// "[int]" never reach a cache key.
func toSnake(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(runes) + len(runes)/2)

	pending := false
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			pending = b.Len() > 0
			continue
		}

		if b.Len() > 0 && !pending && i > 0 {
			prev := runes[i-1]
			switch {
			case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
				pending = true
			case unicode.IsUpper(r) && unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				// acronym boundary: HTTPServer -> http_server
				pending = true
			case unicode.IsDigit(r) && !unicode.IsDigit(prev):
				pending = true
			}
		}

		if pending {
			b.WriteByte('_')
			pending = false
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
