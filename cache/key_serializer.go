package cache

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// KeySeparator defines the delimiter used between cache key segments.
const KeySeparator = ":"

// defaultKeySerializer implements KeySerializer. Scalars are written as-is so
// keys stay readable ("products:all:page:1:limit:10"); composite values are
// reduced to an xxhash digest of a canonical rendering so keys stay short and
// deterministic across runs.
type defaultKeySerializer struct {
	separator string
}

// NewDefaultKeySerializer creates a key serializer using KeySeparator.
func NewDefaultKeySerializer() KeySerializer {
	return &defaultKeySerializer{separator: KeySeparator}
}

var defaultSerializer = NewDefaultKeySerializer()

// Key builds a key with the default serializer.
//
//	cache.Key("products", "category", 3, "page", 1) // products:category:3:page:1
func Key(prefix string, parts ...any) string {
	return defaultSerializer.SerializeKey(prefix, parts...)
}

// SerializeKey joins prefix and the rendered parts with the separator.
func (s *defaultKeySerializer) SerializeKey(prefix string, parts ...any) string {
	if len(parts) == 0 {
		return prefix
	}

	segments := make([]string, 0, len(parts)+1)
	if prefix != "" {
		segments = append(segments, prefix)
	}
	for _, part := range parts {
		segments = append(segments, s.segment(part))
	}

	return strings.Join(segments, s.separator)
}

func (s *defaultKeySerializer) segment(v any) string {
	if v == nil {
		return "nil"
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return "nil"
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	}

	return digest(canonical(rv))
}

// canonical renders composite values deterministically: map keys are sorted
// and only exported struct fields are considered.
func canonical(rv reflect.Value) string {
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return "nil"
		}
		return canonical(rv.Elem())

	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return "slice:nil"
		}
		parts := make([]string, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			parts[i] = canonical(rv.Index(i))
		}
		return fmt.Sprintf("[%d]{%s}", len(parts), strings.Join(parts, ","))

	case reflect.Map:
		if rv.IsNil() {
			return "map:nil"
		}
		pairs := make([]string, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			pairs = append(pairs, canonical(iter.Key())+"="+canonical(iter.Value()))
		}
		sort.Strings(pairs)
		return fmt.Sprintf("map{%s}", strings.Join(pairs, ","))

	case reflect.Struct:
		rt := rv.Type()
		parts := make([]string, 0, rv.NumField())
		for i := 0; i < rv.NumField(); i++ {
			field := rt.Field(i)
			if !field.IsExported() {
				continue
			}
			parts = append(parts, field.Name+":"+canonical(rv.Field(i)))
		}
		return fmt.Sprintf("%s{%s}", rt.Name(), strings.Join(parts, ","))

	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		// Only stable within a single process.
		return fmt.Sprintf("%s:%x", rv.Kind(), rv.Pointer())
	}

	if rv.CanInterface() {
		if data, err := json.Marshal(rv.Interface()); err == nil {
			return string(data)
		}
	}
	return fmt.Sprintf("%v", rv)
}

func digest(s string) string {
	return "x" + strconv.FormatUint(xxhash.Sum64String(s), 16)
}
