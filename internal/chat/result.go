package chat

import "fmt"

// Well-known result keys and status values.
const (
	KeyStatus = "status"
	KeyError  = "error"

	StatusSuccess = "success"
	StatusError   = "error"
)

// Result is an ordered record of key/value pairs returned by a Handler.
// Keys keep their first insertion position; setting an existing key
// replaces its value in place.
type Result struct {
	keys   []string
	values map[string]any
}

// NewResult builds a record from alternating key, value arguments.
// It panics if a key is not a string or the argument count is odd.
func NewResult(kv ...any) *Result {
	if len(kv)%2 != 0 {
		panic("chat.NewResult: odd number of arguments")
	}
	r := &Result{values: make(map[string]any, len(kv)/2)}
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("chat.NewResult: key %v is %T, not string", kv[i], kv[i]))
		}
		r.Set(key, kv[i+1])
	}
	return r
}

// ErrorResult is the record shown when a request fails.
func ErrorResult(err error) *Result {
	return NewResult(KeyStatus, StatusError, KeyError, err.Error())
}

// Set stores value under key and returns r for chaining.
func (r *Result) Set(key string, value any) *Result {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
	return r
}

// Get returns the value stored under key.
func (r *Result) Get(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.values[key]
	return v, ok
}

// Status returns the "status" entry formatted as a string, or "".
func (r *Result) Status() string {
	v, ok := r.Get(KeyStatus)
	if !ok {
		return ""
	}
	return fmt.Sprint(v)
}

// Keys returns the keys in insertion order.
func (r *Result) Keys() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.keys...)
}

// Len returns the number of entries.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Each calls fn for every entry in insertion order.
func (r *Result) Each(fn func(key string, value any)) {
	if r == nil {
		return
	}
	for _, k := range r.keys {
		fn(k, r.values[k])
	}
}
