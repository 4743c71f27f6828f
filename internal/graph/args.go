package graph

import (
	"encoding/json"
	"fmt"
	"math"
)

// arguments is a field's coerced argument map. Validation has already
// checked types and presence, so lookups only convert representations.
type arguments map[string]any

func (a arguments) String(name string) (string, error) {
	switch v := a[name].(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case int64:
		return fmt.Sprint(v), nil
	case int:
		return fmt.Sprint(v), nil
	}
	return "", fmt.Errorf("%w: %s must be a string", ErrInvalidArgument, name)
}

func (a arguments) OptionalString(name string) (*string, error) {
	if a[name] == nil {
		return nil, nil
	}
	s, err := a.String(name)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (a arguments) Int64(name string) (int64, error) {
	switch v := a[name].(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case float64:
		if v == math.Trunc(v) {
			return int64(v), nil
		}
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidArgument, name)
}

func (a arguments) OptionalInt64(name string) (*int64, error) {
	if a[name] == nil {
		return nil, nil
	}
	n, err := a.Int64(name)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (a arguments) Int(name string) (int, error) {
	n, err := a.Int64(name)
	return int(n), err
}

func (a arguments) OptionalFloat(name string) (*float64, error) {
	var f float64
	switch v := a[name].(type) {
	case nil:
		return nil, nil
	case float64:
		f = v
	case int64:
		f = float64(v)
	case int:
		f = float64(v)
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be a number", ErrInvalidArgument, name)
		}
		f = n
	default:
		return nil, fmt.Errorf("%w: %s must be a number", ErrInvalidArgument, name)
	}
	return &f, nil
}

func (a arguments) Bool(name string) bool {
	b, _ := a[name].(bool)
	return b
}

func (a arguments) Object(name string) (arguments, error) {
	m, ok := a[name].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be an object", ErrInvalidArgument, name)
	}
	return arguments(m), nil
}
