package test_utils

import (
	"fmt"
	"reflect"
	"time"
)

// DeepEqual performs deep equality comparison with custom handling for time fields.
// Pointer cycles, such as friend lists that point back at their owner, are
// compared once.
func DeepEqual(expected, actual any) error {
	return deepEqual(reflect.ValueOf(expected), reflect.ValueOf(actual), "", make(map[[2]uintptr]bool))
}

func deepEqual(expected, actual reflect.Value, path string, seen map[[2]uintptr]bool) error {
	if !expected.IsValid() || !actual.IsValid() {
		if expected.IsValid() != actual.IsValid() {
			return fmt.Errorf("%s: one value is nil, the other is not", path)
		}
		return nil
	}

	if expected.Type() != actual.Type() {
		return fmt.Errorf("%s: type mismatch: expected %s, got %s", path, expected.Type(), actual.Type())
	}

	switch expected.Kind() {
	case reflect.Ptr:
		if expected.IsNil() != actual.IsNil() {
			return fmt.Errorf("%s: pointer nil mismatch: expected %v, got %v", path, expected.IsNil(), actual.IsNil())
		}
		if expected.IsNil() {
			return nil
		}
		key := [2]uintptr{expected.Pointer(), actual.Pointer()}
		if seen[key] {
			return nil
		}
		seen[key] = true
		return deepEqual(expected.Elem(), actual.Elem(), path, seen)

	case reflect.Struct:
		if expected.Type() == reflect.TypeOf(time.Time{}) {
			return compareTime(expected.Interface().(time.Time), actual.Interface().(time.Time), path)
		}
		for i := 0; i < expected.NumField(); i++ {
			field := expected.Type().Field(i)
			if !field.IsExported() {
				continue
			}
			fieldPath := field.Name
			if path != "" {
				fieldPath = path + "." + field.Name
			}
			if err := deepEqual(expected.Field(i), actual.Field(i), fieldPath, seen); err != nil {
				return err
			}
		}
		return nil

	case reflect.Slice:
		if expected.Len() != actual.Len() {
			return fmt.Errorf("%s: slice length mismatch: expected %d, got %d", path, expected.Len(), actual.Len())
		}
		for i := 0; i < expected.Len(); i++ {
			if err := deepEqual(expected.Index(i), actual.Index(i), fmt.Sprintf("%s[%d]", path, i), seen); err != nil {
				return err
			}
		}
		return nil

	case reflect.Map:
		if expected.Len() != actual.Len() {
			return fmt.Errorf("%s: map length mismatch: expected %d, got %d", path, expected.Len(), actual.Len())
		}
		for _, key := range expected.MapKeys() {
			actualValue := actual.MapIndex(key)
			if !actualValue.IsValid() {
				return fmt.Errorf("%s: missing key %v in actual map", path, key.Interface())
			}
			if err := deepEqual(expected.MapIndex(key), actualValue, fmt.Sprintf("%s[%v]", path, key.Interface()), seen); err != nil {
				return err
			}
		}
		return nil
	}

	if !reflect.DeepEqual(expected.Interface(), actual.Interface()) {
		return fmt.Errorf("%s: value mismatch: expected %v, got %v", path, expected.Interface(), actual.Interface())
	}
	return nil
}

// compareTime compares instants to the millisecond, the precision of the
// server's ISO strings, and ignores the location.
func compareTime(expected, actual time.Time, path string) error {
	if expected.IsZero() != actual.IsZero() {
		return fmt.Errorf("%s: time zero mismatch: expected %v, got %v", path, expected, actual)
	}
	if !expected.Truncate(time.Millisecond).Equal(actual.Truncate(time.Millisecond)) {
		return fmt.Errorf("%s: time mismatch: expected %v, got %v", path, expected, actual)
	}
	return nil
}

// CompareStringLists compares string slices ignoring order
func CompareStringLists(expected, actual []string) error {
	if len(expected) != len(actual) {
		return fmt.Errorf("string list length mismatch: expected %d, got %d", len(expected), len(actual))
	}

	counts := make(map[string]int)
	for _, s := range expected {
		counts[s]++
	}
	for _, s := range actual {
		counts[s]--
	}
	for s, n := range counts {
		if n > 0 {
			return fmt.Errorf("string '%s' missing from actual list", s)
		}
		if n < 0 {
			return fmt.Errorf("string '%s' unexpected in actual list", s)
		}
	}
	return nil
}
