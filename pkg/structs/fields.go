package structs

import (
	"fmt"
	"reflect"

	"github.com/oleiade/reflections"
	"github.com/pkg/errors"
)

// GetField returns the value of the provided obj field. obj can whether be a structure or pointer to structure.
func GetField(obj any, name string) (any, error) {
	v, err := reflections.GetField(obj, name)
	return v, errors.Wrapf(err, "could not get field %s", name)
}

// Strings returns the string representations of the provided obj field.
// Slice fields return one string per element, other fields return a single string.
// Empty values are skipped.
func Strings(obj any, name string) ([]string, error) {
	v, err := GetField(obj, name)
	if err != nil {
		return nil, err
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice {
		values := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			if s := fmt.Sprint(rv.Index(i).Interface()); s != "" {
				values = append(values, s)
			}
		}
		return values, nil
	}

	if s := fmt.Sprint(v); s != "" {
		return []string{s}, nil
	}
	return nil, nil
}
