package binder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// bindToStruct fills the exported fields of the struct v points to from
// values, keyed by the field's tagName tag. Fields with no submitted value
// keep what they had. Failures wrap bindErr.
func bindToStruct(v any, tagName string, values map[string][]string, bindErr error) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a non-nil pointer to struct", bindErr)
	}
	rv = rv.Elem()

	for _, sf := range reflect.VisibleFields(rv.Type()) {
		if !sf.IsExported() || sf.Anonymous {
			continue
		}
		name, ok := fieldName(sf, tagName)
		if !ok {
			continue
		}
		submitted := values[name]
		if len(submitted) == 0 {
			continue
		}
		field, err := rv.FieldByIndexErr(sf.Index)
		if err != nil {
			// promoted through a nil embedded pointer
			continue
		}
		if err := assign(field, submitted); err != nil {
			return fmt.Errorf("%w: field %s: %v", bindErr, sf.Name, err)
		}
	}
	return nil
}

// fieldName resolves the parameter name. Untagged fields match their
// lowercased name and "-" opts out.
func fieldName(sf reflect.StructField, tagName string) (string, bool) {
	tag, tagged := sf.Tag.Lookup(tagName)
	if !tagged || tag == "" {
		return strings.ToLower(sf.Name), true
	}
	name, _, _ := strings.Cut(tag, ",")
	return name, name != "" && name != "-"
}

// assign stores values in dst. Slices take every value, everything else
// the first one.
func assign(dst reflect.Value, values []string) error {
	switch dst.Kind() {
	case reflect.Pointer:
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return assign(dst.Elem(), values)
	case reflect.Slice:
		out := reflect.MakeSlice(dst.Type(), len(values), len(values))
		for i, s := range values {
			if err := assignScalar(out.Index(i), strings.TrimSpace(s)); err != nil {
				return err
			}
		}
		dst.Set(out)
		return nil
	default:
		return assignScalar(dst, values[0])
	}
}

func assignScalar(dst reflect.Value, s string) error {
	switch dst.Kind() {
	case reflect.String:
		dst.SetString(s)
	case reflect.Bool:
		b, err := parseCheckbox(s)
		if err != nil {
			return err
		}
		dst.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, dst.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid integer %q", s)
		}
		dst.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, dst.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid unsigned integer %q", s)
		}
		dst.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, dst.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid number %q", s)
		}
		dst.SetFloat(f)
	default:
		return fmt.Errorf("unsupported kind %s", dst.Kind())
	}
	return nil
}

// parseCheckbox accepts strconv booleans plus the values browsers and
// hand-written forms send for checkboxes.
func parseCheckbox(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "yes":
		return true, nil
	case "off", "no", "":
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q", s)
	}
	return b, nil
}
