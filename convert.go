// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-bean library.

package dynbean

import (
	"fmt"
	"math"
	"reflect"

	"github.com/pk910/dynamic-bean/beanutils"
)

// ToMap reads every readable property of obj into a map.
func (d *DynBean) ToMap(obj any) (map[string]any, error) {
	bt, err := d.ResolveValue(obj)
	if err != nil {
		return nil, err
	}

	values := make(map[string]any, bt.Len())
	for _, prop := range bt.Properties() {
		if !prop.Readable() {
			continue
		}
		value, err := prop.Get(obj)
		if err != nil {
			return nil, fmt.Errorf("property %v: %w", prop.Name(), err)
		}
		values[prop.Name()] = value
	}

	return values, nil
}

// FromMap writes the entries of values to the writable properties of obj with the same
// name. Entries without a matching writable property are ignored. obj must be a pointer.
func (d *DynBean) FromMap(values map[string]any, obj any) error {
	bt, err := d.ResolveValue(obj)
	if err != nil {
		return err
	}

	target := reflect.ValueOf(obj)
	for _, prop := range bt.Properties() {
		value, ok := values[prop.Name()]
		if !ok || !prop.Writable() {
			continue
		}

		converted, err := convertValue(reflect.ValueOf(value), prop.Type())
		if err != nil {
			return fmt.Errorf("property %v: %w", prop.Name(), err)
		}
		if err := prop.SetValue(target, converted); err != nil {
			return fmt.Errorf("property %v: %w", prop.Name(), err)
		}
	}

	return nil
}

// CopyProperties copies every readable property of src to the writable property of dst
// with the same name. dst must be a pointer. It returns the names of copied properties.
func (d *DynBean) CopyProperties(src, dst any) ([]string, error) {
	srcType, err := d.ResolveValue(src)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	dstType, err := d.ResolveValue(dst)
	if err != nil {
		return nil, fmt.Errorf("destination: %w", err)
	}

	srcValue := reflect.ValueOf(src)
	dstValue := reflect.ValueOf(dst)
	copied := []string{}

	for _, dstProp := range dstType.Properties() {
		srcProp := srcType.Property(dstProp.Name())
		if srcProp == nil || !srcProp.Readable() || !dstProp.Writable() {
			continue
		}

		value, err := srcProp.GetValue(srcValue)
		if err != nil {
			return copied, fmt.Errorf("reading %v: %w", srcProp.Name(), err)
		}
		converted, err := convertValue(value, dstProp.Type())
		if err != nil {
			return copied, fmt.Errorf("property %v: %w", dstProp.Name(), err)
		}
		if err := dstProp.SetValue(dstValue, converted); err != nil {
			return copied, fmt.Errorf("writing %v: %w", dstProp.Name(), err)
		}

		copied = append(copied, dstProp.Name())
		if d.Verbose {
			d.logf("copied %v from %v to %v", dstProp.Name(), srcType.Type(), dstType.Type())
		}
	}

	return copied, nil
}

// convertValue makes v assignable to t. Invalid values become the zero value, non-nil
// pointers are dereferenced when their element fits, and convertible values are
// converted, except integers to strings. Numbers must fit the target type exactly and
// slices must be long enough for a target array.
func convertValue(v reflect.Value, t reflect.Type) (reflect.Value, error) {
	if !v.IsValid() {
		return reflect.Zero(t), nil
	}
	if v.Type().AssignableTo(t) {
		return v, nil
	}
	if v.Kind() == reflect.Pointer && !v.IsNil() {
		if elem, err := convertValue(v.Elem(), t); err == nil {
			return elem, nil
		}
	}
	if v.Type().ConvertibleTo(t) && !(isInteger(v.Kind()) && t.Kind() == reflect.String) {
		if err := checkSliceLength(v, t); err != nil {
			return reflect.Value{}, err
		}
		if err := checkNumericRange(v, t); err != nil {
			return reflect.Value{}, err
		}
		return v.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: cannot convert %v to %v", beanutils.ErrTypeMismatch, v.Type(), t)
}

// checkSliceLength rejects slice to array (or array pointer) conversions that would panic.
func checkSliceLength(v reflect.Value, t reflect.Type) error {
	if v.Kind() != reflect.Slice {
		return nil
	}

	arrayType := t
	if arrayType.Kind() == reflect.Pointer {
		arrayType = arrayType.Elem()
	}
	if arrayType.Kind() == reflect.Array && v.Len() < arrayType.Len() {
		return fmt.Errorf("%w: slice of length %d is too short for %v", beanutils.ErrTypeMismatch, v.Len(), t)
	}
	return nil
}

// checkNumericRange rejects numeric conversions that would wrap, overflow or drop a fraction.
func checkNumericRange(v reflect.Value, t reflect.Type) error {
	if !isNumber(v.Kind()) || !isNumber(t.Kind()) {
		return nil
	}

	target := reflect.New(t).Elem()
	lossy := false

	switch {
	case isSigned(t.Kind()):
		switch {
		case isSigned(v.Kind()):
			lossy = target.OverflowInt(v.Int())
		case isUnsigned(v.Kind()):
			lossy = v.Uint() > math.MaxInt64 || target.OverflowInt(int64(v.Uint()))
		default:
			f := v.Float()
			lossy = f != math.Trunc(f) || f < -(1<<63) || f >= 1<<63 || target.OverflowInt(int64(f))
		}
	case isUnsigned(t.Kind()):
		switch {
		case isSigned(v.Kind()):
			lossy = v.Int() < 0 || target.OverflowUint(uint64(v.Int()))
		case isUnsigned(v.Kind()):
			lossy = target.OverflowUint(v.Uint())
		default:
			f := v.Float()
			lossy = f != math.Trunc(f) || f < 0 || f >= 1<<64 || target.OverflowUint(uint64(f))
		}
	default:
		if isFloat(v.Kind()) {
			lossy = target.OverflowFloat(v.Float())
		}
	}

	if lossy {
		return fmt.Errorf("%w: %v does not fit %v", beanutils.ErrTypeMismatch, v, t)
	}
	return nil
}

func isInteger(kind reflect.Kind) bool {
	return isSigned(kind) || isUnsigned(kind)
}

func isSigned(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUnsigned(kind reflect.Kind) bool {
	switch kind {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isFloat(kind reflect.Kind) bool {
	return kind == reflect.Float32 || kind == reflect.Float64
}

func isNumber(kind reflect.Kind) bool {
	return isInteger(kind) || isFloat(kind)
}
