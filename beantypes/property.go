// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-bean library.

package beantypes

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pk910/dynamic-bean/beanutils"
)

// Invoker calls an accessor on a bean value. Getters return the read value, setters
// return the zero reflect.Value.
type Invoker interface {
	Invoke(obj reflect.Value, args ...reflect.Value) (reflect.Value, error)
}

// InvokerFunc adapts a function to the Invoker interface.
type InvokerFunc func(obj reflect.Value, args ...reflect.Value) (reflect.Value, error)

func (f InvokerFunc) Invoke(obj reflect.Value, args ...reflect.Value) (reflect.Value, error) {
	return f(obj, args...)
}

type methodInvoker struct {
	name     string
	errIndex int
	getter   bool
}

// NewMethodInvoker returns an invoker calling method m as an accessor of the given kind.
func NewMethodInvoker(m *Method, kind AccessorKind) Invoker {
	return &methodInvoker{
		name:     m.Name,
		errIndex: m.Shape.ErrorIndex(kind),
		getter:   kind == AccessorGetter,
	}
}

func (mi *methodInvoker) Invoke(obj reflect.Value, args ...reflect.Value) (reflect.Value, error) {
	fn := obj.MethodByName(mi.name)
	if !fn.IsValid() && obj.Kind() != reflect.Pointer && obj.Kind() != reflect.Interface {
		// pointer receiver method on a plain value
		if obj.CanAddr() {
			fn = obj.Addr().MethodByName(mi.name)
		} else {
			ptr := reflect.New(obj.Type())
			ptr.Elem().Set(obj)
			fn = ptr.MethodByName(mi.name)
		}
	}
	if !fn.IsValid() {
		return reflect.Value{}, fmt.Errorf("method %v not found on %v", mi.name, obj.Type())
	}

	out := fn.Call(args)
	if mi.errIndex >= 0 {
		if err, _ := out[mi.errIndex].Interface().(error); err != nil {
			return reflect.Value{}, err
		}
	}
	if mi.getter {
		return out[0], nil
	}
	return reflect.Value{}, nil
}

// Property is one logical property of a bean type.
type Property struct {
	name         string
	typ          reflect.Type
	getter       Invoker
	setter       Invoker
	field        *reflect.StructField
	getterMethod *Method
	setterMethod *Method
	owner        *BeanType
}

// NewProperty creates a property. At least one of getter and setter must be given.
func NewProperty(name string, typ reflect.Type, getter, setter Invoker, field *reflect.StructField, getterMethod, setterMethod *Method) (*Property, error) {
	if getter == nil && setter == nil {
		return nil, fmt.Errorf("%w: %v", beanutils.ErrNoAccessor, name)
	}
	if typ == nil {
		return nil, fmt.Errorf("%w: property %v", beanutils.ErrNilType, name)
	}

	return &Property{
		name:         name,
		typ:          typ,
		getter:       getter,
		setter:       setter,
		field:        field,
		getterMethod: getterMethod,
		setterMethod: setterMethod,
	}, nil
}

func (p *Property) Name() string                { return p.name }
func (p *Property) Type() reflect.Type          { return p.typ }
func (p *Property) Getter() Invoker             { return p.getter }
func (p *Property) Setter() Invoker             { return p.setter }
func (p *Property) Field() *reflect.StructField { return p.field }
func (p *Property) GetterMethod() *Method       { return p.getterMethod }
func (p *Property) SetterMethod() *Method       { return p.setterMethod }
func (p *Property) Readable() bool              { return p.getter != nil }
func (p *Property) Writable() bool              { return p.setter != nil }

// Owner returns the bean type holding this property, nil until the builder is built.
func (p *Property) Owner() *BeanType { return p.owner }

// Tag returns the value of key in the struct tag of the backing field.
func (p *Property) Tag(key string) (string, bool) {
	if p.field == nil {
		return "", false
	}
	return p.field.Tag.Lookup(key)
}

// Get reads the property from obj.
func (p *Property) Get(obj any) (any, error) {
	value, err := p.GetValue(reflect.ValueOf(obj))
	if err != nil {
		return nil, err
	}
	return value.Interface(), nil
}

// GetValue reads the property from obj.
func (p *Property) GetValue(obj reflect.Value) (reflect.Value, error) {
	if p.getter == nil {
		return reflect.Value{}, fmt.Errorf("%w: %v", beanutils.ErrNotReadable, p.name)
	}
	if !obj.IsValid() || (obj.Kind() == reflect.Pointer && obj.IsNil()) {
		return reflect.Value{}, fmt.Errorf("%w: reading %v", beanutils.ErrNilValue, p.name)
	}
	return p.getter.Invoke(obj)
}

// Set writes value to the property of obj. obj must be a pointer or addressable, value
// must be assignable to the property type. A nil value writes the zero value.
func (p *Property) Set(obj any, value any) error {
	v := reflect.ValueOf(value)
	if !v.IsValid() {
		v = reflect.Zero(p.typ)
	}
	return p.SetValue(reflect.ValueOf(obj), v)
}

// SetValue writes value to the property of obj.
func (p *Property) SetValue(obj reflect.Value, value reflect.Value) error {
	if p.setter == nil {
		return fmt.Errorf("%w: %v", beanutils.ErrNotWritable, p.name)
	}
	if !obj.IsValid() || (obj.Kind() == reflect.Pointer && obj.IsNil()) {
		return fmt.Errorf("%w: writing %v", beanutils.ErrNilValue, p.name)
	}
	if obj.Kind() != reflect.Pointer && obj.Kind() != reflect.Interface && !obj.CanAddr() {
		return fmt.Errorf("%w: writing %v on %v", beanutils.ErrNotAddressable, p.name, obj.Type())
	}
	if !value.Type().AssignableTo(p.typ) {
		return fmt.Errorf("%w: cannot assign %v to %v (%v)", beanutils.ErrTypeMismatch, value.Type(), p.name, p.typ)
	}

	_, err := p.setter.Invoke(obj, value)
	return err
}

func (p *Property) String() string {
	var mode strings.Builder
	if p.Readable() {
		mode.WriteString("r")
	}
	if p.Writable() {
		mode.WriteString("w")
	}
	return fmt.Sprintf("%v: %v (%v)", p.name, p.typ, mode.String())
}
