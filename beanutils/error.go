// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-bean library.

package beanutils

import "fmt"

var (
	ErrNilType           = fmt.Errorf("nil type")
	ErrNilValue          = fmt.Errorf("nil value")
	ErrNoAccessor        = fmt.Errorf("property needs a getter or a setter")
	ErrDuplicateProperty = fmt.Errorf("property already defined")
	ErrBuilderSealed     = fmt.Errorf("bean builder already built")
	ErrPropertyNotFound  = fmt.Errorf("property not found")
	ErrNotReadable       = fmt.Errorf("property is not readable")
	ErrNotWritable       = fmt.Errorf("property is not writable")
	ErrNotAddressable    = fmt.Errorf("value is not addressable")
	ErrTypeMismatch      = fmt.Errorf("value type mismatch")
	ErrUnknownHandler    = fmt.Errorf("unknown resolve handler")
	ErrUnknownCache      = fmt.Errorf("unknown cache policy")
)
