package model

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/hap-protocol/hap-go/pkg/log"
)

// Enum is the constraint for enumeration state types. The underlying
// integer value of a state is its wire code.
type Enum interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32
	fmt.Stringer
}

// EnumCharacteristic is a characteristic whose domain is a finite ordered set
// of named states with contiguous codes 0..MaxCode.
type EnumCharacteristic[E Enum] struct {
	*Characteristic[E]

	states []E
}

// NewEnumCharacteristic creates an enumeration characteristic. states lists
// the domain in code order; maxCode must equal len(states)-1 and states[i]
// must have code i, otherwise construction fails with ErrInvalidDefinition.
func NewEnumCharacteristic[E Enum](identity Identity, maxCode int, states []E, binding Binding[E], opts ...Option) (*EnumCharacteristic[E], error) {
	if len(states) == 0 {
		return nil, fmt.Errorf("%s: %w: empty enumeration domain", identity.Name, ErrInvalidDefinition)
	}
	if maxCode != len(states)-1 {
		return nil, fmt.Errorf("%s: %w: maxCode %d does not match %d states",
			identity.Name, ErrInvalidDefinition, maxCode, len(states))
	}
	for i, s := range states {
		if int(s) != i {
			return nil, fmt.Errorf("%s: %w: state %s has code %d, want %d",
				identity.Name, ErrInvalidDefinition, s, int(s), i)
		}
	}

	e := &EnumCharacteristic[E]{states: slices.Clone(states)}
	c, err := newCharacteristic(identity, EnumFormat(maxCode), binding, e.validateState, opts)
	if err != nil {
		return nil, err
	}
	e.Characteristic = c
	return e, nil
}

// MaxCode returns the largest valid code.
func (c *EnumCharacteristic[E]) MaxCode() int {
	return len(c.states) - 1
}

// States returns the domain in code order.
func (c *EnumCharacteristic[E]) States() []E {
	return slices.Clone(c.states)
}

// Encode returns the wire code of e.
func (c *EnumCharacteristic[E]) Encode(e E) int {
	return int(e)
}

// Decode returns the state with the given code. Codes outside 0..MaxCode
// fail with ErrInvalidValue; no default is substituted.
func (c *EnumCharacteristic[E]) Decode(code int) (E, error) {
	if code < 0 || code >= len(c.states) {
		var zero E
		return zero, fmt.Errorf("%s: %w: code %d outside 0..%d",
			c.identity.Name, ErrInvalidValue, code, c.MaxCode())
	}
	return c.states[code], nil
}

func (c *EnumCharacteristic[E]) validateState(v E) error {
	_, err := c.Decode(int(v))
	return err
}

// Code reads the current value as a wire code.
func (c *EnumCharacteristic[E]) Code(ctx context.Context) (int, error) {
	v, err := c.Value(ctx)
	if err != nil {
		return 0, err
	}
	return c.Encode(v), nil
}

// SetCode decodes code and writes the resulting state.
func (c *EnumCharacteristic[E]) SetCode(ctx context.Context, code int) error {
	e, err := c.Decode(code)
	if err != nil {
		c.emit(log.OperationWrite, code, err, time.Now())
		return err
	}
	return c.Set(ctx, e)
}

// WriteValue implements AnyCharacteristic. It accepts a state of type E or
// an integer wire code.
func (c *EnumCharacteristic[E]) WriteValue(ctx context.Context, v any) error {
	if e, ok := v.(E); ok {
		return c.Set(ctx, e)
	}
	code, ok := convertValue[int](v)
	if !ok {
		err := fmt.Errorf("%s: %w: cannot use %T as enum code", c.identity.Name, ErrInvalidValue, v)
		c.emit(log.OperationWrite, v, err, time.Now())
		return err
	}
	return c.SetCode(ctx, code)
}

// Info returns a description including the valid codes.
func (c *EnumCharacteristic[E]) Info() *CharacteristicInfo {
	info := c.Characteristic.Info()
	info.ValidValues = make([]int, len(c.states))
	info.ValidNames = make([]string, len(c.states))
	for i, s := range c.states {
		info.ValidValues[i] = int(s)
		info.ValidNames[i] = s.String()
	}
	return info
}
