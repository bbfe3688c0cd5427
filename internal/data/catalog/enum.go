package catalog

import (
	"reflect"
	"sync"
)

// Enumerant maps one enum constant to its wire name. Null marks the constant
// that stands for an absent wire value; constants with neither a name nor
// Null are not part of the wire format.
type Enumerant struct {
	Value any
	Name  string
	Null  bool
}

// Enum is the wire table of an enumeration type.
type Enum struct {
	typ        reflect.Type
	enumerants []Enumerant
	byName     map[string]int
	null       int
}

var enums sync.Map // reflect.Type -> *Enum

// NewEnum validates the enumerants of t.
func NewEnum(t reflect.Type, enumerants ...Enumerant) (*Enum, error) {
	e := &Enum{typ: t, byName: make(map[string]int), null: -1}
	for _, en := range enumerants {
		if reflect.TypeOf(en.Value) != t {
			return nil, &ConfigError{Type: t, Name: en.Name, Reason: "enumerant has wrong type"}
		}
		if en.Name == "" && !en.Null {
			continue
		}
		if en.Null {
			if e.null >= 0 {
				return nil, &ConfigError{Type: t, Name: "", Reason: "more than one null enumerant"}
			}
			en.Name = ""
			e.null = len(e.enumerants)
		} else if _, dup := e.byName[en.Name]; dup {
			return nil, &ConfigError{Type: t, Name: en.Name, Reason: "two enumerants have the same name"}
		} else {
			e.byName[en.Name] = len(e.enumerants)
		}
		e.enumerants = append(e.enumerants, en)
	}
	return e, nil
}

// RegisterEnum installs the wire table for t.
func RegisterEnum(t reflect.Type, enumerants ...Enumerant) error {
	e, err := NewEnum(t, enumerants...)
	if err != nil {
		return err
	}
	enums.Store(t, e)
	return nil
}

// MustRegisterEnum is RegisterEnum for package initialization.
func MustRegisterEnum(t reflect.Type, enumerants ...Enumerant) {
	if err := RegisterEnum(t, enumerants...); err != nil {
		panic(err)
	}
}

// EnumOf returns the registered table for t.
func EnumOf(t reflect.Type) (*Enum, bool) {
	v, ok := enums.Load(t)
	if !ok {
		return nil, false
	}
	return v.(*Enum), true
}

// Name returns the wire name of v. The null enumerant has the empty name.
func (e *Enum) Name(v any) (string, bool) {
	for _, en := range e.enumerants {
		if en.Value == v {
			return en.Name, true
		}
	}
	return "", false
}

// Parse returns the constant for a wire name. The empty name resolves to the
// null enumerant when one exists.
func (e *Enum) Parse(name string) (any, bool) {
	if name == "" {
		return e.NullValue()
	}
	i, ok := e.byName[name]
	if !ok {
		return nil, false
	}
	return e.enumerants[i].Value, true
}

// NullValue returns the null enumerant.
func (e *Enum) NullValue() (any, bool) {
	if e.null < 0 {
		return nil, false
	}
	return e.enumerants[e.null].Value, true
}

// Enumerants returns the wire-visible constants in declaration order.
func (e *Enum) Enumerants() []Enumerant {
	return append([]Enumerant(nil), e.enumerants...)
}

func (e *Enum) Type() reflect.Type { return e.typ }
