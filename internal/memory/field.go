package memory

import "github.com/thelolagemann/gbcore/internal/types"

// Fixed is the set of fixed width kinds a Field may hold.
type Fixed interface {
	bool | int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 | float32 | float64
}

// Field is a piece of state outside of a component's banks that is
// included in its savestate, such as a counter or a flag.
type Field interface {
	Name() string
	// Size returns the number of bytes the field occupies in a savestate.
	Size() int
	Save(s *types.State)
	Load(s *types.State)
}

type variable[T Fixed] struct {
	name string
	ptr  *T
}

// Var returns a Field that persists the value pointed to by p.
func Var[T Fixed](name string, p *T) Field {
	if p == nil {
		panic("memory: nil field " + name)
	}
	return &variable[T]{name: name, ptr: p}
}

func (v *variable[T]) Name() string { return v.name }

func (v *variable[T]) Size() int {
	switch any(v.ptr).(type) {
	case *bool, *int8, *uint8:
		return 1
	case *int16, *uint16:
		return 2
	case *int32, *uint32, *float32:
		return 4
	default:
		return 8
	}
}

func (v *variable[T]) Save(s *types.State) {
	switch p := any(v.ptr).(type) {
	case *bool:
		s.WriteBool(*p)
	case *int8:
		s.Write8(uint8(*p))
	case *uint8:
		s.Write8(*p)
	case *int16:
		s.Write16(uint16(*p))
	case *uint16:
		s.Write16(*p)
	case *int32:
		s.Write32(uint32(*p))
	case *uint32:
		s.Write32(*p)
	case *int64:
		s.Write64(uint64(*p))
	case *uint64:
		s.Write64(*p)
	case *float32:
		s.WriteFloat32(*p)
	case *float64:
		s.WriteFloat64(*p)
	}
}

func (v *variable[T]) Load(s *types.State) {
	switch p := any(v.ptr).(type) {
	case *bool:
		*p = s.ReadBool()
	case *int8:
		*p = int8(s.Read8())
	case *uint8:
		*p = s.Read8()
	case *int16:
		*p = int16(s.Read16())
	case *uint16:
		*p = s.Read16()
	case *int32:
		*p = int32(s.Read32())
	case *uint32:
		*p = s.Read32()
	case *int64:
		*p = int64(s.Read64())
	case *uint64:
		*p = s.Read64()
	case *float32:
		*p = s.ReadFloat32()
	case *float64:
		*p = s.ReadFloat64()
	}
}

// Register appends fields to the component's savestate, in order.
func (c *Component) Register(fields ...Field) {
	c.fields = append(c.fields, fields...)
}

// Fields returns the registered fields.
func (c *Component) Fields() []Field {
	return c.fields
}
