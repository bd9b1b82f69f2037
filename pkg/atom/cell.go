package atom

// cell holds a value that may be set once.
// The zero cell is unset.
type cell[T any] struct {
	v  T
	ok bool
}

func (c *cell[T]) get(field string) (T, error) {
	if !c.ok {
		var zero T
		return zero, &FieldError{Field: field, Err: ErrFieldNotSet}
	}
	return c.v, nil
}

// set stores v, unless something is already there. The first value wins.
func (c *cell[T]) set(field string, v T) error {
	if c.ok {
		return &FieldError{Field: field, Err: ErrFieldImmutable}
	}
	c.v, c.ok = v, true
	return nil
}

func (c *cell[T]) isSet() bool { return c.ok }
