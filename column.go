package owid

import "fmt"

// Column interface defines the methods the columns of DFcore must support
type Column interface {
	CC

	Copy() Column
	Data() any
	Element(row int) any
	Len() int
}

// CC interface defines the methods of ColCore
type CC interface {
	Core() *ColCore
	DataType() DataTypes
	Name() string
	Rename(newName string) error
}

// *********** ColCore ***********

// ColCore implements the nucleus of the Column interface.
type ColCore struct {
	name string
	dt   DataTypes
}

func NewColCore(dt DataTypes, ops ...ColOpt) (*ColCore, error) {
	c := &ColCore{dt: dt}

	for _, op := range ops {
		if e := op(c); e != nil {
			return nil, e
		}
	}

	return c, nil
}

// *********** Setters ***********

type ColOpt func(c CC) error

func ColDataType(dt DataTypes) ColOpt {
	return func(c CC) error {
		if c == nil {
			return fmt.Errorf("nil column to ColDataType")
		}

		c.Core().dt = dt

		return nil
	}
}

func ColName(name string) ColOpt {
	return func(c CC) error {
		if c == nil {
			return fmt.Errorf("nil column to ColName")
		}

		if c.Name() != "" {
			return fmt.Errorf("column already named -- use Rename method")
		}

		if !validName(name) {
			return fmt.Errorf("invalid column name: %q", name)
		}

		c.Core().name = name

		return nil
	}
}

// *********** Methods ***********

func (c *ColCore) Copy() *ColCore {
	return &ColCore{name: c.name, dt: c.dt}
}

// Core returns itself so that types embedding *ColCore satisfy CC.
func (c *ColCore) Core() *ColCore {
	return c
}

func (c *ColCore) DataType() DataTypes {
	return c.dt
}

func (c *ColCore) Name() string {
	return c.name
}

func (c *ColCore) Rename(newName string) error {
	if !validName(newName) {
		return fmt.Errorf("invalid column name: %q", newName)
	}

	c.name = newName

	return nil
}
