package product

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrModuleNotFound    = errors.New("module not found")
	ErrComponentNotFound = errors.New("component not found")
	ErrAddonNotFound     = errors.New("addon not found")
	ErrFeatureNotFound   = errors.New("feature not found")
	// ErrComponentNotInModule is returned when a component is paired with a
	// module it does not belong to.
	ErrComponentNotInModule = errors.New("component does not belong to the selected module")
)

var codePattern = regexp.MustCompile(`^[A-Z][A-Z0-9]{1,9}$`)

// Product owns the issue key prefix and the default dev task roles.
type Product struct {
	ID                   uint
	Code                 string
	Name                 string
	DefaultImplementorID *uint
	DefaultDeveloperID   *uint
	DefaultTesterID      *uint
}

func NewProduct(code, name string) (*Product, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !codePattern.MatchString(code) {
		return nil, fmt.Errorf("product code must be 2-10 uppercase letters or digits starting with a letter, got %q", code)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	return &Product{Code: code, Name: name}, nil
}

type Module struct {
	ID        uint
	ProductID uint
	Name      string
}

type Component struct {
	ID       uint
	ModuleID uint
	Name     string
}

type Addon struct {
	ID        uint
	ProductID uint
	Name      string
}

type Epic struct {
	ID        uint
	ProductID uint
	Name      string
}

type Feature struct {
	ID     uint
	EpicID uint
	Name   string
}
