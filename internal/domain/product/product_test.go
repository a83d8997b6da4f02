package product

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

type stubRepository struct {
	Repository
	modules    map[uint]*Module
	components map[uint]*Component
	addons     map[uint]*Addon
	features   map[uint]*Feature
}

func (s *stubRepository) GetModule(_ context.Context, id uint) (*Module, error) {
	if m, ok := s.modules[id]; ok {
		return m, nil
	}
	return nil, ErrModuleNotFound
}

func (s *stubRepository) GetComponent(_ context.Context, id uint) (*Component, error) {
	if c, ok := s.components[id]; ok {
		return c, nil
	}
	return nil, ErrComponentNotFound
}

func (s *stubRepository) GetAddon(_ context.Context, id uint) (*Addon, error) {
	if a, ok := s.addons[id]; ok {
		return a, nil
	}
	return nil, ErrAddonNotFound
}

func (s *stubRepository) GetFeature(_ context.Context, id uint) (*Feature, error) {
	if f, ok := s.features[id]; ok {
		return f, nil
	}
	return nil, ErrFeatureNotFound
}

func newStub() *stubRepository {
	return &stubRepository{
		modules: map[uint]*Module{
			1: {ID: 1, ProductID: 1, Name: "Billing"},
			2: {ID: 2, ProductID: 1, Name: "Reports"},
			3: {ID: 3, ProductID: 2, Name: "Other product"},
		},
		components: map[uint]*Component{
			10: {ID: 10, ModuleID: 1, Name: "Invoices"},
			20: {ID: 20, ModuleID: 2, Name: "Exports"},
		},
		addons:   map[uint]*Addon{5: {ID: 5, ProductID: 1, Name: "SSO"}},
		features: map[uint]*Feature{7: {ID: 7, EpicID: 1, Name: "CSV export"}},
	}
}

func TestNewProduct(t *testing.T) {
	p, err := NewProduct(" crm ", "Customer Relations")
	require.NoError(t, err)
	assert.Equal(t, "CRM", p.Code)

	_, err = NewProduct("1AB", "x")
	assert.Error(t, err)
	_, err = NewProduct("CRM", " ")
	assert.Error(t, err)
}

func TestFormatIssueKey(t *testing.T) {
	assert.Equal(t, "CRM-B001", FormatIssueKey("CRM", IssueKindTicket, 1))
	assert.Equal(t, "CRM-T042", FormatIssueKey("CRM", IssueKindDevTask, 42))
	assert.Equal(t, "HR-B1234", FormatIssueKey("HR", IssueKindTicket, 1234))
}

func TestValidateStructure(t *testing.T) {
	ctx := context.Background()
	repo := newStub()

	tests := []struct {
		name    string
		refs    StructureRefs
		wantErr error
	}{
		{"empty", StructureRefs{}, nil},
		{"module and its component", StructureRefs{ModuleID: uintPtr(1), ComponentID: uintPtr(10)}, nil},
		{"component from another module", StructureRefs{ModuleID: uintPtr(1), ComponentID: uintPtr(20)}, ErrComponentNotInModule},
		{"unknown module", StructureRefs{ModuleID: uintPtr(99)}, ErrModuleNotFound},
		{"module of another product", StructureRefs{ModuleID: uintPtr(3)}, ErrModuleNotFound},
		{"unknown component", StructureRefs{ModuleID: uintPtr(1), ComponentID: uintPtr(99)}, ErrComponentNotFound},
		{"addon and feature", StructureRefs{AddonID: uintPtr(5), FeatureID: uintPtr(7)}, nil},
		{"unknown feature", StructureRefs{FeatureID: uintPtr(8)}, ErrFeatureNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStructure(ctx, repo, 1, tt.refs)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestValidateStructure_ComponentWithoutModule(t *testing.T) {
	err := ValidateStructure(context.Background(), newStub(), 1, StructureRefs{ComponentID: uintPtr(10)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires its module")
}
