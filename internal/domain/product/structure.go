package product

import (
	"context"
	"fmt"
)

// StructureRefs are the optional product structure IDs of a dev task.
type StructureRefs struct {
	ModuleID    *uint
	ComponentID *uint
	AddonID     *uint
	FeatureID   *uint
}

// ValidateStructure checks that every referenced structure entity exists,
// belongs to productID, and that the component sits under the module.
func ValidateStructure(ctx context.Context, repo Repository, productID uint, refs StructureRefs) error {
	if refs.ComponentID != nil && refs.ModuleID == nil {
		return fmt.Errorf("a component requires its module")
	}

	if refs.ModuleID != nil {
		m, err := repo.GetModule(ctx, *refs.ModuleID)
		if err != nil {
			return err
		}
		if m.ProductID != productID {
			return fmt.Errorf("%w: module %d", ErrModuleNotFound, m.ID)
		}
		if refs.ComponentID != nil {
			c, err := repo.GetComponent(ctx, *refs.ComponentID)
			if err != nil {
				return err
			}
			if c.ModuleID != m.ID {
				return ErrComponentNotInModule
			}
		}
	}

	if refs.AddonID != nil {
		a, err := repo.GetAddon(ctx, *refs.AddonID)
		if err != nil {
			return err
		}
		if a.ProductID != productID {
			return fmt.Errorf("%w: addon %d", ErrAddonNotFound, a.ID)
		}
	}

	if refs.FeatureID != nil {
		if _, err := repo.GetFeature(ctx, *refs.FeatureID); err != nil {
			return err
		}
	}
	return nil
}
