package seeds

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/systech-labs/deskflow/internal/domain/product"
	"github.com/systech-labs/deskflow/internal/shared/db"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

// Catalogue is the YAML description of the products a deployment supports.
type Catalogue struct {
	Products []ProductSeed `yaml:"products"`
}

type ProductSeed struct {
	Code     string       `yaml:"code"`
	Name     string       `yaml:"name"`
	Defaults RoleDefaults `yaml:"defaults,omitempty"`
	Modules  []ModuleSeed `yaml:"modules,omitempty"`
	Addons   []string     `yaml:"addons,omitempty"`
	Epics    []EpicSeed   `yaml:"epics,omitempty"`
}

// RoleDefaults pre-fill the three roles when a ticket becomes a dev task.
type RoleDefaults struct {
	ImplementorID *uint `yaml:"implementor_id,omitempty"`
	DeveloperID   *uint `yaml:"developer_id,omitempty"`
	TesterID      *uint `yaml:"tester_id,omitempty"`
}

type ModuleSeed struct {
	Name       string   `yaml:"name"`
	Components []string `yaml:"components,omitempty"`
}

type EpicSeed struct {
	Name     string   `yaml:"name"`
	Features []string `yaml:"features,omitempty"`
}

// LoadCatalogue loads a catalogue from a YAML file.
func LoadCatalogue(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue file: %w", err)
	}
	return ParseCatalogue(data)
}

func ParseCatalogue(data []byte) (*Catalogue, error) {
	var c Catalogue
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalogue: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks codes and names before anything is written.
func (c *Catalogue) Validate() error {
	if len(c.Products) == 0 {
		return errors.New("catalogue has no products")
	}

	seen := make(map[string]bool, len(c.Products))
	for i, p := range c.Products {
		np, err := product.NewProduct(p.Code, p.Name)
		if err != nil {
			return fmt.Errorf("product %d: %w", i+1, err)
		}
		if seen[np.Code] {
			return fmt.Errorf("product %s: duplicate code", np.Code)
		}
		seen[np.Code] = true

		for _, m := range p.Modules {
			if m.Name == "" {
				return fmt.Errorf("product %s: module name is required", np.Code)
			}
		}
		for _, e := range p.Epics {
			if e.Name == "" {
				return fmt.Errorf("product %s: epic name is required", np.Code)
			}
		}
	}
	return nil
}

// SeedResult counts what a run created and skipped.
type SeedResult struct {
	Created []string
	Skipped []string
}

// Seeder writes a catalogue through the product repository. Products whose
// code already exists are skipped, so running it twice is harmless.
type Seeder struct {
	products  product.Repository
	txManager db.Transactor
	logger    logger.Interface
}

func NewSeeder(products product.Repository, txManager db.Transactor, logger logger.Interface) *Seeder {
	return &Seeder{products: products, txManager: txManager, logger: logger}
}

func (s *Seeder) Seed(ctx context.Context, c *Catalogue) (*SeedResult, error) {
	result := &SeedResult{}

	for _, seed := range c.Products {
		p, err := product.NewProduct(seed.Code, seed.Name)
		if err != nil {
			return result, err
		}

		_, err = s.products.GetByCode(ctx, p.Code)
		if err == nil {
			s.logger.Infow("product already present, skipping", "code", p.Code)
			result.Skipped = append(result.Skipped, p.Code)
			continue
		}
		if !errors.Is(err, product.ErrProductNotFound) {
			return result, fmt.Errorf("failed to look up product %s: %w", p.Code, err)
		}

		p.DefaultImplementorID = seed.Defaults.ImplementorID
		p.DefaultDeveloperID = seed.Defaults.DeveloperID
		p.DefaultTesterID = seed.Defaults.TesterID

		if err := s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
			return s.createTree(txCtx, p, seed)
		}); err != nil {
			return result, fmt.Errorf("failed to seed product %s: %w", p.Code, err)
		}

		s.logger.Infow("product seeded", "code", p.Code, "id", p.ID)
		result.Created = append(result.Created, p.Code)
	}

	return result, nil
}

func (s *Seeder) createTree(ctx context.Context, p *product.Product, seed ProductSeed) error {
	if err := s.products.Create(ctx, p); err != nil {
		return err
	}

	for _, ms := range seed.Modules {
		m := &product.Module{ProductID: p.ID, Name: ms.Name}
		if err := s.products.CreateModule(ctx, m); err != nil {
			return err
		}
		for _, name := range ms.Components {
			if err := s.products.CreateComponent(ctx, &product.Component{ModuleID: m.ID, Name: name}); err != nil {
				return err
			}
		}
	}

	for _, name := range seed.Addons {
		if err := s.products.CreateAddon(ctx, &product.Addon{ProductID: p.ID, Name: name}); err != nil {
			return err
		}
	}

	for _, es := range seed.Epics {
		e := &product.Epic{ProductID: p.ID, Name: es.Name}
		if err := s.products.CreateEpic(ctx, e); err != nil {
			return err
		}
		for _, name := range es.Features {
			if err := s.products.CreateFeature(ctx, &product.Feature{EpicID: e.ID, Name: name}); err != nil {
				return err
			}
		}
	}
	return nil
}
