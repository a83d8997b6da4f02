package models

type ProductModel struct {
	ID                   uint   `gorm:"primaryKey"`
	Code                 string `gorm:"uniqueIndex;size:10;not null"`
	Name                 string `gorm:"size:100;not null"`
	DefaultImplementorID *uint
	DefaultDeveloperID   *uint
	DefaultTesterID      *uint
	CreatedAt            int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt            int64 `gorm:"autoUpdateTime:milli;not null"`
}

func (ProductModel) TableName() string {
	return "products"
}

type ProductModuleModel struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID uint   `gorm:"not null;index"`
	Name      string `gorm:"size:100;not null"`
}

func (ProductModuleModel) TableName() string {
	return "product_modules"
}

type ProductComponentModel struct {
	ID       uint   `gorm:"primaryKey"`
	ModuleID uint   `gorm:"not null;index"`
	Name     string `gorm:"size:100;not null"`
}

func (ProductComponentModel) TableName() string {
	return "product_components"
}

type ProductAddonModel struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID uint   `gorm:"not null;index"`
	Name      string `gorm:"size:100;not null"`
}

func (ProductAddonModel) TableName() string {
	return "product_addons"
}

type ProductEpicModel struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID uint   `gorm:"not null;index"`
	Name      string `gorm:"size:100;not null"`
}

func (ProductEpicModel) TableName() string {
	return "product_epics"
}

type ProductFeatureModel struct {
	ID     uint   `gorm:"primaryKey"`
	EpicID uint   `gorm:"not null;index"`
	Name   string `gorm:"size:100;not null"`
}

func (ProductFeatureModel) TableName() string {
	return "product_features"
}

// IssueSequenceModel holds the last issued number per product and kind.
type IssueSequenceModel struct {
	ProductID uint   `gorm:"primaryKey;autoIncrement:false"`
	Kind      string `gorm:"primaryKey;size:1"`
	LastValue int64  `gorm:"not null;default:0"`
}

func (IssueSequenceModel) TableName() string {
	return "issue_sequences"
}
