package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/jjbarja/ferreteria/internal/models"
	"github.com/jjbarja/ferreteria/internal/validation"
)

// ErrNotFound is returned when a referenced row no longer exists, e.g. a
// delete against a stale selection.
var ErrNotFound = errors.New("not_found")

// ProductInput carries the editable product fields for create and update.
type ProductInput struct {
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
}

func (in ProductInput) validate() error {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.Required("code", in.Code, v)
	validation.NonNegativeFloat("unit_price", in.UnitPrice, v)
	return v.Err()
}

// CatalogService owns product CRUD and lookups.
type CatalogService struct{ DB *gorm.DB }

func NewCatalogService(db *gorm.DB) *CatalogService { return &CatalogService{DB: db} }

func (s *CatalogService) Add(in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p := models.Product{
		Name:        strings.TrimSpace(in.Name),
		Code:        strings.TrimSpace(in.Code),
		Description: in.Description,
		UnitPrice:   in.UnitPrice,
		Quantity:    in.Quantity,
	}
	if err := s.DB.Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Update overwrites every editable field of the product.
func (s *CatalogService) Update(id uint, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var p models.Product
	if err := s.DB.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	p.Name = strings.TrimSpace(in.Name)
	p.Code = strings.TrimSpace(in.Code)
	p.Description = in.Description
	p.UnitPrice = in.UnitPrice
	p.Quantity = in.Quantity
	if err := s.DB.Save(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes the product row. Historical ledger rows keep referring to
// the product by description only, so no cascade check is made.
func (s *CatalogService) Delete(id uint) error {
	res := s.DB.Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *CatalogService) List() ([]models.Product, error) {
	var products []models.Product
	if err := s.DB.Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *CatalogService) Get(id uint) (*models.Product, error) {
	var p models.Product
	if err := s.DB.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByCode returns the first product with exactly this code. Backs the
// barcode-scan flow: a miss means the UI offers to create the product.
func (s *CatalogService) FindByCode(code string) (*models.Product, error) {
	var p models.Product
	if err := s.DB.Where("code = ?", code).Order("id").First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Search matches the term case-insensitively against product names and as a
// plain substring of the code.
func (s *CatalogService) Search(term string) ([]models.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.List()
	}
	like := "%" + strings.ToLower(term) + "%"
	var products []models.Product
	err := s.DB.
		Where("lower(name) LIKE ? OR code LIKE ?", like, "%"+term+"%").
		Order("id").Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
