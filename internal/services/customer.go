package services

import (
	"strings"

	"gorm.io/gorm"

	"github.com/jjbarja/ferreteria/internal/models"
	"github.com/jjbarja/ferreteria/internal/validation"
)

type CustomerInput struct {
	FiscalID   string `json:"fiscal_id"`
	FiscalName string `json:"fiscal_name"`
	TradeName  string `json:"trade_name"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	Province   string `json:"province"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

// CustomerService owns customer records. There is deliberately no update
// operation; editing means delete and recreate.
type CustomerService struct{ DB *gorm.DB }

func NewCustomerService(db *gorm.DB) *CustomerService { return &CustomerService{DB: db} }

func (s *CustomerService) Add(in CustomerInput) (*models.Customer, error) {
	v := validation.Violations{}
	validation.Required("fiscal_id", in.FiscalID, v)
	validation.Required("fiscal_name", in.FiscalName, v)
	if err := v.Err(); err != nil {
		return nil, err
	}
	c := models.Customer{
		FiscalID:   strings.TrimSpace(in.FiscalID),
		FiscalName: strings.TrimSpace(in.FiscalName),
		TradeName:  in.TradeName,
		Address:    in.Address,
		PostalCode: in.PostalCode,
		City:       in.City,
		Province:   in.Province,
		Country:    in.Country,
		Phone:      in.Phone,
	}
	if err := s.DB.Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CustomerService) Delete(id uint) error {
	res := s.DB.Delete(&models.Customer{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *CustomerService) List() ([]models.Customer, error) {
	var customers []models.Customer
	if err := s.DB.Order("id").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// Search matches the term case-insensitively against fiscal name, trade
// name and address.
func (s *CustomerService) Search(term string) ([]models.Customer, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return s.List()
	}
	like := "%" + term + "%"
	var customers []models.Customer
	err := s.DB.
		Where("lower(fiscal_name) LIKE ? OR lower(trade_name) LIKE ? OR lower(address) LIKE ?", like, like, like).
		Order("id").Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}
