package models

import (
	"context"
	"fmt"
	"time"

	"github.com/benela/benela_backend/config"
	"github.com/benela/benela_backend/utils"
	"github.com/shopspring/decimal"
)

type Employee struct {
	ID       int     `gorm:"primary_key" json:"id"`
	FullName string  `gorm:"size:255;not null;index" json:"full_name"`
	Email    string  `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Phone    *string `gorm:"size:50" json:"phone"`
	// free text, not checked against departments
	Department *string          `gorm:"size:100;index" json:"department"`
	Role       *string          `gorm:"size:100" json:"role"`
	Salary     *decimal.Decimal `gorm:"type:decimal(20,4)" json:"salary"`
	Status     EmployeeStatus   `gorm:"size:20;not null;default:active;index" json:"status"`
	StartDate  *time.Time       `json:"start_date"`
	Notes      *string          `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time        `gorm:"autoCreateTime" json:"created_at"`
}

type NewEmployee struct {
	FullName   string           `json:"full_name" binding:"required,max=255"`
	Email      string           `json:"email" binding:"required,email"`
	Phone      *string          `json:"phone"`
	Department *string          `json:"department"`
	Role       *string          `json:"role"`
	Salary     *decimal.Decimal `json:"salary"`
	Status     EmployeeStatus   `json:"status" binding:"omitempty,oneof=active on_leave terminated"`
	StartDate  *time.Time       `json:"start_date"`
	Notes      *string          `json:"notes"`
}

type EmployeePatch struct {
	FullName   utils.Optional[string]          `json:"full_name"`
	Email      utils.Optional[string]          `json:"email"`
	Phone      utils.Optional[string]          `json:"phone"`
	Department utils.Optional[string]          `json:"department"`
	Role       utils.Optional[string]          `json:"role"`
	Salary     utils.Optional[decimal.Decimal] `json:"salary"`
	Status     utils.Optional[EmployeeStatus]  `json:"status"`
	StartDate  utils.Optional[time.Time]       `json:"start_date"`
	Notes      utils.Optional[string]          `json:"notes"`
}

func (p *EmployeePatch) apply() (updateMap, error) {
	m := updateMap{}
	if err := setValue(m, "full_name", p.FullName); err != nil {
		return nil, err
	}
	if err := setValue(m, "email", p.Email); err != nil {
		return nil, err
	}
	if p.Email.HasValue() && !utils.IsValidEmail(p.Email.Value) {
		return nil, invalidField("email")
	}
	if p.Phone.HasValue() {
		phone, err := normalizePhone(p.Phone.Value)
		if err != nil {
			return nil, err
		}
		p.Phone.Value = phone
	}
	setNullable(m, "phone", p.Phone)
	setNullable(m, "department", p.Department)
	setNullable(m, "role", p.Role)
	setNullable(m, "salary", p.Salary)
	if err := setEnum(m, "status", p.Status); err != nil {
		return nil, err
	}
	setNullable(m, "start_date", p.StartDate)
	setNullable(m, "notes", p.Notes)
	return m, nil
}

// normalizePhone stores phone numbers in E.164, using DEFAULT_PHONE_REGION
// for numbers written without a country code.
func normalizePhone(phone string) (string, error) {
	normalized, err := utils.NormalizePhone(phone, config.DefaultPhoneRegion())
	if err != nil {
		return "", fmt.Errorf("%w: phone: %v", utils.ErrValidation, err)
	}
	return normalized, nil
}

func normalizePhonePtr(phone *string) (*string, error) {
	if phone == nil || *phone == "" {
		return phone, nil
	}
	normalized, err := normalizePhone(*phone)
	if err != nil {
		return nil, err
	}
	return &normalized, nil
}

func CreateEmployee(ctx context.Context, input *NewEmployee) (*Employee, error) {
	if err := utils.ValidateUnique[Employee](ctx, "email", input.Email, 0); err != nil {
		return nil, err
	}
	phone, err := normalizePhonePtr(input.Phone)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = EmployeeStatusActive
	}
	db := config.GetDB()
	employee := Employee{
		FullName:   input.FullName,
		Email:      input.Email,
		Phone:      phone,
		Department: input.Department,
		Role:       input.Role,
		Salary:     input.Salary,
		Status:     status,
		StartDate:  input.StartDate,
		Notes:      input.Notes,
	}
	if err := db.WithContext(ctx).Create(&employee).Error; err != nil {
		config.LogError(config.GetLogger(), "Employee", "CreateEmployee", "create", input, err)
		return nil, utils.StoreError(err)
	}
	return &employee, nil
}

func GetEmployee(ctx context.Context, id int) (*Employee, error) {
	return utils.FetchModel[Employee](ctx, id)
}

func GetEmployees(ctx context.Context, params ListParams) ([]*Employee, error) {
	params = params.WithDefault(DefaultListLimit)
	return utils.FetchModels[Employee](ctx, "full_name ASC, id ASC", params.Skip, params.Limit)
}

func UpdateEmployee(ctx context.Context, id int, input *EmployeePatch) (*Employee, error) {
	if _, err := utils.FetchModel[Employee](ctx, id); err != nil {
		return nil, err
	}
	if input.Email.HasValue() {
		if err := utils.ValidateUnique[Employee](ctx, "email", input.Email.Value, id); err != nil {
			return nil, err
		}
	}
	updates, err := input.apply()
	if err != nil {
		return nil, err
	}
	return utils.UpdateModel[Employee](ctx, id, updates)
}

func DeleteEmployee(ctx context.Context, id int) error {
	return utils.DeleteModel[Employee](ctx, id)
}
