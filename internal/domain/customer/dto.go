package customer

import "github.com/nippo-dev/nippo-backend-go/internal/pkg/validator"

type CreateCustomerRequest struct {
	Name          string  `json:"name"`
	Address       *string `json:"address"`
	Phone         *string `json:"phone"`
	ContactPerson *string `json:"contact_person"`
	Email         *string `json:"email"`
	Notes         *string `json:"notes"`
}

func (r *CreateCustomerRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}
	if r.Email != nil && *r.Email != "" && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}
	if r.Phone != nil && len(*r.Phone) > 20 {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone must not exceed 20 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateCustomerRequest carries partial updates; nil fields are left unchanged.
type UpdateCustomerRequest struct {
	Name          *string `json:"name"`
	Address       *string `json:"address"`
	Phone         *string `json:"phone"`
	ContactPerson *string `json:"contact_person"`
	Email         *string `json:"email"`
	Notes         *string `json:"notes"`
}

func (r *UpdateCustomerRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if r.Email != nil && *r.Email != "" && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CustomerResponse struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Address       *string `json:"address"`
	Phone         *string `json:"phone"`
	ContactPerson *string `json:"contact_person"`
	Email         *string `json:"email"`
	Notes         *string `json:"notes"`
	IsActive      bool    `json:"is_active"`
}

func NewCustomerResponse(c Customer) CustomerResponse {
	return CustomerResponse{
		ID:            c.ID,
		Name:          c.Name,
		Address:       c.Address,
		Phone:         c.Phone,
		ContactPerson: c.ContactPerson,
		Email:         c.Email,
		Notes:         c.Notes,
		IsActive:      c.IsActive,
	}
}
