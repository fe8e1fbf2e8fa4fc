package httpapi

import (
	"errors"
	"math"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/gofiber/fiber/v2"
	"github.com/techmaster-vietnam/goerrorkit"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 0)),
	)
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		// bcrypt ignores input past 72 bytes
		validation.Field(&r.Password, validation.Required, validation.Length(6, 72)),
	)
}

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Description, validation.Length(0, 500)),
	)
}

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	CategoryID  int64   `json:"categoryId"`
}

func (r CreateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Price, validation.Required, validation.Min(0.01), validation.By(twoDecimals)),
		validation.Field(&r.Stock, validation.Min(0)),
		validation.Field(&r.CategoryID, validation.Required, validation.Min(1)),
	)
}

func twoDecimals(value interface{}) error {
	price, _ := value.(float64)
	if math.Abs(price*100-math.Round(price*100)) > 1e-6 {
		return errors.New("must have at most two decimal places")
	}
	return nil
}

type AddToCartRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

func (r AddToCartRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, validation.Required, validation.Min(1)),
		validation.Field(&r.Quantity, validation.Required, validation.Min(1)),
	)
}

type UpdateCartRequest struct {
	Quantity int `json:"quantity"`
}

func (r UpdateCartRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Quantity, validation.Required, validation.Min(1)),
	)
}

// bind parses the JSON body into req and validates it.
func bind(c *fiber.Ctx, req validation.Validatable) error {
	if err := c.BodyParser(req); err != nil {
		return goerrorkit.NewValidationError("Invalid request body", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if err := req.Validate(); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	fields := map[string]interface{}{}
	var errs validation.Errors
	if errors.As(err, &errs) {
		for field, fieldErr := range errs {
			fields[field] = fieldErr.Error()
		}
	} else {
		fields["error"] = err.Error()
	}
	return goerrorkit.NewValidationError("Validation failed", fields)
}
