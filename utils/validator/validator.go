package validatorx

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	gpvalidator "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	maxPriceIntegerDigits  = 8
	maxPriceFractionDigits = 2
)

var (
	v   *gpvalidator.Validate
	mut sync.Mutex

	productNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	letterPattern      = regexp.MustCompile(`[A-Za-z]`)
)

// WrongProductNameMessage is reported when a lookup name fails the productname rule.
const WrongProductNameMessage = "Product name must contain at least one letter and can include only letters, digits, dash (-) and underscore (_)"

// messages maps "<json field>.<tag>" to the client-facing message.
var messages = map[string]string{
	"id.gt":                "Product id must be positive",
	"name.required":        "Name must not be blank",
	"name.notblank":        "Name must not be blank",
	"name.max":             "Product name must be at most 255 characters",
	"name.productname":     WrongProductNameMessage,
	"price.required":       "Price must not be null",
	"price.price_positive": "Price must be greater than 0",
	"price.price_digits":   fmt.Sprintf("Price must have at most %d digits and %d decimals", maxPriceIntegerDigits, maxPriceFractionDigits),
	"stock.min":            "Stock must be >= 0",
}

// Init initializes the validator singleton (idempotent)
func Init() {
	mut.Lock()
	defer mut.Unlock()
	if v != nil {
		return
	}

	validate := gpvalidator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	_ = validate.RegisterValidation("notblank", func(fl gpvalidator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = validate.RegisterValidation("productname", func(fl gpvalidator.FieldLevel) bool {
		return IsValidProductName(fl.Field().String())
	})
	_ = validate.RegisterValidation("price_positive", func(fl gpvalidator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && d.IsPositive()
	})
	_ = validate.RegisterValidation("price_digits", func(fl gpvalidator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && HasPriceDigits(d)
	})

	v = validate
}

// ValidateStruct validates a struct using go-playground/validator
func ValidateStruct(s interface{}) error {
	if v == nil {
		Init()
	}
	return v.Struct(s)
}

// IsValidProductName reports whether name has at least one letter and only letters, digits, '-' and '_'.
func IsValidProductName(name string) bool {
	return productNamePattern.MatchString(name) && letterPattern.MatchString(name)
}

// HasPriceDigits reports whether d fits DECIMAL(10,2).
func HasPriceDigits(d decimal.Decimal) bool {
	fraction := 0
	if d.Exponent() < 0 {
		fraction = int(-d.Exponent())
	}
	integer := 0
	if intPart := d.Abs().Truncate(0); !intPart.IsZero() {
		integer = len(intPart.String())
	}
	return integer <= maxPriceIntegerDigits && fraction <= maxPriceFractionDigits
}

// Describe turns a validation error into the message returned to clients.
// Errors that are not validation errors are returned as-is.
func Describe(err error) string {
	verrs, ok := err.(gpvalidator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("Field [%s] failed the [%s] rule", fe.Field(), fe.Tag())
		}
		parts = append(parts, fmt.Sprintf("%s, but got the value [%s]", msg, printable(fe.Value())))
	}
	return strings.Join(parts, ";")
}

func printable(value interface{}) string {
	if value == nil {
		return "null"
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return "null"
		}
		return fmt.Sprintf("%v", rv.Elem().Interface())
	}
	return fmt.Sprintf("%v", value)
}
