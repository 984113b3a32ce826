// Package form maps the raw product form to a validated record. Every
// field arrives as text, numeric ones included; coercion to numbers only
// happens on a successful submit.
package form

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/stocklight/stocklight/internal/model"
)

var (
	priceRegex = regexp.MustCompile(`^\d*\.?\d*$`)
	stockRegex = regexp.MustCompile(`^\d*$`)
)

// AcceptPrice reports whether a price field may hold candidate: digits
// with at most one decimal point. The empty string is accepted so the
// field can be cleared while typing. Editors apply this per keystroke and
// keep the prior value when it returns false; nothing is ever raised.
func AcceptPrice(candidate string) bool {
	return priceRegex.MatchString(candidate)
}

// AcceptStock is the digit-only counterpart of AcceptPrice.
func AcceptStock(candidate string) bool {
	return stockRegex.MatchString(candidate)
}

// SplitTags splits comma-separated free text into an ordered tag list,
// trimming each segment and dropping empty ones.
func SplitTags(s string) []string {
	var tags []string
	for _, seg := range strings.Split(s, ",") {
		if seg = strings.TrimSpace(seg); seg != "" {
			tags = append(tags, seg)
		}
	}
	return tags
}

// Raw is the product form as submitted.
type Raw struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"notblank"`
	Category    string `json:"category" validate:"notblank"`
	Price       string `json:"price" validate:"notblank"`
	Stock       string `json:"stock" validate:"notblank"`
	Description string `json:"description"`
	Tags        string `json:"tags"`
}

// FieldErrors maps field name to a display message. It is non-empty
// whenever validation fails.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	return fmt.Sprintf("invalid fields: %s", strings.Join(fields, ", "))
}

var requiredMessages = map[string]string{
	"name":     "*Product name is required",
	"category": "*Category is required",
	"price":    "*Price is required",
	"stock":    "*Stock is required",
}

// Validator validates and normalizes raw product forms.
type Validator struct {
	v *validator.Validate
}

// New creates a form validator. It returns an error if the custom
// validation registration fails.
func New() (*Validator, error) {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)

	if err := v.RegisterValidation("notblank", validateNotBlank); err != nil {
		return nil, fmt.Errorf("register notblank validator: %w", err)
	}

	return &Validator{v: v}, nil
}

// Validate checks the raw form and, when every field passes, returns the
// normalized record. Errors are independent per field; the record is only
// usable when the returned FieldErrors is nil.
//
// Trusted editors gate price/stock input through AcceptPrice/AcceptStock,
// so leftover non-numeric text normally cannot reach here; the content
// checks below cover callers that skip the gate.
func (fv *Validator) Validate(raw Raw) (model.Product, FieldErrors) {
	errs := FieldErrors{}

	if err := fv.v.Struct(raw); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			errs["form"] = err.Error()
			return model.Product{}, errs
		}
		for _, fe := range verrs {
			errs[fe.Field()] = requiredMessages[fe.Field()]
		}
	}

	if _, ok := errs["price"]; !ok && !AcceptPrice(strings.TrimSpace(raw.Price)) {
		errs["price"] = "*Price must be a number"
	}
	if _, ok := errs["stock"]; !ok && !AcceptStock(strings.TrimSpace(raw.Stock)) {
		errs["stock"] = "*Stock must be a whole number"
	}

	var id int64
	if s := strings.TrimSpace(raw.ID); s != "" {
		parsed, err := strconv.ParseInt(s, 10, 64)
		if err != nil || parsed <= 0 {
			errs["id"] = "*Id must be a positive number"
		} else {
			id = parsed
		}
	}

	if len(errs) > 0 {
		return model.Product{}, errs
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(raw.Price), 64)
	if err != nil {
		errs["price"] = "*Price must be a number"
	}
	stock, err := strconv.Atoi(strings.TrimSpace(raw.Stock))
	if err != nil {
		errs["stock"] = "*Stock must be a whole number"
	}
	if len(errs) > 0 {
		return model.Product{}, errs
	}

	return model.Product{
		ID:          id,
		Name:        strings.TrimSpace(raw.Name),
		Category:    strings.TrimSpace(raw.Category),
		Price:       price,
		Stock:       stock,
		Description: strings.TrimSpace(raw.Description),
		Tags:        SplitTags(raw.Tags),
	}, nil
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}
