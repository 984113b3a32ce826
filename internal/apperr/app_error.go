package apperr

import "github.com/stocklight/stocklight/pkg/zerror"

const (
	ValidationErrorCode   = "VALIDATION_FAILED"
	ProductNotFoundCode   = "PRODUCT_NOT_FOUND"
	StoreUnavailableCode  = "STORE_UNAVAILABLE"
	InvalidViewLayoutCode = "INVALID_VIEW_LAYOUT"
)

var (
	ValidationErr        = zerror.NewValidationFailed(ValidationErrorCode, "validation error")
	ProductNotFoundErr   = zerror.NewNotFound(ProductNotFoundCode, "product not found")
	StoreUnavailableErr  = zerror.NewServiceUnavailable(StoreUnavailableCode, "record store unavailable")
	InvalidViewLayoutErr = zerror.NewBadRequest(InvalidViewLayoutCode, "unknown view layout")
)
