package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kumawatvinit/ShopSpot/internal/application"
	"github.com/kumawatvinit/ShopSpot/pkg/response"
)

// fail translates a flow error into the response envelope. Anything outside
// the known taxonomy becomes a 500 carrying the generic message plus the
// underlying error detail; nothing propagates past the request boundary.
func fail(c *gin.Context, err error, fallback string) {
	var ve *application.ValidationError
	switch {
	case errors.As(err, &ve):
		response.Error[any](c, http.StatusBadRequest, ve.Message, nil)
	case errors.Is(err, application.ErrEmailTaken):
		response.Error[any](c, http.StatusBadRequest, "Already registered! Please login", nil)
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusBadRequest, "Email is not registered!", nil)
	case errors.Is(err, application.ErrWrongPassword):
		response.Error[any](c, http.StatusBadRequest, "Wrong password!", nil)
	case errors.Is(err, application.ErrWrongAnswer):
		response.Error[any](c, http.StatusBadRequest, "Wrong answer!", nil)
	case errors.Is(err, application.ErrCategoryExists):
		response.Error[any](c, http.StatusBadRequest, "Category already exists", nil)
	case errors.Is(err, application.ErrCategoryNotFound):
		response.Error[any](c, http.StatusNotFound, "Category does not exist", nil)
	case errors.Is(err, application.ErrProductExists):
		response.Error[any](c, http.StatusBadRequest, "Product already exists", nil)
	case errors.Is(err, application.ErrProductNotFound):
		response.Error[any](c, http.StatusNotFound, "Product does not exist", nil)
	case errors.Is(err, application.ErrOrderNotFound):
		response.Error[any](c, http.StatusNotFound, "Order does not exist", nil)
	case errors.Is(err, application.ErrPaymentFailed):
		response.Error[any](c, http.StatusPaymentRequired, "Payment failed", err.Error())
	default:
		response.Error[any](c, http.StatusInternalServerError, fallback, err.Error())
	}
}
