package handler

import (
	"strconv"

	"currency-management/internal/adapter/http/dto"
	"currency-management/internal/core/ports"
	"currency-management/pkg/apperror"
	"currency-management/pkg/response"

	"github.com/gin-gonic/gin"
)

// CurrencyHandler handles the /api/currencies endpoints.
type CurrencyHandler struct {
	currencySvc ports.CurrencyService
}

// NewCurrencyHandler creates a new currency handler.
func NewCurrencyHandler(currencySvc ports.CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{currencySvc: currencySvc}
}

// List returns every stored currency.
func (h *CurrencyHandler) List(c *gin.Context) {
	currencies, err := h.currencySvc.ListCurrencies(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToCurrencyResponses(currencies))
}

// ListPaged returns one page of currencies.
func (h *CurrencyHandler) ListPaged(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, dto.BindingError(err))
		return
	}

	page, err := h.currencySvc.ListCurrenciesPage(c.Request.Context(), q.ToPageRequest())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToCurrencyPageResponse(page))
}

// GetByCode looks a currency up by its code, case-insensitively.
func (h *CurrencyHandler) GetByCode(c *gin.Context) {
	currency, err := h.currencySvc.GetCurrencyByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToCurrencyResponse(currency))
}

// GetByID looks a currency up by its numeric id.
func (h *CurrencyHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	currency, err := h.currencySvc.GetCurrencyByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToCurrencyResponse(currency))
}

// Create stores a new currency and answers 200 with the stored record.
func (h *CurrencyHandler) Create(c *gin.Context) {
	var req dto.CurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, dto.BindingError(err))
		return
	}

	currency, err := h.currencySvc.CreateCurrency(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToCurrencyResponse(currency))
}

// Update replaces every client-editable field of an existing currency.
// The body is validated before the id is looked up.
func (h *CurrencyHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.CurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, dto.BindingError(err))
		return
	}

	currency, err := h.currencySvc.UpdateCurrency(c.Request.Context(), id, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToCurrencyResponse(currency))
}

// Delete removes a currency. Unknown ids still answer 204.
func (h *CurrencyHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.currencySvc.DeleteCurrency(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// pathID parses the :id path parameter, writing a 400 when it is not an integer.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, apperror.ValidationFields(apperror.FieldError{Field: "id", Message: "must be an integer"}))
		return 0, false
	}
	return id, true
}
