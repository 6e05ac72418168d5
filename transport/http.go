package transport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	productapp "github.com/muhammadheryan/store/application/product"
	userapp "github.com/muhammadheryan/store/application/user"
	"github.com/muhammadheryan/store/constant"
	"github.com/muhammadheryan/store/model"
	"github.com/muhammadheryan/store/utils/errors"
	"github.com/muhammadheryan/store/utils/logger"
	validatorx "github.com/muhammadheryan/store/utils/validator"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

const apiPrefix = "/api/v1"

type RestHandler struct {
	ProductApp productapp.ProductApp
	UserApp    userapp.UserApp
}

func NewTransport(productApp productapp.ProductApp, userApp userapp.UserApp, realm string) http.Handler {
	router := mux.NewRouter()

	rh := &RestHandler{
		ProductApp: productApp,
		UserApp:    userApp,
	}

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Public routes
	router.HandleFunc("/health", rh.Health).Methods(http.MethodGet)

	// protected routes
	anyRole := []string{constant.RoleUser, constant.RoleAdmin}
	router.Handle(apiPrefix+"/products", RequireRoles(rh.ListProducts, anyRole...)).Methods(http.MethodGet)
	router.Handle(apiPrefix+"/products", RequireRoles(rh.CreateProduct, constant.RoleAdmin)).Methods(http.MethodPost)
	router.Handle(apiPrefix+"/products/by-name", RequireRoles(rh.GetProductByName, anyRole...)).Methods(http.MethodGet)
	router.Handle(apiPrefix+"/products/buy", RequireRoles(rh.BuyProduct, anyRole...)).Methods(http.MethodPost)
	router.Handle(apiPrefix+"/products/change-price", RequireRoles(rh.ChangePrice, constant.RoleAdmin)).Methods(http.MethodPut)
	router.Handle(apiPrefix+"/products/{id}", RequireRoles(rh.GetProduct, anyRole...)).Methods(http.MethodGet)
	router.Handle(apiPrefix+"/products/{id}", RequireRoles(rh.DeleteProduct, constant.RoleAdmin)).Methods(http.MethodDelete)

	// unmatched requests bypass router middleware, so they are wrapped here
	router.NotFoundHandler = LoggingMiddleware()(http.HandlerFunc(rh.NotFound))
	router.MethodNotAllowedHandler = LoggingMiddleware()(http.HandlerFunc(rh.MethodNotAllowed))

	// middleware
	router.Use(LoggingMiddleware())
	router.Use(RecoveryMiddleware())
	router.Use(AuthMiddleware(userApp, realm))

	return router
}

// Health handler
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} model.ApiResponse
// @Router /health [get]
func (s *RestHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]string{"status": "UP"})
}

// ListProducts handler
// @Summary List products
// @Description Offset/limit window of products ordered by id. limit defaults to 10 and is capped at 50.
// @Tags Products
// @Produce json
// @Security BasicAuth
// @Param offset query int false "Rows to skip" default(0)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} model.ApiResponse{data=model.PaginatedProductResponse}
// @Failure 400 {object} model.ApiResponse{data=model.ErrorResponse}
// @Failure 401 {object} model.ApiResponse{data=model.ErrorResponse}
// @Router /api/v1/products [get]
func (s *RestHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit", productapp.DefaultLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := s.ProductApp.GetPaginatedProducts(r.Context(), offset, limit, baseURL(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, res)
}

// GetProduct handler
// @Summary Find product by id
// @Tags Products
// @Produce json
// @Security BasicAuth
// @Param id path int true "Product id"
// @Success 200 {object} model.ApiResponse{data=model.ProductResponse}
// @Failure 400 {object} model.ApiResponse{data=model.ErrorResponse}
// @Failure 404 {object} model.ApiResponse{data=model.ErrorResponse}
// @Router /api/v1/products/{id} [get]
func (s *RestHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := s.ProductApp.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, res)
}

// GetProductByName handler
// @Summary Find product by name
// @Description Case-insensitive lookup on the trimmed name.
// @Tags Products
// @Produce json
// @Security BasicAuth
// @Param name query string true "Product name"
// @Success 200 {object} model.ApiResponse{data=model.ProductResponse}
// @Failure 400 {object} model.ApiResponse{data=model.ErrorResponse}
// @Failure 404 {object} model.ApiResponse{data=model.ErrorResponse}
// @Router /api/v1/products/by-name [get]
func (s *RestHandler) GetProductByName(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	if !values.Has("name") {
		writeError(w, r, errors.SetCustomErrorf(constant.ErrInvalidRequest,
			"Missing required parameter [%s]. Please check the API documentation", "name"))
		return
	}

	query := model.ProductNameQuery{Name: values.Get("name")}
	if err := validatorx.ValidateStruct(&query); err != nil {
		writeError(w, r, validationError(r, err))
		return
	}

	res, err := s.ProductApp.FindByName(r.Context(), query.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, res)
}

// CreateProduct handler
// @Summary Create product
// @Tags Products
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param request body model.CreateProductRequest true "Create Product Request"
// @Success 201 {object} model.ApiResponse{data=model.ProductResponse}
// @Failure 400 {object} model.ApiResponse{data=model.ErrorResponse}
// @Failure 403 {object} model.ApiResponse{data=model.ErrorResponse}
// @Failure 409 {object} model.ApiResponse{data=model.ErrorResponse}
// @Router /api/v1/products [post]
func (s *RestHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req model.CreateProductRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := s.ProductApp.CreateProduct(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, res)
}

// BuyProduct handler
// @Summary Buy one unit of a product
// @Tags Products
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param request body model.BuyProductRequest true "Buy Product Request"
// @Success 200 {object} model.ApiResponse{data=model.ProductResponse}
// @Failure 400 {object} model.ApiResponse{data=model.ErrorResponse}
// @Failure 404 {object} model.ApiResponse{data=model.ErrorResponse}
// @Failure 409 {object} model.ApiResponse{data=model.ErrorResponse}
// @Router /api/v1/products/buy [post]
func (s *RestHandler) BuyProduct(w http.ResponseWriter, r *http.Request) {
	var req model.BuyProductRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := s.ProductApp.BuyProduct(r.Context(), req.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, res)
}

// ChangePrice handler
// @Summary Change product price
// @Tags Products
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param request body model.ChangePriceRequest true "Change Price Request"
// @Success 200 {object} model.ApiResponse{data=model.ProductResponse}
// @Failure 400 {object} model.ApiResponse{data=model.ErrorResponse}
// @Failure 403 {object} model.ApiResponse{data=model.ErrorResponse}
// @Failure 404 {object} model.ApiResponse{data=model.ErrorResponse}
// @Router /api/v1/products/change-price [put]
func (s *RestHandler) ChangePrice(w http.ResponseWriter, r *http.Request) {
	var req model.ChangePriceRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := s.ProductApp.ChangePrice(r.Context(), req.ID, *req.Price)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, res)
}

// DeleteProduct handler
// @Summary Delete product
// @Tags Products
// @Security BasicAuth
// @Param id path int true "Product id"
// @Success 204
// @Failure 400 {object} model.ApiResponse{data=model.ErrorResponse}
// @Failure 403 {object} model.ApiResponse{data=model.ErrorResponse}
// @Failure 404 {object} model.ApiResponse{data=model.ErrorResponse}
// @Router /api/v1/products/{id} [delete]
func (s *RestHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.ProductApp.DeleteProduct(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *RestHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, errors.SetCustomError(constant.ErrEndpointNotFound))
}

func (s *RestHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, errors.SetCustomError(constant.ErrMethodNotAllowed))
}

// decodeBody decodes a JSON request body into dst and validates it.
func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.Warn("[decodeBody] malformed request body", zap.String("path", r.URL.Path), zap.String("error", err.Error()))
		return errors.SetCustomErrorf(constant.ErrInvalidRequest, "Malformed JSON request body")
	}
	if err := validatorx.ValidateStruct(dst); err != nil {
		return validationError(r, err)
	}
	return nil
}

func validationError(r *http.Request, err error) error {
	msg := validatorx.Describe(err)
	logger.Warn("[validation] rejected request", zap.String("path", r.URL.Path), zap.String("message", msg))
	return errors.SetCustomErrorf(constant.ErrInvalidRequest, "%s", msg)
}

func typeMismatch(r *http.Request, name, value string) error {
	return errors.SetCustomErrorf(constant.ErrInvalidRequest,
		"Invalid parameter type for [%s] when calling the endpoint [%s]: expected [int], but got the value [%s]",
		name, r.URL.Path, value)
}

// queryInt reads an optional integer query parameter.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, typeMismatch(r, name, raw)
	}
	return n, nil
}

// pathID reads and validates the {id} path segment.
func pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, typeMismatch(r, "id", raw)
	}

	param := model.ProductIDParam{ID: id}
	if err := validatorx.ValidateStruct(&param); err != nil {
		return 0, validationError(r, err)
	}
	return id, nil
}

// baseURL is the absolute URL of the current endpoint without its query.
func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return fmt.Sprintf("%s://%s%s", scheme, r.Host, r.URL.Path)
}
