package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/errs"
	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/model"
	md "github.com/JasonDavD/biblioteca-bibliotech/pkg/middleware"
	"github.com/JasonDavD/biblioteca-bibliotech/pkg/validate"
	_ "github.com/JasonDavD/biblioteca-bibliotech/swagger"
)

type Handler struct {
	lendingSvc LendingService
	log        *zap.Logger
}

func New(lendingSvc LendingService, log *zap.Logger) *Handler {
	return &Handler{
		lendingSvc: lendingSvc,
		log:        log.Named("handler"),
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.POST("/loans", h.CreateLoan)
	api.GET("/loans", h.ListLoans)
	api.GET("/loans/due-soon", h.ListDueSoon)
	api.GET("/loans/overdue", h.ListOverdue)
	api.GET("/loans/stats", h.LoanStats)
	api.POST("/loans/sweep", h.SweepOverdue)
	api.GET("/loans/:id", h.GetLoan)
	api.POST("/loans/:id/return", h.ReturnLoan)
	api.POST("/loans/:id/extend", h.ExtendLoan)

	api.POST("/items", h.CreateItem)
	api.GET("/items/:id", h.GetItem)
	api.PATCH("/items/:id/capacity", h.ResizeCapacity)

	api.POST("/patrons", h.CreatePatron)
	api.GET("/patrons/overdue", h.ListPatronsWithOverdue)
	api.GET("/patrons/:id", h.GetPatron)
	api.GET("/patrons/:id/loans", h.PatronHistory)
	api.POST("/patrons/:id/activate", h.ActivatePatron)
	api.POST("/patrons/:id/deactivate", h.DeactivatePatron)
	api.DELETE("/patrons/:id", h.DeletePatron)

	api.GET("/dashboard", h.Dashboard)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// httpError maps a ledger error onto its HTTP status.
func (h *Handler) httpError(err error) error {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrPolicyViolation), errors.Is(err, errs.ErrState):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	h.log.Error("internal", zap.Error(err))
	return echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

func paramID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id is invalid")
	}
	return id, nil
}

func queryID(c echo.Context, name string) (int64, error) {
	v := c.QueryParam(name)
	if v == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" is invalid")
	}
	return id, nil
}

// CreateLoan godoc
// @Summary      Lend a copy of an item to a patron
// @Tags         loans
// @Accept       json
// @Produce      json
// @Param        request body model.CreateLoanRequest true "loan"
// @Success      201 {object} model.Loan
// @Failure      400,404,409 {object} echo.HTTPError
// @Router       /loans [post]
func (h *Handler) CreateLoan(c echo.Context) error {
	var req model.CreateLoanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errs.NewValidationErrorResponse(err))
	}
	loan, err := h.lendingSvc.CreateLoan(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, loan)
}

// ListLoans godoc
// @Summary      List loans
// @Tags         loans
// @Produce      json
// @Param        status   query string false "ACTIVE, OVERDUE or RETURNED"
// @Param        patronId query int    false "patron id"
// @Param        itemId   query int    false "item id"
// @Success      200 {array} model.Loan
// @Router       /loans [get]
func (h *Handler) ListLoans(c echo.Context) error {
	var (
		f   model.LoanFilter
		err error
	)
	if status := c.QueryParam("status"); status != "" {
		f.Status = model.Status(strings.ToUpper(status))
		if !f.Status.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "status is invalid")
		}
	}
	if f.PatronID, err = queryID(c, "patronId"); err != nil {
		return err
	}
	if f.ItemID, err = queryID(c, "itemId"); err != nil {
		return err
	}
	loans, err := h.lendingSvc.ListLoans(c.Request().Context(), f)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, loans)
}

func (h *Handler) ListDueSoon(c echo.Context) error {
	loans, err := h.lendingSvc.ListDueSoon(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, loans)
}

func (h *Handler) ListOverdue(c echo.Context) error {
	loans, err := h.lendingSvc.ListOverdue(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, loans)
}

func (h *Handler) LoanStats(c echo.Context) error {
	stats, err := h.lendingSvc.LoanStats(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

type sweepResponse struct {
	Marked int `json:"marked"`
}

// SweepOverdue godoc
// @Summary      Mark every active loan past its due date as overdue
// @Tags         loans
// @Produce      json
// @Success      200 {object} sweepResponse
// @Router       /loans/sweep [post]
func (h *Handler) SweepOverdue(c echo.Context) error {
	n, err := h.lendingSvc.SweepOverdue(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, sweepResponse{Marked: n})
}

func (h *Handler) GetLoan(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	loan, err := h.lendingSvc.GetLoan(c.Request().Context(), id)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, loan)
}

// ReturnLoan godoc
// @Summary      Return a loaned copy
// @Tags         loans
// @Accept       json
// @Produce      json
// @Param        id      path int                     true  "loan id"
// @Param        request body model.ReturnLoanRequest false "notes"
// @Success      200 {object} model.Loan
// @Failure      404,409 {object} echo.HTTPError
// @Router       /loans/{id}/return [post]
func (h *Handler) ReturnLoan(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req model.ReturnLoanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errs.NewValidationErrorResponse(err))
	}
	loan, err := h.lendingSvc.ReturnLoan(c.Request().Context(), id, req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, loan)
}

// ExtendLoan godoc
// @Summary      Move the due date of an open loan
// @Tags         loans
// @Accept       json
// @Produce      json
// @Param        id      path int                     true "loan id"
// @Param        request body model.ExtendLoanRequest true "new due date"
// @Success      200 {object} model.Loan
// @Failure      400,404,409 {object} echo.HTTPError
// @Router       /loans/{id}/extend [post]
func (h *Handler) ExtendLoan(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req model.ExtendLoanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.DueDate.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "dueDate is required")
	}
	loan, err := h.lendingSvc.ExtendLoan(c.Request().Context(), id, req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, loan)
}

func (h *Handler) CreateItem(c echo.Context) error {
	var req model.CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errs.NewValidationErrorResponse(err))
	}
	item, err := h.lendingSvc.CreateItem(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *Handler) GetItem(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	item, err := h.lendingSvc.GetItem(c.Request().Context(), id)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, item)
}

// ResizeCapacity godoc
// @Summary      Change the number of copies owned of an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id      path int                         true "item id"
// @Param        request body model.ResizeCapacityRequest true "total copies"
// @Success      200 {object} model.Item
// @Failure      400,404,409 {object} echo.HTTPError
// @Router       /items/{id}/capacity [patch]
func (h *Handler) ResizeCapacity(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req model.ResizeCapacityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errs.NewValidationErrorResponse(err))
	}
	item, err := h.lendingSvc.ResizeCapacity(c.Request().Context(), id, req.TotalCopies)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *Handler) CreatePatron(c echo.Context) error {
	var req model.CreatePatronRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errs.NewValidationErrorResponse(err))
	}
	p, err := h.lendingSvc.CreatePatron(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, p)
}

// ListPatronsWithOverdue godoc
// @Summary      Patrons holding overdue loans
// @Tags         patrons
// @Produce      json
// @Success      200 {array} model.Patron
// @Failure      500 {object} echo.HTTPError
// @Router       /patrons/overdue [get]
func (h *Handler) ListPatronsWithOverdue(c echo.Context) error {
	patrons, err := h.lendingSvc.ListPatronsWithOverdue(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, patrons)
}

func (h *Handler) GetPatron(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	sum, err := h.lendingSvc.PatronSummary(c.Request().Context(), id)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, sum)
}

func (h *Handler) PatronHistory(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	loans, err := h.lendingSvc.PatronHistory(c.Request().Context(), id)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, loans)
}

func (h *Handler) ActivatePatron(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	p, err := h.lendingSvc.ActivatePatron(c.Request().Context(), id)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) DeactivatePatron(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	p, err := h.lendingSvc.DeactivatePatron(c.Request().Context(), id)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) DeletePatron(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.lendingSvc.DeletePatron(c.Request().Context(), id); err != nil {
		return h.httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Dashboard godoc
// @Summary      Loan, inventory and patron statistics with loans due soon
// @Tags         reports
// @Produce      json
// @Success      200 {object} model.Dashboard
// @Router       /dashboard [get]
func (h *Handler) Dashboard(c echo.Context) error {
	d, err := h.lendingSvc.Dashboard(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, d)
}
