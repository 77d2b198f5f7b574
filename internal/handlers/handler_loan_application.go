package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/loan_application_app/internal/apperrors"
	portssvc "github.com/SscSPs/loan_application_app/internal/core/ports/services"
	"github.com/SscSPs/loan_application_app/internal/dto"
	"github.com/SscSPs/loan_application_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// loanApplicationHandler handles HTTP requests related to loan applications.
type loanApplicationHandler struct {
	loanApplicationService portssvc.LoanApplicationSvcFacade
}

// newLoanApplicationHandler creates a new loanApplicationHandler.
func newLoanApplicationHandler(svc portssvc.LoanApplicationSvcFacade) *loanApplicationHandler {
	return &loanApplicationHandler{
		loanApplicationService: svc,
	}
}

// registerLoanApplicationRoutes registers routes related to loan applications.
func registerLoanApplicationRoutes(rg *gin.RouterGroup, svc portssvc.LoanApplicationSvcFacade) {
	h := newLoanApplicationHandler(svc)

	loans := rg.Group("/loan-applications")
	{
		loans.POST("", h.createLoanApplication)
		loans.GET("", h.listLoanApplications)
	}
}

// createLoanApplication godoc
// @Summary Submit a loan application
// @Description Stores a loan application with its amount converted into the reference currency
// @Tags loan-applications
// @Accept  json
// @Produce  json
// @Param   application body dto.CreateLoanApplicationRequest true "Loan application"
// @Success 201 {object} dto.LoanApplicationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 502 {object} map[string]string "Exchange rate provider error"
// @Failure 500 {object} map[string]string "Failed to create loan application"
// @Router /loan-applications [post]
func (h *loanApplicationHandler) createLoanApplication(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.CreateLoanApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, logger, apperrors.NewAppError(http.StatusBadRequest, "Invalid request format: "+err.Error(), err), "Failed to bind JSON for CreateLoanApplication")
		return
	}

	logger.Info("Received request to create loan application",
		slog.String("currency", string(req.Currency)),
		slog.Int("loan_term", req.LoanTerm))

	loan, err := h.loanApplicationService.InsertOne(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create loan application")
		return
	}

	logger.Info("Loan application created successfully", slog.String("loan_application_id", loan.ID))
	c.JSON(http.StatusCreated, dto.ToLoanApplicationResponse(&loan))
}

// listLoanApplications godoc
// @Summary List loan applications
// @Description Returns one page of loan applications and the total number stored. Unknown sort fields and invalid skip/take values are ignored.
// @Tags loan-applications
// @Produce  json
// @Param   sortBy query string false "Sort field" Enums(loanAmount, loanTerm, submissionDate)
// @Param   order  query string false "Sort direction, desc unless asc" Enums(asc, desc)
// @Param   skip   query int    false "Number of applications to skip"
// @Param   take   query int    false "Maximum number of applications to return"
// @Success 200 {object} dto.ListLoanApplicationsResponse
// @Failure 500 {object} map[string]string "Failed to list loan applications"
// @Router /loan-applications [get]
func (h *loanApplicationHandler) listLoanApplications(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var params dto.ListLoanApplicationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondWithError(c, logger, apperrors.NewAppError(http.StatusBadRequest, "Invalid query parameters: "+err.Error(), err), "Failed to bind query for ListLoanApplications")
		return
	}

	page, err := h.loanApplicationService.FindAll(c.Request.Context(), params.ToQueryOptions())
	if err != nil {
		respondWithError(c, logger, err, "Failed to list loan applications")
		return
	}

	c.JSON(http.StatusOK, dto.ToListLoanApplicationsResponse(page))
}
