package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hadirly/hadir-backend-go/internal/domain/employee"
	"github.com/hadirly/hadir-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	ListActive(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

// EmployeeHandlerImpl serves the read-only roster. The roster is owned by the
// HR admin system, so no mutations are exposed here.
type EmployeeHandlerImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeHandler(employeeRepo employee.EmployeeRepository) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeRepo: employeeRepo}
}

type employeeResponse struct {
	ID           string `json:"id"`
	FullName     string `json:"full_name"`
	Department   string `json:"department"`
	IsWfhEnabled bool   `json:"is_wfh_enabled"`
	IsActive     bool   `json:"is_active"`
}

func toEmployeeResponse(e employee.Employee) employeeResponse {
	return employeeResponse{
		ID:           e.ID,
		FullName:     e.FullName,
		Department:   e.Department,
		IsWfhEnabled: e.IsWfhEnabled,
		IsActive:     e.IsActive,
	}
}

// ListActive implements EmployeeHandler.
func (h *EmployeeHandlerImpl) ListActive(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeRepo.ListActive(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]employeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, toEmployeeResponse(e))
	}

	response.Success(w, responses)
}

// Get implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	emp, err := h.employeeRepo.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toEmployeeResponse(emp))
}
