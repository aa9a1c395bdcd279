package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/intraportal/internal/service"
)

type employeePayload struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Phone      string `json:"phone"`
	AvatarURL  string `json:"avatar_url"`
}

func (p employeePayload) toInput() service.EmployeeInput {
	return service.EmployeeInput{
		Name:       p.Name,
		Email:      p.Email,
		Department: p.Department,
		Position:   p.Position,
		Phone:      p.Phone,
		AvatarURL:  p.AvatarURL,
	}
}

type employeeUpdatePayload struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
	Phone      *string `json:"phone"`
	AvatarURL  *string `json:"avatar_url"`
}

func (p employeeUpdatePayload) toUpdate() service.EmployeeUpdate {
	return service.EmployeeUpdate{
		Name:       p.Name,
		Email:      p.Email,
		Department: p.Department,
		Position:   p.Position,
		Phone:      p.Phone,
		AvatarURL:  p.AvatarURL,
	}
}

// ListEmployees searches the directory. Supports ?search=, ?department= and ?limit=.
func (a *API) ListEmployees(c *gin.Context) {
	items, err := a.employees.List(service.EmployeeFilter{
		Search:     c.Query("search"),
		Department: c.Query("department"),
		Limit:      queryInt(c, "limit", 0),
	})
	if err != nil {
		a.respondServiceError(c, err, "failed to load employees")
		return
	}
	c.JSON(http.StatusOK, items)
}

// ListDepartments returns the distinct department names.
func (a *API) ListDepartments(c *gin.Context) {
	departments, err := a.employees.Departments()
	if err != nil {
		a.respondServiceError(c, err, "failed to load departments")
		return
	}
	c.JSON(http.StatusOK, departments)
}

func (a *API) GetEmployee(c *gin.Context) {
	id, ok := idParam(c, "invalid employee id")
	if !ok {
		return
	}
	item, err := a.employees.Get(id)
	if err != nil {
		a.respondServiceError(c, err, "failed to load employee")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (a *API) CreateEmployee(c *gin.Context) {
	var payload employeePayload
	if !bindJSON(c, &payload, "invalid employee payload") {
		return
	}
	item, err := a.employees.Create(payload.toInput())
	if err != nil {
		a.respondServiceError(c, err, "failed to create employee")
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (a *API) UpdateEmployee(c *gin.Context) {
	id, ok := idParam(c, "invalid employee id")
	if !ok {
		return
	}
	var payload employeeUpdatePayload
	if !bindJSON(c, &payload, "invalid employee payload") {
		return
	}
	item, err := a.employees.Update(id, payload.toUpdate())
	if err != nil {
		a.respondServiceError(c, err, "failed to update employee")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (a *API) DeleteEmployee(c *gin.Context) {
	id, ok := idParam(c, "invalid employee id")
	if !ok {
		return
	}
	if err := a.employees.Delete(id); err != nil {
		a.respondServiceError(c, err, "failed to delete employee")
		return
	}
	respondMessage(c, "Employee deleted successfully")
}
