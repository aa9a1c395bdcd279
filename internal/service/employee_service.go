package service

import (
	"errors"
	"strings"

	"github.com/intraportal/internal/db"
	"gorm.io/gorm"
)

// ErrEmployeeNotFound is returned for an unknown employee id.
var ErrEmployeeNotFound = errors.New("employee not found")

// EmployeeService backs the staff directory.
type EmployeeService struct {
	db *gorm.DB
}

// EmployeeFilter narrows List. Search matches name, email, position and
// department case-insensitively. Department must match exactly.
type EmployeeFilter struct {
	Search     string
	Department string
	Limit      int
}

// EmployeeInput holds the fields of a directory entry.
type EmployeeInput struct {
	Name       string
	Email      string
	Department string
	Position   string
	Phone      string
	AvatarURL  string
}

// EmployeeUpdate carries optional changes.
type EmployeeUpdate struct {
	Name       *string
	Email      *string
	Department *string
	Position   *string
	Phone      *string
	AvatarURL  *string
}

// NewEmployeeService creates an EmployeeService.
func NewEmployeeService(gdb *gorm.DB) *EmployeeService {
	return &EmployeeService{db: gdb}
}

// List returns directory entries ordered by name.
func (s *EmployeeService) List(filter EmployeeFilter) ([]db.Employee, error) {
	query := s.db.Model(&db.Employee{})
	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		like := "%" + escapeLike(search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(email) LIKE ? ESCAPE '\\' OR LOWER(position) LIKE ? ESCAPE '\\' OR LOWER(department) LIKE ? ESCAPE '\\'",
			like, like, like, like,
		)
	}
	if department := strings.TrimSpace(filter.Department); department != "" {
		query = query.Where("department = ?", department)
	}

	var items []db.Employee
	if err := query.Order("name asc").Order("id asc").
		Limit(normalizeLimit(filter.Limit, 100)).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Departments returns the distinct departments in alphabetical order.
func (s *EmployeeService) Departments() ([]string, error) {
	var departments []string
	if err := s.db.Model(&db.Employee{}).
		Distinct("department").
		Where("department <> ''").
		Order("department asc").
		Pluck("department", &departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

// Get fetches a directory entry by id.
func (s *EmployeeService) Get(id uint) (*db.Employee, error) {
	var item db.Employee
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a directory entry.
func (s *EmployeeService) Create(input EmployeeInput) (*db.Employee, error) {
	item := db.Employee{
		Name:       strings.TrimSpace(input.Name),
		Email:      normalizeEmail(input.Email),
		Department: strings.TrimSpace(input.Department),
		Position:   strings.TrimSpace(input.Position),
		Phone:      strings.TrimSpace(input.Phone),
		AvatarURL:  strings.TrimSpace(input.AvatarURL),
	}
	if err := validateEmployee(item); err != nil {
		return nil, err
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Update applies the non-nil fields of input.
func (s *EmployeeService) Update(id uint, input EmployeeUpdate) (*db.Employee, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	applyString(&item.Name, input.Name)
	applyString(&item.Department, input.Department)
	applyString(&item.Position, input.Position)
	applyString(&item.Phone, input.Phone)
	applyString(&item.AvatarURL, input.AvatarURL)
	if input.Email != nil {
		item.Email = normalizeEmail(*input.Email)
	}
	if err := validateEmployee(*item); err != nil {
		return nil, err
	}
	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes a directory entry.
func (s *EmployeeService) Delete(id uint) error {
	result := s.db.Delete(&db.Employee{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func validateEmployee(item db.Employee) error {
	if item.Name == "" {
		return required("name")
	}
	if err := validateEmail(item.Email); err != nil {
		return err
	}
	if item.Department == "" {
		return required("department")
	}
	if item.Position == "" {
		return required("position")
	}
	return nil
}

func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
