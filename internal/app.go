package internal

import (
	"github.com/rios0rios0/submodsync/internal/domain/entities"
)

// AppContext aggregates the wired controllers for the CLI layer.
type AppContext struct {
	controllers *[]entities.Controller
}

// NewAppContext creates the application context from the DIG-provided
// controller slice.
func NewAppContext(controllers *[]entities.Controller) *AppContext {
	return &AppContext{controllers: controllers}
}

// GetControllers returns all registered controllers.
func (it *AppContext) GetControllers() []entities.Controller {
	return *it.controllers
}
