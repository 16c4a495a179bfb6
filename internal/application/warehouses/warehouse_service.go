package warehouses

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ims/backend/internal/domain/shared"
	"github.com/ims/backend/internal/domain/warehouse"
)

// CreateWarehouseRequest represents a request to create a warehouse
type CreateWarehouseRequest struct {
	Code       string `json:"code" binding:"required,min=1,max=50"`
	Name       string `json:"name" binding:"required,min=1,max=200"`
	Address    string `json:"address"`
	City       string `json:"city" binding:"max=100"`
	PostalCode string `json:"postal_code" binding:"max=20"`
	Country    string `json:"country" binding:"max=100"`
	IsDefault  bool   `json:"is_default"`
}

// UpdateWarehouseRequest represents a partial warehouse update
type UpdateWarehouseRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=1,max=200"`
	Address    *string `json:"address"`
	City       *string `json:"city" binding:"omitempty,max=100"`
	PostalCode *string `json:"postal_code" binding:"omitempty,max=20"`
	Country    *string `json:"country" binding:"omitempty,max=100"`
	IsDefault  *bool   `json:"is_default"`
}

// WarehouseResponse represents a warehouse in API responses
type WarehouseResponse struct {
	ID         uuid.UUID `json:"id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	Address    string    `json:"address,omitempty"`
	City       string    `json:"city,omitempty"`
	PostalCode string    `json:"postal_code,omitempty"`
	Country    string    `json:"country,omitempty"`
	IsDefault  bool      `json:"is_default"`
}

// ToWarehouseResponse converts a warehouse entity to its response form
func ToWarehouseResponse(w *warehouse.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:         w.ID,
		Code:       w.Code,
		Name:       w.Name,
		Status:     string(w.Status),
		Address:    w.Address,
		City:       w.City,
		PostalCode: w.PostalCode,
		Country:    w.Country,
		IsDefault:  w.IsDefault,
	}
}

// WarehouseService manages warehouses
type WarehouseService struct {
	warehouseRepo warehouse.Repository
}

// NewWarehouseService creates a new WarehouseService
func NewWarehouseService(warehouseRepo warehouse.Repository) *WarehouseService {
	return &WarehouseService{warehouseRepo: warehouseRepo}
}

// Get retrieves a warehouse by ID
func (s *WarehouseService) Get(ctx context.Context, id uuid.UUID) (*WarehouseResponse, error) {
	w, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToWarehouseResponse(w)
	return &resp, nil
}

// List returns warehouses matching the filter
func (s *WarehouseService) List(ctx context.Context, filter shared.Filter) ([]WarehouseResponse, error) {
	warehouses, err := s.warehouseRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]WarehouseResponse, 0, len(warehouses))
	for i := range warehouses {
		responses = append(responses, ToWarehouseResponse(&warehouses[i]))
	}
	return responses, nil
}

// Create adds a warehouse. Codes are unique; marking the new warehouse
// default clears the flag from the previous default.
func (s *WarehouseService) Create(ctx context.Context, req CreateWarehouseRequest) (*WarehouseResponse, error) {
	if _, err := s.warehouseRepo.FindByCode(ctx, req.Code); err == nil {
		return nil, shared.ErrAlreadyExists
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	w, err := warehouse.NewWarehouse(req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	w.SetLocation(req.Address, req.City, req.PostalCode, req.Country)

	if req.IsDefault {
		if err := s.takeDefaultFlag(ctx, w); err != nil {
			return nil, err
		}
	}

	if err := s.warehouseRepo.Save(ctx, w); err != nil {
		return nil, err
	}

	resp := ToWarehouseResponse(w)
	return &resp, nil
}

// Update applies a partial update to a warehouse
func (s *WarehouseService) Update(ctx context.Context, id uuid.UUID, req UpdateWarehouseRequest) (*WarehouseResponse, error) {
	w, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := w.Update(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Address != nil || req.City != nil || req.PostalCode != nil || req.Country != nil {
		address, city, postalCode, country := w.Address, w.City, w.PostalCode, w.Country
		if req.Address != nil {
			address = *req.Address
		}
		if req.City != nil {
			city = *req.City
		}
		if req.PostalCode != nil {
			postalCode = *req.PostalCode
		}
		if req.Country != nil {
			country = *req.Country
		}
		w.SetLocation(address, city, postalCode, country)
	}
	if req.IsDefault != nil && *req.IsDefault && !w.IsDefault {
		if err := s.takeDefaultFlag(ctx, w); err != nil {
			return nil, err
		}
	}

	if err := s.warehouseRepo.Save(ctx, w); err != nil {
		return nil, err
	}

	resp := ToWarehouseResponse(w)
	return &resp, nil
}

// Delete removes a warehouse
func (s *WarehouseService) Delete(ctx context.Context, id uuid.UUID) error {
	w, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if w.IsDefault {
		return shared.NewDomainError("INVALID_STATE", "Default warehouse cannot be deleted")
	}
	return s.warehouseRepo.Delete(ctx, id)
}

// takeDefaultFlag moves the default flag from the current default to w
func (s *WarehouseService) takeDefaultFlag(ctx context.Context, w *warehouse.Warehouse) error {
	current, err := s.warehouseRepo.FindDefault(ctx)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	if current != nil && current.ID != w.ID {
		current.ClearDefault()
		if err := s.warehouseRepo.Save(ctx, current); err != nil {
			return err
		}
	}
	w.MarkDefault()
	return nil
}
