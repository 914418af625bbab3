package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nmarin/posflow-api/internal/application/dto"
	"github.com/nmarin/posflow-api/internal/application/scope"
	"github.com/nmarin/posflow-api/internal/domain/entity"
	"github.com/nmarin/posflow-api/internal/domain/repository"
)

// BranchUseCase casos de uso CRUD para sucursales.
// Tras actualizar settings invalida la entrada en el cache de sedes.
type BranchUseCase struct {
	repo     repository.BranchRepository
	resolver *scope.Resolver
}

// NewBranchUseCase construye el caso de uso.
func NewBranchUseCase(repo repository.BranchRepository, resolver *scope.Resolver) *BranchUseCase {
	return &BranchUseCase{repo: repo, resolver: resolver}
}

// Create crea una nueva sucursal.
func (uc *BranchUseCase) Create(companyID string, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	now := time.Now()
	branch := &entity.Branch{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		Address:   in.Address,
		Settings:  settingsFromDTO(in.Settings),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(branch); err != nil {
		return nil, err
	}
	return toBranchResponse(branch), nil
}

// GetByID obtiene una sucursal por ID.
func (uc *BranchUseCase) GetByID(id string) (*dto.LocationResponse, error) {
	branch, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, nil
	}
	return toBranchResponse(branch), nil
}

// Update actualiza una sucursal e invalida su entrada en el cache.
func (uc *BranchUseCase) Update(ctx context.Context, id string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	branch, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, nil
	}
	if in.Name != nil {
		branch.Name = *in.Name
	}
	if in.Address != nil {
		branch.Address = *in.Address
	}
	if in.Settings != nil {
		branch.Settings = settingsFromDTO(in.Settings)
	}
	branch.UpdatedAt = time.Now()
	if err := uc.repo.Update(branch); err != nil {
		return nil, err
	}
	uc.resolver.Invalidate(ctx, branch.Scope())
	return toBranchResponse(branch), nil
}

// List lista sucursales por empresa con paginación.
func (uc *BranchUseCase) List(companyID string, limit, offset int) (*dto.LocationListResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBranchResponse(b))
	}
	return &dto.LocationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una sucursal por ID e invalida su entrada en el cache.
func (uc *BranchUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.resolver.Invalidate(ctx, entity.Scope{Type: entity.ScopeBranch, ID: id})
	return nil
}

func toBranchResponse(b *entity.Branch) *dto.LocationResponse {
	if b == nil {
		return nil
	}
	return &dto.LocationResponse{
		ID:        b.ID,
		CompanyID: b.CompanyID,
		ScopeType: entity.ScopeBranch,
		Name:      b.Name,
		Address:   b.Address,
		Settings: dto.TransferSettingsDTO{
			AllowOutgoingTransfers: b.Settings.AllowOutgoingTransfers,
			AllowIncomingTransfers: b.Settings.AllowIncomingTransfers,
		},
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// settingsFromDTO convierte los settings del request; nil aplica los defaults
// (traslados habilitados).
func settingsFromDTO(s *dto.TransferSettingsDTO) entity.TransferSettings {
	if s == nil {
		return entity.DefaultTransferSettings()
	}
	return entity.TransferSettings{
		AllowOutgoingTransfers: s.AllowOutgoingTransfers,
		AllowIncomingTransfers: s.AllowIncomingTransfers,
	}
}
