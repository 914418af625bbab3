package transfer

import (
	"context"

	"github.com/nmarin/posflow-api/internal/application/scope"
	"github.com/nmarin/posflow-api/internal/domain"
	"github.com/nmarin/posflow-api/internal/domain/entity"
	"github.com/nmarin/posflow-api/internal/domain/repository"
)

// ManifestGenerator puerto del generador de la guía de traslado en PDF.
type ManifestGenerator interface {
	GenerateManifest(ctx context.Context, t *entity.Transfer, from, to *scope.Location) ([]byte, error)
}

// ManifestUseCase genera la guía de traslado (documento que acompaña la mercancía).
type ManifestUseCase struct {
	transfers repository.TransferRepository
	resolver  *scope.Resolver
	generator ManifestGenerator
}

// NewManifestUseCase construye el caso de uso.
func NewManifestUseCase(transfers repository.TransferRepository, resolver *scope.Resolver, generator ManifestGenerator) *ManifestUseCase {
	return &ManifestUseCase{transfers: transfers, resolver: resolver, generator: generator}
}

// Generate devuelve los bytes del PDF de la guía para un traslado visible al actor.
func (uc *ManifestUseCase) Generate(ctx context.Context, actor scope.Actor, transferID string) ([]byte, error) {
	t, err := uc.transfers.GetByID(transferID)
	if err != nil {
		return nil, err
	}
	if t == nil || t.CompanyID != actor.CompanyID {
		return nil, domain.ErrNotFound
	}
	if !actor.IsAdmin() && !actor.CanAccessScope(t.From) && !actor.CanAccessScope(t.To) {
		return nil, domain.ErrForbidden
	}

	from, err := uc.resolver.Resolve(ctx, t.CompanyID, t.From)
	if err != nil {
		return nil, err
	}
	to, err := uc.resolver.Resolve(ctx, t.CompanyID, t.To)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateManifest(ctx, t, from, to)
}
