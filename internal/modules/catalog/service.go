package catalog

import (
	"context"
	"errors"

	"gearbook/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	assets AssetRepository
	kits   KitRepository
}

func NewService(assets AssetRepository, kits KitRepository) *Service {
	return &Service{assets: assets, kits: kits}
}

/* ---------- ASSETS ---------- */

func (s *Service) CreateAsset(ctx context.Context, orgID int64, req CreateAssetRequest) (*domain.Asset, error) {
	status := domain.AssetStatus(req.Status)
	if req.Status == "" {
		status = domain.AssetActive
	}
	if !status.Valid() {
		return nil, ErrValidation
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return nil, ErrValidation
	}

	a := &domain.Asset{
		OrgID:    orgID,
		Name:     req.Name,
		Status:   status,
		Category: req.Category,
		Quantity: quantity,
		Location: req.Location,
	}
	if err := s.assets.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) GetAsset(ctx context.Context, orgID, id int64) (*domain.Asset, error) {
	a, err := s.assets.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err)
	}
	if a.OrgID != orgID {
		return nil, ErrNotFound
	}
	return a, nil
}

func (s *Service) ListAssets(ctx context.Context, orgID int64) ([]domain.Asset, error) {
	return s.assets.ListByOrg(ctx, orgID)
}

func (s *Service) UpdateAsset(ctx context.Context, orgID, id int64, req UpdateAssetRequest) (*domain.Asset, error) {
	a, err := s.GetAsset(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	status := domain.AssetStatus(req.Status)
	if !status.Valid() || req.Quantity < 1 {
		return nil, ErrValidation
	}

	a.Name = req.Name
	a.Status = status
	a.Category = req.Category
	a.Quantity = req.Quantity
	a.Location = req.Location

	if err := s.assets.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) DeleteAsset(ctx context.Context, orgID, id int64) error {
	if _, err := s.GetAsset(ctx, orgID, id); err != nil {
		return err
	}
	return s.assets.Delete(ctx, id)
}

/* ---------- KITS ---------- */

func (s *Service) CreateKit(ctx context.Context, orgID int64, req CreateKitRequest) (*domain.Kit, error) {
	items, err := s.resolveKitItems(ctx, orgID, req.Items)
	if err != nil {
		return nil, err
	}

	k := &domain.Kit{
		OrgID:    orgID,
		Name:     req.Name,
		Category: req.Category,
		Items:    items,
	}
	if err := s.kits.Create(ctx, k); err != nil {
		return nil, err
	}
	return k, nil
}

func (s *Service) UpdateKit(ctx context.Context, orgID, id int64, req CreateKitRequest) (*domain.Kit, error) {
	k, err := s.GetKit(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	items, err := s.resolveKitItems(ctx, orgID, req.Items)
	if err != nil {
		return nil, err
	}

	k.Name = req.Name
	k.Category = req.Category
	k.Items = items

	if err := s.kits.Update(ctx, k); err != nil {
		return nil, err
	}
	return k, nil
}

// resolveKitItems validates the requested items (quantity defaults to 1,
// an asset appears at most once, every asset must exist in the org) and
// maps them onto domain items.
func (s *Service) resolveKitItems(ctx context.Context, orgID int64, reqItems []KitItemRequest) ([]domain.KitItem, error) {
	items := make([]domain.KitItem, 0, len(reqItems))
	assetIDs := make([]int64, 0, len(reqItems))
	seen := make(map[int64]bool, len(reqItems))

	for _, it := range reqItems {
		quantity := it.Quantity
		if quantity == 0 {
			quantity = 1
		}
		if quantity < 1 {
			return nil, ErrValidation
		}
		if seen[it.AssetID] {
			return nil, ErrDuplicateKitItem
		}
		seen[it.AssetID] = true
		assetIDs = append(assetIDs, it.AssetID)
		items = append(items, domain.KitItem{AssetID: it.AssetID, Quantity: quantity})
	}

	if len(assetIDs) > 0 {
		assets, err := s.assets.GetByIDs(ctx, orgID, assetIDs)
		if err != nil {
			return nil, err
		}
		if len(assets) != len(assetIDs) {
			return nil, ErrAssetNotFound
		}
	}
	return items, nil
}

func (s *Service) GetKit(ctx context.Context, orgID, id int64) (*domain.Kit, error) {
	k, err := s.kits.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err)
	}
	if k.OrgID != orgID {
		return nil, ErrNotFound
	}
	return k, nil
}

func (s *Service) ListKits(ctx context.Context, orgID int64) ([]domain.Kit, error) {
	return s.kits.ListByOrg(ctx, orgID)
}

func (s *Service) DeleteKit(ctx context.Context, orgID, id int64) error {
	if _, err := s.GetKit(ctx, orgID, id); err != nil {
		return err
	}
	return s.kits.Delete(ctx, id)
}

func notFoundAs(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
