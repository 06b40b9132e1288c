package parts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RoyceColton/Maintenance-Inventory-System/internal/audit"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/db"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/db/models"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/enums"
	pkgerrors "github.com/RoyceColton/Maintenance-Inventory-System/pkg/errors"
)

// Service exposes part management operations.
type Service interface {
	CreatePart(ctx context.Context, actorID uuid.UUID, input CreatePartInput) (*PartDTO, error)
	GetPart(ctx context.Context, partID uuid.UUID) (*PartDTO, error)
	ListParts(ctx context.Context, filter ListFilter) ([]PartDTO, error)
	UpdatePart(ctx context.Context, actorID, partID uuid.UUID, input UpdatePartInput) (*PartDTO, error)
	DeletePart(ctx context.Context, actorID, partID uuid.UUID) error
	AdjustCount(ctx context.Context, actorID, partID uuid.UUID, delta int) (*PartDTO, error)
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	audit    *audit.Repository
}

// NewService constructs a parts service instance.
func NewService(repo *Repository, dbClient *db.Client, auditRepo *audit.Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("parts repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if auditRepo == nil {
		return nil, fmt.Errorf("audit repository required")
	}
	return &service{repo: repo, dbClient: dbClient, audit: auditRepo}, nil
}

// CreatePart validates the classification and inserts the part.
func (s *service) CreatePart(ctx context.Context, actorID uuid.UUID, input CreatePartInput) (*PartDTO, error) {
	if err := validateClassification(input.Room, input.ApplianceType, input.IsMisc); err != nil {
		return nil, err
	}
	if input.Count < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "count cannot be negative")
	}
	if input.Cost.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost cannot be negative")
	}

	threshold := 5
	if input.Threshold != nil {
		if *input.Threshold < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "threshold cannot be negative")
		}
		threshold = *input.Threshold
	}

	part := &models.Part{
		Name:          strings.TrimSpace(input.Name),
		ModelNumber:   strings.TrimSpace(input.ModelNumber),
		Count:         input.Count,
		Cost:          input.Cost,
		Room:          input.Room,
		Threshold:     threshold,
		IsMisc:        input.IsMisc,
		ApplianceType: input.ApplianceType,
		OrderLink:     input.OrderLink,
		OrderStatus:   enums.OrderStatusNotOrdered,
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := txRepo.Create(ctx, part); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "model number already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert part")
		}
		return s.audit.WithTx(tx).Record(ctx, &models.AuditEntry{
			UserID:     actorID,
			Action:     enums.AuditActionPartCreate,
			EntityType: "part",
			EntityID:   part.ID,
			Detail:     part.ModelNumber,
		})
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create part")
	}

	return FromModel(part), nil
}

// GetPart loads one part.
func (s *service) GetPart(ctx context.Context, partID uuid.UUID) (*PartDTO, error) {
	part, err := s.repo.FindByID(ctx, partID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "part not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load part")
	}
	return FromModel(part), nil
}

// ListParts returns parts matching the filter.
func (s *service) ListParts(ctx context.Context, filter ListFilter) ([]PartDTO, error) {
	if filter.Room != "" && !IsKnownRoom(filter.Room) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown room")
	}
	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list parts")
	}
	return FromModels(list), nil
}

// UpdatePart applies the provided fields to an existing part.
func (s *service) UpdatePart(ctx context.Context, actorID, partID uuid.UUID, input UpdatePartInput) (*PartDTO, error) {
	var updated *models.Part
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		part, err := txRepo.FindByID(ctx, partID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "part not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load part")
		}

		if input.Name != nil {
			part.Name = strings.TrimSpace(*input.Name)
		}
		if input.ModelNumber != nil {
			part.ModelNumber = strings.TrimSpace(*input.ModelNumber)
		}
		if input.Cost != nil {
			if input.Cost.IsNegative() {
				return pkgerrors.New(pkgerrors.CodeValidation, "cost cannot be negative")
			}
			part.Cost = *input.Cost
		}
		if input.Room != nil {
			part.Room = *input.Room
		}
		if input.ApplianceType != nil {
			part.ApplianceType = *input.ApplianceType
		}
		if input.IsMisc != nil {
			part.IsMisc = *input.IsMisc
		}
		if input.Threshold != nil {
			if *input.Threshold < 0 {
				return pkgerrors.New(pkgerrors.CodeValidation, "threshold cannot be negative")
			}
			part.Threshold = *input.Threshold
		}
		if input.OrderLink != nil {
			part.OrderLink = input.OrderLink
		}

		if err := validateClassification(part.Room, part.ApplianceType, part.IsMisc); err != nil {
			return err
		}

		if err := txRepo.Save(ctx, part); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "model number already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save part")
		}

		updated = part
		return s.audit.WithTx(tx).Record(ctx, &models.AuditEntry{
			UserID:     actorID,
			Action:     enums.AuditActionPartUpdate,
			EntityType: "part",
			EntityID:   part.ID,
			Detail:     part.ModelNumber,
		})
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update part")
	}

	return FromModel(updated), nil
}

// DeletePart removes the part together with its order history.
func (s *service) DeletePart(ctx context.Context, actorID, partID uuid.UUID) error {
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		part, err := txRepo.FindByID(ctx, partID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "part not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load part")
		}

		if err := txRepo.Delete(ctx, part.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete part")
		}

		return s.audit.WithTx(tx).Record(ctx, &models.AuditEntry{
			UserID:     actorID,
			Action:     enums.AuditActionPartDelete,
			EntityType: "part",
			EntityID:   part.ID,
			Detail:     part.ModelNumber,
		})
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return err
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete part")
	}
	return nil
}

// AdjustCount applies a manual +1/-1 stock check.
func (s *service) AdjustCount(ctx context.Context, actorID, partID uuid.UUID, delta int) (*PartDTO, error) {
	if delta != 1 && delta != -1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delta must be +1 or -1")
	}

	var adjusted *models.Part
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		part, err := txRepo.FindByID(ctx, partID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "part not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load part")
		}

		if delta < 0 && part.Count == 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "count already 0")
		}

		part.Count += delta
		if err := txRepo.UpdateCount(ctx, part.ID, part.Count); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update count")
		}

		action := enums.AuditActionCountIncrement
		if delta < 0 {
			action = enums.AuditActionCountDecrement
		}
		adjusted = part
		return s.audit.WithTx(tx).Record(ctx, &models.AuditEntry{
			UserID:     actorID,
			Action:     action,
			EntityType: "part",
			EntityID:   part.ID,
			Detail:     fmt.Sprintf("count=%d", part.Count),
		})
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "adjust count")
	}

	return FromModel(adjusted), nil
}

// validateClassification checks the room against the catalog. Appliance tags
// are free-form so callers can introduce new types.
func validateClassification(room, appliance string, isMisc bool) error {
	if !IsKnownRoom(room) {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown room")
	}
	if !isMisc && appliance == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "appliance_type required for non-misc parts")
	}
	return nil
}
