package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/models"
	"marketplace/services/storage"
	"marketplace/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

var safeUserProjection = bson.M{"passwordHash": 0, "tokenHash": 0}

func (s *DefaultAdminService) ListUsers(ctx context.Context, f models.UserFilter) (models.Page[models.User], error) {
	verr := &models.ValidationError{}
	if f.Role != "" && !models.IsValidRole(f.Role) {
		verr.Add("role", "unknown role")
	}
	if f.Status != "" && !models.IsValidUserStatus(f.Status) {
		verr.Add("status", "unknown status")
	}
	if err := verr.OrNil(); err != nil {
		return models.Page[models.User]{}, err
	}
	f.Query = strings.TrimSpace(f.Query)
	f.Page, f.PageSize = models.NormalizePaging(f.Page, f.PageSize, 20, s.MaxPageSize)

	users, total, err := s.Users.List(ctx, f)
	if err != nil {
		return models.Page[models.User]{}, err
	}
	for i := range users {
		users[i].PasswordHash, users[i].TokenHash = "", ""
	}
	return models.NewPage(users, total, f.Page, f.PageSize), nil
}

func (s *DefaultAdminService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.Users.GetByIDWithProjection(ctx, id, safeUserProjection)
}

func (s *DefaultAdminService) UpdateUser(ctx context.Context, actorID, id string, upd models.UserUpdate) (*models.User, error) {
	verr := &models.ValidationError{}
	if upd.Role != nil && !models.IsValidRole(*upd.Role) {
		verr.Add("role", "unknown role")
	}
	if upd.Status != nil && !models.IsValidUserStatus(*upd.Status) {
		verr.Add("status", "unknown status")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	if actorID == id {
		if upd.Role != nil && *upd.Role != models.RoleAdmin {
			return nil, fmt.Errorf("admins cannot demote themselves: %w", models.ErrForbidden)
		}
		if upd.Status != nil && *upd.Status != models.UserActive {
			return nil, fmt.Errorf("admins cannot suspend themselves: %w", models.ErrForbidden)
		}
	}

	u, err := s.Users.GetByIDWithProjection(ctx, id, safeUserProjection)
	if err != nil {
		return nil, err
	}
	fields := bson.M{}
	if upd.Role != nil && *upd.Role != u.Role {
		fields["role"] = *upd.Role
		u.Role = *upd.Role
	}
	if upd.Status != nil && *upd.Status != u.Status {
		fields["status"] = *upd.Status
		u.Status = *upd.Status
	}
	if len(fields) == 0 {
		return u, nil
	}
	u.UpdatedAt = time.Now()
	fields["updatedAt"] = u.UpdatedAt
	if err := s.Users.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	// Tokens carry the role, so the user signs in again.
	if err := s.Tokens.Revoke(ctx, id); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("user updated by admin",
		zap.String("adminID", actorID), zap.String("userID", id),
		zap.String("role", u.Role), zap.String("status", u.Status))
	return u, nil
}

func (s *DefaultAdminService) DeleteUser(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return fmt.Errorf("admins cannot delete themselves: %w", models.ErrForbidden)
	}
	if _, err := s.Users.GetByIDWithProjection(ctx, id, bson.M{"id": 1}); err != nil {
		return err
	}
	if err := s.Tokens.Revoke(ctx, id); err != nil {
		return err
	}

	p, err := s.Professionals.GetByUserID(ctx, id)
	switch {
	case errors.Is(err, models.ErrNotFound):
	case err != nil:
		return err
	default:
		if err := s.deleteProfessional(ctx, p); err != nil {
			return err
		}
	}

	if err := s.Users.Delete(ctx, id); err != nil {
		return err
	}
	utils.GetLogger().Info("user deleted by admin", zap.String("adminID", actorID), zap.String("userID", id))
	return nil
}

// deleteProfessional removes listings, documents and the profile. Stored
// files are removed best effort.
func (s *DefaultAdminService) deleteProfessional(ctx context.Context, p *models.Professional) error {
	logger := utils.GetLogger()
	docs, err := s.Documents.ListByProfessional(ctx, p.ID)
	if err != nil {
		return err
	}
	var media []models.Media
	for page := 1; ; page++ {
		listings, total, err := s.Listings.ListByProfessional(ctx, p.ID, page, 100)
		if err != nil {
			return err
		}
		for _, l := range listings {
			media = append(media, l.Media...)
		}
		if len(listings) == 0 || int64(page*100) >= total {
			break
		}
	}
	if err := s.Listings.DeleteByProfessional(ctx, p.ID); err != nil {
		return err
	}
	for _, m := range media {
		if err := s.Storage.DeleteFile(ctx, m.PublicID, m.Kind); err != nil {
			logger.Warn("failed to delete listing media", zap.String("publicID", m.PublicID), zap.Error(err))
		}
	}
	if err := s.Documents.DeleteByProfessional(ctx, p.ID); err != nil {
		return err
	}
	for _, d := range docs {
		if err := s.Storage.DeleteFile(ctx, d.PublicID, storage.ResourceRaw); err != nil {
			logger.Warn("failed to delete document file", zap.String("publicID", d.PublicID), zap.Error(err))
		}
	}
	return s.Professionals.DeleteByUserID(ctx, p.UserID)
}
