package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"househunters/internal/domain"
	"househunters/internal/domain/models"
	"househunters/internal/repositories"
	"househunters/internal/utils"
	"househunters/listing"
)

type AmenityService struct {
	Repo      repositories.AmenityRepository
	Log       logrus.FieldLogger
	RequestID string
}

var errAmenityExists = domain.ConflictError{Msg: "Amenity with this name already exists"}

func (s AmenityService) List(ctx context.Context) ([]listing.Amenity, error) {
	return s.Repo.List(ctx)
}

func (s AmenityService) Create(ctx context.Context, in models.AmenityInput) (listing.Amenity, error) {
	in.Name = utils.NormalizeSpace(in.Name)
	in.Icon = strings.TrimSpace(in.Icon)
	if err := validateInput(in); err != nil {
		return listing.Amenity{}, err
	}
	if _, err := s.Repo.FindByName(ctx, in.Name); err == nil {
		return listing.Amenity{}, errAmenityExists
	} else if !domain.IsNotFound(err) {
		return listing.Amenity{}, err
	}
	a, err := s.Repo.Create(ctx, listing.Amenity{Name: in.Name, Icon: in.Icon})
	if err != nil {
		return listing.Amenity{}, err
	}
	utils.LogEvent(s.Log, s.RequestID, "amenities", "create", fmt.Sprintf("amenity_id=%d", a.ID))
	return a, nil
}

func (s AmenityService) Update(ctx context.Context, id int64, patch models.AmenityPatch) (listing.Amenity, error) {
	if patch.Name != nil {
		n := utils.NormalizeSpace(*patch.Name)
		patch.Name = &n
	}
	if err := validateInput(patch); err != nil {
		return listing.Amenity{}, err
	}
	cur, err := s.Repo.Get(ctx, id)
	if err != nil {
		return listing.Amenity{}, err
	}
	if patch.Name != nil {
		other, err := s.Repo.FindByName(ctx, *patch.Name)
		switch {
		case err == nil && other.ID != id:
			return listing.Amenity{}, errAmenityExists
		case err != nil && !domain.IsNotFound(err):
			return listing.Amenity{}, err
		}
		cur.Name = *patch.Name
	}
	if patch.Icon != nil {
		cur.Icon = strings.TrimSpace(*patch.Icon)
	}
	return s.Repo.Update(ctx, cur)
}

func (s AmenityService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.Log, s.RequestID, "amenities", "delete", fmt.Sprintf("amenity_id=%d", id))
	return nil
}
