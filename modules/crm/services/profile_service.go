// Package services wires the profile domain to storage and the event bus.
package services

import (
	"context"

	"github.com/pkg/errors"

	"github.com/databankhq/databank/modules/crm/domain/aggregates/profile"
	"github.com/databankhq/databank/pkg/eventbus"
)

// ProfileService is the application entry point for profile reads and
// writes. Every mutation validates first, then delegates to the repository
// (which owns the transaction) and publishes a domain event on success.
type ProfileService struct {
	repo      profile.Repository
	publisher eventbus.EventBus
}

func NewProfileService(repo profile.Repository, publisher eventbus.EventBus) *ProfileService {
	return &ProfileService{repo: repo, publisher: publisher}
}

// GetAll fetches the five tables and reconciles them into denormalized
// profiles, one per person, in person order.
func (s *ProfileService) GetAll(ctx context.Context) ([]profile.Profile, error) {
	persons, err := s.repo.Persons(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load persons")
	}
	companies, err := s.repo.Companies(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load companies")
	}
	geos, err := s.repo.Geographies(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load geographies")
	}
	revenues, err := s.repo.Revenues(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load revenues")
	}
	socials, err := s.repo.Socials(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load socials")
	}
	return profile.BuildProfiles(persons, companies, geos, revenues, socials), nil
}

// CreateProfile validates and persists one canonical record. It satisfies
// the import pipeline's creator contract, so single creates and batch rows
// take the same path.
func (s *ProfileService) CreateProfile(ctx context.Context, rec profile.CanonicalRecord) (int64, error) {
	if err := rec.Validate(); err != nil {
		return 0, err
	}
	personID, err := s.repo.CreateProfile(ctx, rec)
	if err != nil {
		return 0, err
	}
	s.publisher.Publish(profile.CreatedEvent{PersonID: personID, Record: rec})
	return personID, nil
}

// ApplyEdit applies a partial edit. An edit with no sections succeeds
// without touching storage.
func (s *ProfileService) ApplyEdit(ctx context.Context, personID int64, edit profile.ProfileEdit) error {
	if edit.IsEmpty() {
		return nil
	}
	if err := s.repo.UpdateSections(ctx, personID, edit); err != nil {
		return err
	}
	s.publisher.Publish(profile.UpdatedEvent{PersonID: personID, Edit: edit})
	return nil
}

// Delete removes a person and every dependent row.
func (s *ProfileService) Delete(ctx context.Context, personID int64) error {
	if err := s.repo.DeletePerson(ctx, personID); err != nil {
		return err
	}
	s.publisher.Publish(profile.DeletedEvent{PersonID: personID})
	return nil
}

// EmployeesByCompany lists persons whose company name contains the fragment,
// case-insensitively.
func (s *ProfileService) EmployeesByCompany(ctx context.Context, company string) ([]profile.PersonRow, error) {
	return s.repo.EmployeesByCompany(ctx, company)
}
