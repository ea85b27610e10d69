package service

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/metrics"
)

type ApplicationRepository interface {
	FindAll(ctx context.Context, filter domain.ApplicationFilter) ([]domain.MissionApplication, error)
	FindByID(ctx context.Context, id uint) (domain.MissionApplication, error)
	FindByIDForUpdate(ctx context.Context, id uint) (domain.MissionApplication, error)
	Exists(ctx context.Context, missionID, volunteerID uint) (bool, error)
	Create(ctx context.Context, application domain.MissionApplication) (domain.MissionApplication, error)
	Update(ctx context.Context, application domain.MissionApplication) (domain.MissionApplication, error)
	Delete(ctx context.Context, id uint) error
}

// ApplicationService owns the application state machine and the filled_slots counter of missions.
type ApplicationService struct {
	tx         Transactor
	repo       ApplicationRepository
	missions   MissionRepository
	volunteers VolunteerRepository
}

func NewApplicationService(tx Transactor, repo ApplicationRepository, missions MissionRepository, volunteers VolunteerRepository) *ApplicationService {
	return &ApplicationService{
		tx:         tx,
		repo:       repo,
		missions:   missions,
		volunteers: volunteers,
	}
}

func (s *ApplicationService) List(ctx context.Context, filter domain.ApplicationFilter) ([]domain.MissionApplication, error) {
	applications, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return applications, nil
}

func (s *ApplicationService) ListByMission(ctx context.Context, missionID uint) ([]domain.MissionApplication, error) {
	if _, err := s.missions.FindByID(ctx, missionID); err != nil {
		return nil, fmt.Errorf("s.missions.FindByID -> %w", err)
	}

	return s.List(ctx, domain.ApplicationFilter{MissionID: &missionID})
}

func (s *ApplicationService) ListByVolunteer(ctx context.Context, volunteerID uint) ([]domain.MissionApplication, error) {
	if _, err := s.volunteers.FindByID(ctx, volunteerID); err != nil {
		return nil, fmt.Errorf("s.volunteers.FindByID -> %w", err)
	}

	return s.List(ctx, domain.ApplicationFilter{VolunteerID: &volunteerID})
}

func (s *ApplicationService) ListByStatus(ctx context.Context, status domain.ApplicationStatus) ([]domain.MissionApplication, error) {
	if !status.Valid() {
		return nil, domain.InvalidArgument("invalid application status %q", status)
	}

	return s.List(ctx, domain.ApplicationFilter{Status: &status})
}

func (s *ApplicationService) Get(ctx context.Context, id uint) (domain.MissionApplication, error) {
	application, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.MissionApplication{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return application, nil
}

func (s *ApplicationService) Create(ctx context.Context, missionID, volunteerID uint) (domain.MissionApplication, error) {
	if err := s.checkPair(ctx, missionID, volunteerID); err != nil {
		return domain.MissionApplication{}, err
	}

	created, err := s.repo.Create(ctx, domain.MissionApplication{
		MissionID:   missionID,
		VolunteerID: volunteerID,
		Status:      domain.ApplicationPending,
		AppliedAt:   now(),
	})
	if err != nil {
		return domain.MissionApplication{}, fmt.Errorf("s.repo.Create -> %w", err)
	}
	metrics.RecordApplicationTransition(string(domain.ApplicationPending))

	return created, nil
}

// checkPair validates a (mission, volunteer) pair for a new or moved application.
func (s *ApplicationService) checkPair(ctx context.Context, missionID, volunteerID uint) error {
	if _, err := s.missions.FindByID(ctx, missionID); err != nil {
		return fmt.Errorf("s.missions.FindByID -> %w", err)
	}

	volunteer, err := s.volunteers.FindByID(ctx, volunteerID)
	if err != nil {
		return fmt.Errorf("s.volunteers.FindByID -> %w", err)
	}
	if volunteer.Status != domain.VolunteerApproved {
		return domain.InvalidState("volunteer %d is not approved, current status is %s", volunteerID, volunteer.Status)
	}

	exists, err := s.repo.Exists(ctx, missionID, volunteerID)
	if err != nil {
		return fmt.Errorf("s.repo.Exists -> %w", err)
	}
	if exists {
		return domain.Conflict("volunteer %d already applied to mission %d", volunteerID, missionID)
	}

	return nil
}

// Update moves a pending application to another mission or volunteer.
func (s *ApplicationService) Update(ctx context.Context, id uint, missionID, volunteerID *uint) (domain.MissionApplication, error) {
	var updated domain.MissionApplication
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		application, err := s.repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("s.repo.FindByIDForUpdate -> %w", err)
		}
		if application.Status != domain.ApplicationPending {
			return domain.InvalidState("only pending applications can be changed, current status is %s", application.Status)
		}

		changed := false
		if missionID != nil && *missionID != application.MissionID {
			application.MissionID = *missionID
			changed = true
		}
		if volunteerID != nil && *volunteerID != application.VolunteerID {
			application.VolunteerID = *volunteerID
			changed = true
		}
		if changed {
			if err = s.checkPair(ctx, application.MissionID, application.VolunteerID); err != nil {
				return err
			}
		}

		updated, err = s.repo.Update(ctx, application)
		if err != nil {
			return fmt.Errorf("s.repo.Update -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.MissionApplication{}, fmt.Errorf("s.tx.WithinTransaction -> %w", err)
	}

	return updated, nil
}

// Approve takes one slot of the mission. The application and mission rows stay locked from the
// capacity check until the increment commits, so concurrent approvals cannot overbook.
func (s *ApplicationService) Approve(ctx context.Context, id uint) (domain.MissionApplication, error) {
	var approved domain.MissionApplication
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		application, err := s.repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("s.repo.FindByIDForUpdate -> %w", err)
		}

		mission, err := s.missions.FindByIDForUpdate(ctx, application.MissionID)
		if err != nil {
			return fmt.Errorf("s.missions.FindByIDForUpdate -> %w", err)
		}

		if err = application.Approve(now()); err != nil {
			return err
		}
		if !mission.HasOpenSlot() {
			metrics.RecordCapacityRejection()
			return domain.ErrCapacityExceeded
		}

		if err = s.missions.IncrementFilledSlots(ctx, mission.ID); err != nil {
			return fmt.Errorf("s.missions.IncrementFilledSlots -> %w", err)
		}

		approved, err = s.repo.Update(ctx, application)
		if err != nil {
			return fmt.Errorf("s.repo.Update -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.MissionApplication{}, fmt.Errorf("s.tx.WithinTransaction -> %w", err)
	}
	metrics.RecordApplicationTransition(string(domain.ApplicationApproved))

	return approved, nil
}

func (s *ApplicationService) Reject(ctx context.Context, id uint, note *string) (domain.MissionApplication, error) {
	rejected, err := s.transition(ctx, id, func(application *domain.MissionApplication) error {
		return application.Reject(note)
	})
	if err != nil {
		return domain.MissionApplication{}, err
	}
	metrics.RecordApplicationTransition(string(domain.ApplicationRejected))

	return rejected, nil
}

// Complete closes an approved application. The slot stays filled.
func (s *ApplicationService) Complete(ctx context.Context, id uint, rating *int, note *string) (domain.MissionApplication, error) {
	completed, err := s.transition(ctx, id, func(application *domain.MissionApplication) error {
		return application.Complete(now(), rating, note)
	})
	if err != nil {
		return domain.MissionApplication{}, err
	}
	metrics.RecordApplicationTransition(string(domain.ApplicationCompleted))

	return completed, nil
}

func (s *ApplicationService) transition(ctx context.Context, id uint, apply func(*domain.MissionApplication) error) (domain.MissionApplication, error) {
	var updated domain.MissionApplication
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		application, err := s.repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("s.repo.FindByIDForUpdate -> %w", err)
		}

		if err = apply(&application); err != nil {
			return err
		}

		updated, err = s.repo.Update(ctx, application)
		if err != nil {
			return fmt.Errorf("s.repo.Update -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.MissionApplication{}, fmt.Errorf("s.tx.WithinTransaction -> %w", err)
	}

	return updated, nil
}

// Delete removes the application and gives its slot back when it was approved.
func (s *ApplicationService) Delete(ctx context.Context, id uint) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		application, err := s.repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("s.repo.FindByIDForUpdate -> %w", err)
		}

		if application.HoldsReleasableSlot() {
			if _, err = s.missions.FindByIDForUpdate(ctx, application.MissionID); err != nil {
				return fmt.Errorf("s.missions.FindByIDForUpdate -> %w", err)
			}
			if err = s.missions.DecrementFilledSlots(ctx, application.MissionID); err != nil {
				return fmt.Errorf("s.missions.DecrementFilledSlots -> %w", err)
			}
		}

		if err = s.repo.Delete(ctx, id); err != nil {
			return fmt.Errorf("s.repo.Delete -> %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("s.tx.WithinTransaction -> %w", err)
	}

	return nil
}
