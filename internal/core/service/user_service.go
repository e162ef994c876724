package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/SinghShreyansh/users-service/internal/core/domain"
	"github.com/SinghShreyansh/users-service/internal/core/ports"
)

// InputValidator abstracts the rule engine (go-playground/validator).
type InputValidator interface {
	Validate(i any) error
	// Entity applies the stricter stored-record rules: name min length 3,
	// password a positive number.
	Entity(name string, password domain.Password) error
}

// UserOptions tunes UserService behaviour.
type UserOptions struct {
	// StrictValidation applies the entity rule set on create and update on
	// top of the action rules.
	StrictValidation bool
}

// UserService validates input, delegates to the repository, projects the
// result to the public field set and notifies the event bus on update and delete.
type UserService struct {
	repo      ports.UserRepository
	projector ports.Projector
	notifier  ports.ChangeNotifier
	validator InputValidator
	opts      UserOptions
	log       zerolog.Logger
}

func NewUserService(
	repo ports.UserRepository,
	projector ports.Projector,
	notifier ports.ChangeNotifier,
	validator InputValidator,
	opts UserOptions,
	log zerolog.Logger,
) *UserService {
	return &UserService{
		repo:      repo,
		projector: projector,
		notifier:  notifier,
		validator: validator,
		opts:      opts,
		log:       log,
	}
}

// List returns every stored user in the repository's default order.
func (s *UserService) List(ctx context.Context) ([]domain.Projection, error) {
	recs, err := s.repo.Find(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return s.projector.ProjectMany(ctx, recs, domain.PublicFields), nil
}

// Create inserts a new user. No change notification is emitted.
func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (domain.Projection, error) {
	if err := s.validate(&in, in.Name, in.Password); err != nil {
		return nil, err
	}

	created, err := s.repo.Insert(ctx, &domain.UserRecord{Name: in.Name, Password: in.Password})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info().Str("id", created.ID).Msg("user created")
	return s.projector.Project(ctx, created, domain.PublicFields), nil
}

// Update overwrites name and password of the user with the given id.
func (s *UserService) Update(ctx context.Context, in ports.UpdateUserInput) (domain.Projection, error) {
	if err := s.validate(&in, in.Name, in.Password); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateByID(ctx, in.ID, ports.UserPatch{Name: in.Name, Password: in.Password})
	if err != nil {
		return nil, fmt.Errorf("update user %s: %w", in.ID, err)
	}

	out := s.projector.Project(ctx, updated, domain.PublicFields)
	s.notify(ctx, domain.ChangeUpdated, out)
	return out, nil
}

// Delete removes the user and returns it as it was before removal.
func (s *UserService) Delete(ctx context.Context, in ports.DeleteUserInput) (domain.Projection, error) {
	if err := s.validator.Validate(&in); err != nil {
		return nil, err
	}

	removed, err := s.repo.RemoveByID(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("delete user %s: %w", in.ID, err)
	}

	out := s.projector.Project(ctx, removed, domain.PublicFields)
	s.notify(ctx, domain.ChangeDeleted, out)
	return out, nil
}

// Seed inserts the starter users. It does not check whether the collection
// is empty; use SeedIfEmpty from the bootstrap.
func (s *UserService) Seed(ctx context.Context) (int, error) {
	seeds := domain.SeedUsers()
	recs := make([]*domain.UserRecord, len(seeds))
	for i := range seeds {
		recs[i] = &seeds[i]
	}

	inserted, err := s.repo.InsertMany(ctx, recs)
	if err != nil {
		return 0, fmt.Errorf("seed users: %w", err)
	}
	s.log.Info().Int("count", len(inserted)).Msg("users collection seeded")
	return len(inserted), nil
}

// SeedIfEmpty runs Seed only when the collection holds no records and
// reports how many records were inserted.
func (s *UserService) SeedIfEmpty(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed users: %w", err)
	}
	if n > 0 {
		s.log.Debug().Int64("count", n).Msg("users collection not empty, seed skipped")
		return 0, nil
	}
	return s.Seed(ctx)
}

func (s *UserService) validate(in any, name string, password domain.Password) error {
	if err := s.validator.Validate(in); err != nil {
		return err
	}
	if s.opts.StrictValidation {
		return s.validator.Entity(name, password)
	}
	return nil
}

// notify hands the event to the bus. Failures are logged, not returned: the
// mutation has already been committed.
func (s *UserService) notify(ctx context.Context, kind domain.ChangeKind, payload domain.Projection) {
	if err := s.notifier.Notify(ctx, kind, payload); err != nil {
		s.log.Warn().Err(err).
			Str("kind", string(kind)).
			Str("id", payload.ID()).
			Msg("failed to notify entity change")
	}
}
