package services

//go:generate mockgen -source=user.go -destination=mock_user.go -package=services

import (
	"context"
	"errors"

	"github.com/sbilibin2017/user-crud/internal/database"
	"github.com/sbilibin2017/user-crud/internal/logger"
	"github.com/sbilibin2017/user-crud/internal/models"
)

// PerPage is the fixed size of a listing page.
const PerPage = 10

// Error variables
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
	// ErrUnexpected is returned when the unique constraint rejects a write
	// that passed the email pre-check, i.e. a concurrent request won.
	ErrUnexpected = errors.New("unexpected error")
)

// UnitOfWork runs fn inside a single transaction.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserReader defines read-only operations for users.
type UserReader interface {
	Count(ctx context.Context, q string) (int, error)
	List(ctx context.Context, q string, limit, offset int) ([]models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Create(ctx context.Context, name, email string) (int64, error)
	Update(ctx context.Context, id int64, name, email string) error
	Delete(ctx context.Context, id int64) error
}

// UserService implements listing and CRUD over users.
type UserService struct {
	uow    UnitOfWork
	reader UserReader
	writer UserWriter
}

// NewUserService creates a new UserService instance.
func NewUserService(uow UnitOfWork, reader UserReader, writer UserWriter) *UserService {
	return &UserService{
		uow:    uow,
		reader: reader,
		writer: writer,
	}
}

// List returns the requested page of users whose name or email contains q.
// Pages below 1 are treated as page 1.
func (svc *UserService) List(ctx context.Context, q string, page int) (*models.UserPage, error) {
	if page < 1 {
		page = 1
	}

	result := &models.UserPage{Query: q, Page: page, PerPage: PerPage}

	err := svc.uow.Do(ctx, func(ctx context.Context) error {
		total, err := svc.reader.Count(ctx, q)
		if err != nil {
			return err
		}

		users, err := svc.reader.List(ctx, q, PerPage, (page-1)*PerPage)
		if err != nil {
			return err
		}

		result.Total = total
		result.Pages = (total + PerPage - 1) / PerPage
		result.Users = users
		return nil
	})
	if err != nil {
		logger.Log.Errorw("failed to list users", "q", q, "page", page, "err", err)
		return nil, err
	}

	return result, nil
}

// Get returns the user with the given id.
func (svc *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	var user *models.User

	err := svc.uow.Do(ctx, func(ctx context.Context) error {
		var err error
		user, err = svc.reader.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Create stores a new user. The email pre-check only produces a friendlier
// error; the unique constraint is what guarantees uniqueness.
func (svc *UserService) Create(ctx context.Context, in models.UserInput) (*models.User, error) {
	var user *models.User

	err := svc.uow.Do(ctx, func(ctx context.Context) error {
		existing, err := svc.reader.GetByEmail(ctx, in.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrEmailTaken
		}

		id, err := svc.writer.Create(ctx, in.Name, in.Email)
		if err != nil {
			return err
		}

		user, err = svc.reader.GetByID(ctx, id)
		if err == nil && user == nil {
			err = ErrUserNotFound
		}
		return err
	})

	switch {
	case err == nil:
		logger.Log.Infow("user created", "id", user.ID)
		return user, nil
	case errors.Is(err, ErrEmailTaken):
		logger.Log.Infow("user already exists", "email", in.Email)
		return nil, err
	case database.IsDuplicateKey(err):
		logger.Log.Warnw("concurrent insert won the unique constraint", "email", in.Email, "err", err)
		return nil, ErrUnexpected
	default:
		logger.Log.Errorw("failed to create user", "err", err)
		return nil, err
	}
}

// Update overwrites name and email of an existing user. Another user owning
// the email is a conflict; keeping one's own email is not. There is no
// version check, so concurrent edits of one row resolve as last write wins.
func (svc *UserService) Update(ctx context.Context, id int64, in models.UserInput) error {
	err := svc.uow.Do(ctx, func(ctx context.Context) error {
		user, err := svc.reader.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}

		owner, err := svc.reader.GetByEmail(ctx, in.Email)
		if err != nil {
			return err
		}
		if owner != nil && owner.ID != id {
			return ErrEmailTaken
		}

		return svc.writer.Update(ctx, id, in.Name, in.Email)
	})

	switch {
	case err == nil:
		logger.Log.Infow("user updated", "id", id)
		return nil
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrEmailTaken):
		logger.Log.Infow("user not updated", "id", id, "reason", err)
		return err
	case database.IsDuplicateKey(err):
		logger.Log.Warnw("concurrent write won the unique constraint", "id", id, "err", err)
		return ErrUnexpected
	default:
		logger.Log.Errorw("failed to update user", "id", id, "err", err)
		return err
	}
}

// Delete removes the user with the given id.
func (svc *UserService) Delete(ctx context.Context, id int64) error {
	err := svc.uow.Do(ctx, func(ctx context.Context) error {
		user, err := svc.reader.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}
		return svc.writer.Delete(ctx, id)
	})
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			logger.Log.Errorw("failed to delete user", "id", id, "err", err)
		}
		return err
	}

	logger.Log.Infow("user deleted", "id", id)
	return nil
}
