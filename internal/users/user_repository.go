package users

import (
	"errors"
	"fmt"

	"stockflow/internal/repository"
	custom_error "stockflow/pkg/errors"
	"stockflow/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *UserRepository {
	return &UserRepository{repository: r}
}

func (r *UserRepository) GetUsers() (*[]models.User, error) {
	var users = []models.User{}
	query := r.userQuery().Order(goqu.I("id").Asc())

	if err := query.Executor().ScanStructs(&users); err != nil {
		return nil, fmt.Errorf("unable to select users from database: %w", err)
	}

	return &users, nil
}

func (r *UserRepository) GetUser(id int) (*models.User, error) {
	var user models.User
	query := r.userQuery().Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&user)
	if err != nil {
		return nil, fmt.Errorf("unable to select user from database: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &user, nil
}

func (r *UserRepository) PersistUser(user models.User) (*models.User, error) {
	query := r.repository.GoquDBWrapper.Insert("users").
		Rows(goqu.Record{
			"username":      user.Username,
			"fullname":      user.Fullname,
			"email":         user.Email,
			"password_hash": user.PasswordHash,
			"role":          user.Role,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&user.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("user", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert user record: %w", err)
	}

	return &user, nil
}

func (r *UserRepository) UpdateUser(id int, changes models.UserChanges) (*models.User, error) {
	updates := goqu.Record{}
	if changes.Fullname != nil {
		updates["fullname"] = *changes.Fullname
	}
	if changes.Email != nil {
		updates["email"] = *changes.Email
	}
	if changes.PasswordHash != nil {
		updates["password_hash"] = *changes.PasswordHash
	}
	if changes.Role != nil {
		updates["role"] = *changes.Role
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	result, err := r.repository.GoquDBWrapper.
		Update("users").
		Set(updates).
		Where(goqu.Ex{"id": id}).
		Executor().
		Exec()
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("user", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, nil
	}

	return r.GetUser(id)
}

func (r *UserRepository) DeleteUser(id int) error {
	result, err := r.repository.GoquDBWrapper.
		Delete("users").
		Where(goqu.Ex{"id": id}).
		Executor().
		Exec()
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("user", string(pqErr.Code))
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) userQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.
		Select("id", "username", "fullname", "email", "role").
		From("users")
}
