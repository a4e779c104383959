package user

import (
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("user not found")

type UserRepository interface {
	Create(u *User) error
	Update(u *User) error
	GetByID(id string) (*User, error)
	GetByEmail(email string) (*User, error)
	GetByGoogleID(googleID string) (*User, error)
	// Delete removes the account; owned rows go with it through ON DELETE CASCADE.
	Delete(id string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(u *User) error {
	return r.db.Create(u).Error
}

func (r *userRepository) Update(u *User) error {
	return r.db.Save(u).Error
}

func (r *userRepository) first(query string, arg interface{}) (*User, error) {
	var u User
	if err := r.db.Where(query, arg).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(id string) (*User, error) {
	return r.first("id = ?", id)
}

func (r *userRepository) GetByEmail(email string) (*User, error) {
	return r.first("lower(email) = lower(?)", email)
}

func (r *userRepository) GetByGoogleID(googleID string) (*User, error) {
	return r.first("google_id = ?", googleID)
}

func (r *userRepository) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
