package repository

import (
	"Backend-CMS/internal/app/ds"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

var ErrInvalidCredentials = errors.New("invalid login or password")

// GetUserByLogin returns one account by login.
func (r *UserRepository) GetUserByLogin(login string) (ds.Users, error) {
	user := ds.Users{}
	err := r.db.Where("login = ?", login).First(&user).Error
	if err != nil {
		return ds.Users{}, err
	}
	return user, nil
}

// GetUserByID returns one account by id.
func (r *UserRepository) GetUserByID(id uint) (ds.Users, error) {
	user := ds.Users{}
	err := r.db.Where("user_id = ?", id).First(&user).Error
	if err != nil {
		return ds.Users{}, err
	}
	return user, nil
}

// Authenticate checks the login/password pair against the stored bcrypt
// hash. Returns ErrInvalidCredentials for both unknown logins and wrong
// passwords so callers cannot tell them apart.
func (r *UserRepository) Authenticate(login, password string) (ds.Users, error) {
	user, err := r.GetUserByLogin(login)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ds.Users{}, ErrInvalidCredentials
	}
	if err != nil {
		return ds.Users{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return ds.Users{}, ErrInvalidCredentials
	}

	return user, nil
}

// CreateUser stores a new account, hashing the given plaintext password.
func (r *UserRepository) CreateUser(user *ds.Users, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hash)
	return r.db.Create(user).Error
}

// UpdateLogin renames an account.
func (r *UserRepository) UpdateLogin(userID uint, login string) error {
	return r.db.Model(&ds.Users{}).Where("user_id = ?", userID).Update("login", login).Error
}

// UpdatePassword replaces the stored hash.
func (r *UserRepository) UpdatePassword(userID uint, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return r.db.Model(&ds.Users{}).Where("user_id = ?", userID).Update("password", string(hash)).Error
}
