package db

import (
	"github.com/pkg/errors"
	"github.com/worklinehq/workline/models"
	"gorm.io/gorm"
)

// AuthRepository is the identity lookup the messenger consumes. Accounts are
// created and managed elsewhere.
type AuthRepository interface {
	FindUserByID(id uint) (*models.User, error)
	FindUserByUsername(username string) (*models.User, error)
}

type authRepo struct {
	DB *gorm.DB
}

func NewAuthRepo(db *GormDB) AuthRepository {
	return &authRepo{db.DB}
}

func (a *authRepo) FindUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := a.DB.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *authRepo) FindUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := a.DB.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, errors.Wrap(err, "could not find user")
	}
	return &user, nil
}
