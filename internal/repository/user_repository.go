package repository

import (
	"github.com/planhive/planhive-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// DeleteCascade deletes a user and all dependent data in a transaction.
// Plans the user organizes disappear entirely; tasks the user claimed in
// other people's plans go back to the available pool.
func (r *GormUserRepository) DeleteCascade(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var planIDs []string
		if err := tx.Model(&models.Plan{}).
			Where("organizer_id = ?", id).
			Pluck("id", &planIDs).Error; err != nil {
			return err
		}

		if len(planIDs) > 0 {
			if err := tx.Where("plan_id IN ?", planIDs).Delete(&models.Task{}).Error; err != nil {
				return err
			}
			if err := tx.Where("plan_id IN ?", planIDs).Delete(&models.Participant{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", planIDs).Delete(&models.Plan{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.Participant{}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Task{}).
			Where("user_id = ?", id).
			Updates(map[string]interface{}{
				"user_id": nil,
				"status":  models.TaskStatusAvailable,
			}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&models.User{}).Error
	})
}
