// Package userrepo implements user persistence with GORM.
package userrepo

import (
	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO represents the database structure for persisting users.
type UserDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username string    `gorm:"type:varchar(150);uniqueIndex;not null"`
	Email    string    `gorm:"type:varchar(255);not null"`
	Role     string    `gorm:"type:varchar(20);index;not null"`
	IsActive bool      `gorm:"not null;default:true"`
}

// TableName overrides GORM's default naming to use "users".
func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(entity *user.User) UserDTO {
	return UserDTO{
		ID:       entity.ID().Bytes(),
		Username: entity.Username(),
		Email:    entity.Email(),
		Role:     entity.Role().String(),
		IsActive: entity.IsActive(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	role, err := user.RoleFromString(dto.Role)
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(id, dto.Username, dto.Email, role, dto.IsActive)
}
