package app

import (
	"errors"
	"strings"
	"time"

	"github.com/envatex/envatex-api/internal/domain"
	"github.com/envatex/envatex-api/pkg/common"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func (a *Application) checkSuper() {
	const superUsername = "admin"
	const defaultPassword = "envatex"

	var admin domain.SysAdmin
	err := a.gormDB.Where("username = ?", superUsername).First(&admin).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		hashed, herr := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
		if herr != nil {
			zap.L().Error("failed to hash default admin password", zap.Error(herr))
			return
		}
		if err := a.gormDB.Create(&domain.SysAdmin{
			ID:        common.UUIDint64(),
			Username:  superUsername,
			Password:  string(hashed),
			Level:     domain.AdminLevelAdmin,
			Status:    domain.AdminStatusEnabled,
			LastLogin: time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create default admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default admin account", zap.String("username", superUsername))
		}
		return
	case err != nil:
		zap.L().Error("failed to query default admin", zap.Error(err))
		return
	}

	resetLevel := !strings.EqualFold(admin.Level, domain.AdminLevelAdmin)
	resetStatus := !strings.EqualFold(admin.Status, domain.AdminStatusEnabled)
	if !resetLevel && !resetStatus {
		return
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if resetLevel {
		updates["level"] = domain.AdminLevelAdmin
	}
	if resetStatus {
		updates["status"] = domain.AdminStatusEnabled
	}

	if err := a.gormDB.Model(&domain.SysAdmin{}).Where("id = ?", admin.ID).Updates(updates).Error; err != nil {
		zap.L().Error("failed to repair default admin account", zap.Error(err))
		return
	}

	zap.L().Warn("repaired default admin account",
		zap.String("username", superUsername),
		zap.Bool("levelReset", resetLevel),
		zap.Bool("statusEnabled", resetStatus))
}

// CreateOrUpdateAdmin creates an admin account or resets its password,
// used by the bootstrap CLI.
func (a *Application) CreateOrUpdateAdmin(username, password string) (created bool, err error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	var admin domain.SysAdmin
	err = a.gormDB.Where("username = ?", username).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, a.gormDB.Create(&domain.SysAdmin{
			ID:       common.UUIDint64(),
			Username: username,
			Password: string(hashed),
			Level:    domain.AdminLevelAdmin,
			Status:   domain.AdminStatusEnabled,
		}).Error
	}
	if err != nil {
		return false, err
	}

	return false, a.gormDB.Model(&domain.SysAdmin{}).Where("id = ?", admin.ID).Updates(map[string]interface{}{
		"password":   string(hashed),
		"level":      domain.AdminLevelAdmin,
		"status":     domain.AdminStatusEnabled,
		"updated_at": time.Now(),
	}).Error
}
