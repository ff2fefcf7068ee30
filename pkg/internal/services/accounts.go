package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	localCache "git.solsynth.dev/hypernet/blogicum/pkg/internal/cache"
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/database"
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/models"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("please enter a correct username and password")

func hashCost() int {
	cost := viper.GetInt("security.bcrypt_cost")
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return cost
}

func GetAccountWithID(id uint) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("id = ?", id).First(&account).Error; err != nil {
		return account, err
	}
	return account, nil
}

func accountCacheKey(id uint) string {
	return fmt.Sprintf("account#%d", id)
}

// GetCachedAccount is GetAccountWithID backed by the local cache, used to
// resolve the session owner on every request.
func GetCachedAccount(id uint) (models.Account, error) {
	if localCache.S == nil {
		return GetAccountWithID(id)
	}

	marshal := marshaler.New(cache.New[any](localCache.S))
	ctx := context.Background()

	if val, err := marshal.Get(ctx, accountCacheKey(id), new(models.Account)); err == nil {
		return *val.(*models.Account), nil
	}

	account, err := GetAccountWithID(id)
	if err != nil {
		return account, err
	}

	_ = marshal.Set(
		ctx,
		accountCacheKey(id),
		account,
		store.WithExpiration(10*time.Minute),
	)
	localCache.Sync()

	return account, nil
}

func InvalidAccountCache(id uint) {
	if localCache.S == nil {
		return
	}
	_ = cache.New[any](localCache.S).Delete(context.Background(), accountCacheKey(id))
}

func GetAccountByName(name string) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("username = ?", name).First(&account).Error; err != nil {
		return account, err
	}
	return account, nil
}

func RegisterAccount(username, password string) (models.Account, error) {
	var account models.Account
	var count int64
	if err := database.C.Model(&models.Account{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return account, fmt.Errorf("unable to count existing account: %v", err)
	}
	if count > 0 {
		return account, fmt.Errorf("a user with that username already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost())
	if err != nil {
		return account, err
	}

	account = models.Account{
		Username: username,
		Password: string(hash),
		IsActive: true,
	}
	if err := database.C.Create(&account).Error; err != nil {
		return account, err
	}

	log.Info().Uint("id", account.ID).Str("username", username).Msg("A new account has been registered.")
	return account, nil
}

func Authenticate(username, password string) (models.Account, error) {
	account, err := GetAccountByName(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account, ErrInvalidCredentials
		}
		return account, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return account, ErrInvalidCredentials
		}
		return account, err
	}
	if !account.IsActive {
		return account, ErrInvalidCredentials
	}

	account.LastLoginAt = lo.ToPtr(time.Now())
	if err := database.C.Model(&account).Update("last_login_at", account.LastLoginAt).Error; err != nil {
		log.Warn().Err(err).Uint("id", account.ID).Msg("Unable to update last login time...")
	}
	InvalidAccountCache(account.ID)

	return account, nil
}

func EditProfile(account models.Account, firstName, lastName, email string) (models.Account, error) {
	account.FirstName = firstName
	account.LastName = lastName
	account.Email = email

	err := database.C.Model(&account).Updates(map[string]any{
		"first_name": firstName,
		"last_name":  lastName,
		"email":      email,
	}).Error
	InvalidAccountCache(account.ID)
	return account, err
}

// DeleteAccount removes the account together with its posts, its comments
// and every comment left on its posts.
func DeleteAccount(account models.Account) error {
	defer InvalidAccountCache(account.ID)
	return database.C.Transaction(func(tx *gorm.DB) error {
		ownedPosts := tx.Session(&gorm.Session{NewDB: true}).
			Model(&models.Post{}).
			Select("id").
			Where("author_id = ?", account.ID)

		if err := tx.
			Where("author_id = ? OR post_id IN (?)", account.ID, ownedPosts).
			Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", account.ID).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Account{}, account.ID).Error
	})
}

// EnsureStaffAccounts promotes the named accounts to staff, used to bootstrap
// access to the back office.
func EnsureStaffAccounts(names []string) error {
	if len(names) == 0 {
		return nil
	}
	return database.C.Model(&models.Account{}).
		Where("username IN ?", names).
		Update("is_staff", true).Error
}
