// Package services содержит регистрацию и вход пользователей.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/economy-ledger/internal/economy"
	"github.com/magabrotheeeer/economy-ledger/internal/lib/jwt"
	"github.com/magabrotheeeer/economy-ledger/internal/lib/password"
	"github.com/magabrotheeeer/economy-ledger/internal/models"
	"github.com/magabrotheeeer/economy-ledger/internal/storage"
)

// ErrInvalidCredentials неверное имя пользователя или пароль.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AccountRepository описывает работу со счетами, нужную для аутентификации.
type AccountRepository interface {
	// WithinTx выполняет fn в транзакции.
	WithinTx(ctx context.Context, fn storage.TxFunc) error
	// AccountByUsername ищет счёт без учёта регистра.
	AccountByUsername(ctx context.Context, username string) (*models.Account, error)
}

// AuthService отвечает за регистрацию и выдачу JWT.
type AuthService struct {
	accounts      AccountRepository
	jwtMaker      jwt.Maker
	adminUsername string
	now           func() time.Time
}

// NewAuthService создает новый экземпляр AuthService. Пользователь с именем
// adminUsername получает права администратора при регистрации.
func NewAuthService(accounts AccountRepository, jwtMaker jwt.Maker, adminUsername string) *AuthService {
	return &AuthService{
		accounts:      accounts,
		jwtMaker:      jwtMaker,
		adminUsername: adminUsername,
		now:           time.Now,
	}
}

// Register создает счёт с нулевым балансом, стандартным уровнем и документом
// сроком на год, возвращает uid счёта.
func (s *AuthService) Register(ctx context.Context, email, username, rawPassword string) (string, error) {
	const op = "services.auth.Register"
	username = strings.TrimSpace(username)
	if username == "" {
		return "", economy.ErrInvalidUsername
	}
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	now := s.now().UTC()
	renewal, expiration := economy.IdentityPeriod(now)
	acc := &models.Account{
		Username:         username,
		Email:            email,
		PasswordHash:     hashed,
		IsAdmin:          s.adminUsername != "" && strings.EqualFold(username, s.adminUsername),
		Balance:          decimal.Zero,
		ActiveDiscount:   decimal.Zero,
		EmploymentStatus: models.Unemployed,
		ActiveLoan:       decimal.Zero,
		CreditScore:      economy.DefaultCreditScore,
		MembershipLevel:  models.TierStandard,
		RenewalDate:      renewal,
		ExpirationDate:   expiration,
		CosmeticsOwned:   map[string]bool{},
	}

	err = s.accounts.WithinTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		return tx.CreateAccount(ctx, acc)
	})
	if err != nil {
		if errors.Is(err, storage.ErrUsernameTaken) {
			return "", err
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return acc.UID, nil
}

// Login проверяет пароль и выдает токен доступа.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (string, *models.Account, error) {
	const op = "services.auth.Login"
	acc, err := s.accounts.AccountByUsername(ctx, username)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(acc.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	role := jwt.RoleUser
	if acc.IsAdmin {
		role = jwt.RoleAdmin
	}
	token, err := s.jwtMaker.GenerateToken(acc.Username, role, acc.UID)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, acc, nil
}
