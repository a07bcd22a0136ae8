package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/magabrotheeeer/economy-ledger/internal/models"
	"github.com/magabrotheeeer/economy-ledger/internal/storage"
)

const accountColumns = `uid, username, email, password_hash, is_admin,
	balance, bps_balance, active_discount,
	employment_status, active_loan, credit_score, is_economy_paused,
	loan_start_date, loan_deadline, last_interest_applied, last_repayment_date,
	membership_level, membership_last_paid, trial_expiration, shop_order_count,
	renewal_date, expiration_date, renewal_pending, renewal_request_date,
	cosmetics_owned, navbar_color,
	retirement_savings, retirement_interest_month, retirement_daily_total, retirement_daily_date,
	created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var (
		a                                                 models.Account
		loanStart, loanDeadline, lastInterest, lastRepaid sql.NullTime
		lastPaid, trialExp, renewalReq                    sql.NullTime
		cosmetics                                         []byte
	)
	if err := row.Scan(&a.UID, &a.Username, &a.Email, &a.PasswordHash, &a.IsAdmin,
		&a.Balance, &a.BPSBalance, &a.ActiveDiscount,
		&a.EmploymentStatus, &a.ActiveLoan, &a.CreditScore, &a.IsEconomyPaused,
		&loanStart, &loanDeadline, &lastInterest, &lastRepaid,
		&a.MembershipLevel, &lastPaid, &trialExp, &a.ShopOrderCount,
		&a.RenewalDate, &a.ExpirationDate, &a.RenewalPending, &renewalReq,
		&cosmetics, &a.NavbarColor,
		&a.RetirementSavings, &a.RetirementInterestMonth, &a.RetirementDailyTotal, &a.RetirementDailyDate,
		&a.CreatedAt); err != nil {
		return nil, err
	}
	a.LoanStartDate = nullTime(loanStart)
	a.LoanDeadline = nullTime(loanDeadline)
	a.LastInterestApplied = nullTime(lastInterest)
	a.LastRepaymentDate = nullTime(lastRepaid)
	a.MembershipLastPaid = nullTime(lastPaid)
	a.TrialExpiration = nullTime(trialExp)
	a.RenewalRequestDate = nullTime(renewalReq)

	a.CosmeticsOwned = map[string]bool{}
	if len(cosmetics) > 0 {
		if err := json.Unmarshal(cosmetics, &a.CosmeticsOwned); err != nil {
			return nil, fmt.Errorf("decode cosmetics_owned: %w", err)
		}
	}
	return &a, nil
}

func encodeCosmetics(owned map[string]bool) ([]byte, error) {
	if owned == nil {
		owned = map[string]bool{}
	}
	return json.Marshal(owned)
}

// CreateAccount сохраняет новый счёт и заполняет UID и CreatedAt.
func (c *conn) CreateAccount(ctx context.Context, acc *models.Account) error {
	const op = "storage.CreateAccount"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	cosmetics, err := encodeCosmetics(acc.CosmeticsOwned)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	query := `INSERT INTO accounts (username, username_lower, email, password_hash, is_admin,
			      balance, bps_balance, credit_score, employment_status, membership_level,
			      renewal_date, expiration_date, cosmetics_owned)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			  RETURNING uid, created_at`
	err = c.q.QueryRowContext(ctx, query,
		acc.Username, strings.ToLower(acc.Username), acc.Email, acc.PasswordHash, acc.IsAdmin,
		acc.Balance, acc.BPSBalance, acc.CreditScore, acc.EmploymentStatus, acc.MembershipLevel,
		acc.RenewalDate, acc.ExpirationDate, cosmetics).Scan(&acc.UID, &acc.CreatedAt)
	if err != nil {
		err = wrap(op, err)
		if errors.Is(err, storage.ErrAlreadyExists) {
			return fmt.Errorf("%s: %w", op, storage.ErrUsernameTaken)
		}
		return err
	}
	return nil
}

// LockAccount читает счёт и блокирует его строку до конца транзакции.
func (c *conn) LockAccount(ctx context.Context, uid string) (*models.Account, error) {
	const op = "storage.LockAccount"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE uid = $1 FOR UPDATE`
	acc, err := scanAccount(c.q.QueryRowContext(ctx, query, uid))
	if err != nil {
		return nil, wrap(op, err)
	}
	return acc, nil
}

// LockAccounts блокирует счета в порядке возрастания uid, чтобы встречные
// переводы не приводили к взаимной блокировке.
func (c *conn) LockAccounts(ctx context.Context, uids ...string) (map[string]*models.Account, error) {
	const op = "storage.LockAccounts"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	sorted := slices.Clone(uids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	result := make(map[string]*models.Account, len(sorted))
	for _, uid := range sorted {
		acc, err := c.LockAccount(ctx, uid)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result[uid] = acc
	}
	return result, nil
}

// FindAccountUIDByUsername ищет счёт по имени без учёта регистра.
func (c *conn) FindAccountUIDByUsername(ctx context.Context, username string) (string, error) {
	const op = "storage.FindAccountUIDByUsername"
	if err := checkCtx(ctx, op); err != nil {
		return "", err
	}

	var uid string
	err := c.q.QueryRowContext(ctx, `SELECT uid FROM accounts WHERE username_lower = $1`,
		strings.ToLower(strings.TrimSpace(username))).Scan(&uid)
	if err != nil {
		return "", wrap(op, err)
	}
	return uid, nil
}

// UpdateAccount сохраняет все изменяемые поля счёта.
func (c *conn) UpdateAccount(ctx context.Context, acc *models.Account) error {
	const op = "storage.UpdateAccount"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	cosmetics, err := encodeCosmetics(acc.CosmeticsOwned)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	query := `UPDATE accounts SET
			      is_admin = $2, balance = $3, bps_balance = $4, active_discount = $5,
			      employment_status = $6, active_loan = $7, credit_score = $8, is_economy_paused = $9,
			      loan_start_date = $10, loan_deadline = $11, last_interest_applied = $12, last_repayment_date = $13,
			      membership_level = $14, membership_last_paid = $15, trial_expiration = $16, shop_order_count = $17,
			      renewal_date = $18, expiration_date = $19, renewal_pending = $20, renewal_request_date = $21,
			      cosmetics_owned = $22, navbar_color = $23,
			      retirement_savings = $24, retirement_interest_month = $25,
			      retirement_daily_total = $26, retirement_daily_date = $27
			  WHERE uid = $1`
	result, err := c.q.ExecContext(ctx, query, acc.UID,
		acc.IsAdmin, acc.Balance, acc.BPSBalance, acc.ActiveDiscount,
		acc.EmploymentStatus, acc.ActiveLoan, acc.CreditScore, acc.IsEconomyPaused,
		acc.LoanStartDate, acc.LoanDeadline, acc.LastInterestApplied, acc.LastRepaymentDate,
		acc.MembershipLevel, acc.MembershipLastPaid, acc.TrialExpiration, acc.ShopOrderCount,
		acc.RenewalDate, acc.ExpirationDate, acc.RenewalPending, acc.RenewalRequestDate,
		cosmetics, acc.NavbarColor,
		acc.RetirementSavings, acc.RetirementInterestMonth,
		acc.RetirementDailyTotal, acc.RetirementDailyDate)
	if err != nil {
		return wrap(op, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return nil
}

// Account возвращает счёт без блокировки.
func (s *Storage) Account(ctx context.Context, uid string) (*models.Account, error) {
	const op = "storage.Account"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE uid = $1`
	acc, err := scanAccount(s.DB.QueryRowContext(ctx, query, uid))
	if err != nil {
		return nil, wrap(op, err)
	}
	return acc, nil
}

// AccountByUsername возвращает счёт по имени без учёта регистра.
func (s *Storage) AccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	const op = "storage.AccountByUsername"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE username_lower = $1`
	acc, err := scanAccount(s.DB.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(username))))
	if err != nil {
		return nil, wrap(op, err)
	}
	return acc, nil
}

// AccountUIDs возвращает идентификаторы всех счетов для фоновых задач.
func (s *Storage) AccountUIDs(ctx context.Context) ([]string, error) {
	const op = "storage.AccountUIDs"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT uid FROM accounts ORDER BY uid`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []string
	for rows.Next() {
		var uid string
		if err = rows.Scan(&uid); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, uid)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// PendingRenewals возвращает счета, ожидающие продления документа.
func (s *Storage) PendingRenewals(ctx context.Context) ([]*models.Account, error) {
	const op = "storage.PendingRenewals"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + accountColumns + ` FROM accounts
			  WHERE renewal_pending
			  ORDER BY renewal_request_date NULLS LAST, uid`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, acc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
