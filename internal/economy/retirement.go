package economy

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/economy-ledger/internal/lib/month"
	"github.com/magabrotheeeer/economy-ledger/internal/models"
)

// dailyTotal возвращает оборот за текущий день, обнуляя его при смене дня.
func dailyTotal(acc *models.Account, now time.Time) decimal.Decimal {
	if acc.RetirementDailyDate != now.Format(time.DateOnly) {
		return decimal.Zero
	}
	return acc.RetirementDailyTotal
}

func trackDaily(acc *models.Account, amount decimal.Decimal, now time.Time, limit decimal.Decimal) error {
	total := dailyTotal(acc, now).Add(amount)
	if limit.IsPositive() && total.GreaterThan(limit) {
		return fmt.Errorf("%w: %s per day", ErrDailyLimit, Dollars(limit))
	}
	acc.RetirementDailyTotal = total
	acc.RetirementDailyDate = now.Format(time.DateOnly)
	return nil
}

// Deposit переводит наличные в пенсионные накопления. Доступно только работающим.
func Deposit(acc *models.Account, amount decimal.Decimal, now time.Time, limit decimal.Decimal) (Event, error) {
	if err := RequirePositive(amount); err != nil {
		return Event{}, err
	}
	if acc.EmploymentStatus != models.Employed {
		return Event{}, ErrNotEmployed
	}
	if acc.IsEconomyPaused {
		return Event{}, ErrEconomyPaused
	}
	if acc.Balance.LessThan(amount) {
		return Event{}, ErrInsufficientFunds
	}
	if err := trackDaily(acc, amount, now, limit); err != nil {
		return Event{}, err
	}
	acc.Balance = acc.Balance.Sub(amount)
	acc.RetirementSavings = acc.RetirementSavings.Add(amount)
	return Event{Type: models.HistoryTransferOut, Message: fmt.Sprintf("Retirement Deposit: %s", Dollars(amount))}, nil
}

// Withdraw переводит накопления обратно в наличные. Доступно только пенсионерам.
func Withdraw(acc *models.Account, amount decimal.Decimal, now time.Time, limit decimal.Decimal) (Event, error) {
	if err := RequirePositive(amount); err != nil {
		return Event{}, err
	}
	if acc.EmploymentStatus != models.Retired {
		return Event{}, ErrNotRetired
	}
	if acc.RetirementSavings.LessThan(amount) {
		return Event{}, ErrInsufficientSavings
	}
	if err := trackDaily(acc, amount, now, limit); err != nil {
		return Event{}, err
	}
	acc.RetirementSavings = acc.RetirementSavings.Sub(amount)
	acc.Balance = acc.Balance.Add(amount)
	return Event{Type: models.HistoryTransferIn, Message: fmt.Sprintf("Retirement Withdrawal: %s", Dollars(amount))}, nil
}

// ReconcileRetirement начисляет ежемесячный процент первого числа месяца,
// не более одного раза за месяц. Ставка зависит от уровня членства.
func ReconcileRetirement(acc *models.Account, now time.Time) Result {
	if !acc.RetirementSavings.IsPositive() || !month.IsFirstDay(now) {
		return Result{}
	}
	key := month.Key(now)
	if acc.RetirementInterestMonth == key {
		return Result{}
	}
	rate := PlanFor(acc.MembershipLevel).InterestRate
	interest := acc.RetirementSavings.Mul(rate).Round(2)
	acc.RetirementSavings = acc.RetirementSavings.Add(interest)
	acc.RetirementInterestMonth = key

	res := Result{Changed: true}
	res.event(models.HistoryUsage, fmt.Sprintf("Monthly Interest Gained: $%s", interest.StringFixed(2)))
	return res
}

// DaysUntilNextPayout число дней до первого числа следующего месяца.
func DaysUntilNextPayout(now time.Time) int {
	return month.DaysUntilNext(now)
}
