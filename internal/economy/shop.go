package economy

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/economy-ledger/internal/models"
)

// Quote расчёт стоимости покупки.
type Quote struct {
	Base       decimal.Decimal `json:"base"`
	Discounted decimal.Decimal `json:"discounted"`
	Tax        decimal.Decimal `json:"tax"`
	Total      decimal.Decimal `json:"total"`
	Cashback   decimal.Decimal `json:"cashback"`
	Free       bool            `json:"free"`
}

// QuotePrice считает итоговую цену в фиксированном порядке:
// базовая цена -> скидка (с округлением вниз) -> налог уровня (с округлением вниз).
// Бесплатная покупка пропускает скидку и налог и стоит 0.
func QuotePrice(base, discount decimal.Decimal, plan Plan, free bool) Quote {
	if free {
		return Quote{Base: base, Discounted: decimal.Zero, Tax: decimal.Zero, Total: decimal.Zero, Cashback: decimal.Zero, Free: true}
	}
	one := decimal.NewFromInt(1)
	discounted := base.Mul(one.Sub(discount)).Floor()
	total := discounted.Mul(one.Add(plan.TaxRate)).Floor()
	return Quote{
		Base:       base,
		Discounted: discounted,
		Tax:        total.Sub(discounted),
		Total:      total,
		Cashback:   total.Mul(plan.Cashback).Floor(),
	}
}

// CheckIdentity возвращает ErrIDExpired, если срок документа истёк.
func CheckIdentity(acc *models.Account, now time.Time) error {
	if acc.ExpirationDate.Before(now) {
		return ErrIDExpired
	}
	return nil
}

// IdentityPeriod даты продления и окончания документа, выданного в момент now.
func IdentityPeriod(now time.Time) (renewal, expiration time.Time) {
	return now, now.AddDate(1, 0, 0)
}

// Purchase покупает товар магазина: списывает итоговую цену, начисляет BPS и кэшбэк,
// сбрасывает скидку и возвращает предмет для инвентаря.
func Purchase(acc *models.Account, item models.ShopItem, now time.Time) (Quote, models.InventoryItem, Result, error) {
	if err := CheckIdentity(acc, now); err != nil {
		return Quote{}, models.InventoryItem{}, Result{}, err
	}
	if acc.IsEconomyPaused {
		return Quote{}, models.InventoryItem{}, Result{}, ErrEconomyPaused
	}

	plan := PlanFor(acc.MembershipLevel)
	free := IsNextItemFree(acc)
	q := QuotePrice(item.Cost, acc.ActiveDiscount, plan, free)
	if acc.Balance.LessThan(q.Total) {
		return Quote{}, models.InventoryItem{}, Result{}, ErrInsufficientFunds
	}

	acc.Balance = acc.Balance.Sub(q.Total).Add(q.Cashback)
	acc.BPSBalance += plan.BPSPerPurchase
	acc.ActiveDiscount = decimal.Zero
	if free {
		acc.ShopOrderCount = 0
	}

	inv := models.InventoryItem{
		AccountUID: acc.UID,
		Name:       item.Name,
		Kind:       models.KindItem,
		Value:      q.Total.Div(decimal.NewFromInt(2)).Floor(),
		IsFree:     free,
		OriginalID: item.ID,
		AcquiredAt: now,
	}

	res := Result{Changed: true}
	if free {
		res.event(models.HistoryPurchase, fmt.Sprintf("Claimed free %s", item.Name))
		res.Notices = append(res.Notices, fmt.Sprintf("🎁 *Free Item:* %s claimed %s with their %s membership.", acc.Username, item.Name, upper(plan.Tier)))
	} else {
		res.event(models.HistoryPurchase, fmt.Sprintf("Bought %s for %s", item.Name, Dollars(q.Total)))
		res.Notices = append(res.Notices, fmt.Sprintf("🛒 *Shop Purchase:* %s bought %s for %s.", acc.Username, item.Name, Dollars(q.Total)))
	}
	if q.Cashback.IsPositive() {
		res.event(models.HistoryTransferIn, fmt.Sprintf("Cashback %s on %s", Dollars(q.Cashback), item.Name))
	}
	return q, inv, res, nil
}

// PurchaseBPS покупает купон за бонусные очки.
func PurchaseBPS(acc *models.Account, item models.BPSItem, now time.Time) (models.InventoryItem, Result, error) {
	if err := CheckIdentity(acc, now); err != nil {
		return models.InventoryItem{}, Result{}, err
	}
	if acc.BPSBalance < item.Cost {
		return models.InventoryItem{}, Result{}, ErrInsufficientBPS
	}
	acc.BPSBalance -= item.Cost

	inv := models.InventoryItem{
		AccountUID:    acc.UID,
		Name:          item.Name,
		Kind:          models.KindCoupon,
		Value:         decimal.Zero,
		DiscountValue: item.DiscountValue,
		OriginalID:    item.ID,
		AcquiredAt:    now,
	}
	res := Result{Changed: true}
	res.event(models.HistoryPurchase, fmt.Sprintf("Bought %s", item.Name))
	return inv, res, nil
}

// UseItem применяет предмет. Купон активирует скидку, обычный предмет
// увеличивает счётчик заказов, если он не бесплатный.
func UseItem(acc *models.Account, item models.InventoryItem) (Result, error) {
	res := Result{Changed: true}
	if item.Kind == models.KindCoupon {
		if acc.ActiveDiscount.IsPositive() {
			return Result{}, ErrDiscountActive
		}
		acc.ActiveDiscount = item.DiscountValue
		res.event(models.HistoryUsage, fmt.Sprintf("Activated Coupon: %s", item.Name))
		return res, nil
	}

	if !item.IsFree {
		// Счётчик не растёт выше порога бесплатного товара.
		if freq := PlanFor(acc.MembershipLevel).FreeEvery; freq > 0 && acc.ShopOrderCount < freq {
			acc.ShopOrderCount++
		}
	}
	res.event(models.HistoryUsage, fmt.Sprintf("Used %s", item.Name))
	return res, nil
}

// SellItem продаёт обычный платный предмет по цене перепродажи.
func SellItem(acc *models.Account, item models.InventoryItem) (Result, error) {
	if item.Kind == models.KindCoupon || item.IsFree {
		return Result{}, ErrItemUnsellable
	}
	acc.Balance = acc.Balance.Add(item.Value)
	res := Result{Changed: true}
	res.event(models.HistoryTransferIn, fmt.Sprintf("Sold %s for %s", item.Name, Dollars(item.Value)))
	return res, nil
}

// Transfer переводит сумму между счетами и возвращает события для отправителя и получателя.
func Transfer(from, to *models.Account, amount decimal.Decimal) (Event, Event, error) {
	if err := RequirePositive(amount); err != nil {
		return Event{}, Event{}, err
	}
	if from.UID == to.UID {
		return Event{}, Event{}, ErrSelfTransfer
	}
	if from.IsEconomyPaused {
		return Event{}, Event{}, ErrEconomyPaused
	}
	if from.Balance.LessThan(amount) {
		return Event{}, Event{}, ErrInsufficientFunds
	}
	from.Balance = from.Balance.Sub(amount)
	to.Balance = to.Balance.Add(amount)

	out := Event{Type: models.HistoryTransferOut, Message: fmt.Sprintf("Sent %s to %s", Dollars(amount), to.Username)}
	in := Event{Type: models.HistoryTransferIn, Message: fmt.Sprintf("Received %s from %s", Dollars(amount), from.Username)}
	return out, in, nil
}

// WorkJob начисляет оплату за работу.
func WorkJob(acc *models.Account, job models.Job) Event {
	acc.Balance = acc.Balance.Add(job.Pay)
	return Event{Type: models.HistoryTransferIn, Message: fmt.Sprintf("Earned %s from %s", Dollars(job.Pay), job.Name)}
}

// Grant начисляет наличные от имени администратора.
func Grant(acc *models.Account, amount decimal.Decimal) (Event, error) {
	if err := RequirePositive(amount); err != nil {
		return Event{}, err
	}
	acc.Balance = acc.Balance.Add(amount)
	return Event{Type: models.HistoryAdmin, Message: fmt.Sprintf("Admin gave %s", Dollars(amount))}, nil
}

// GrantBPS начисляет бонусные очки от имени администратора.
func GrantBPS(acc *models.Account, amount int64) (Event, error) {
	if amount <= 0 {
		return Event{}, ErrInvalidAmount
	}
	acc.BPSBalance += amount
	return Event{Type: models.HistoryAdmin, Message: fmt.Sprintf("Admin gave %d BPS", amount)}, nil
}
