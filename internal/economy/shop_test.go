package economy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/economy-ledger/internal/economy"
	"github.com/magabrotheeeer/economy-ledger/internal/models"
)

func TestQuotePrice(t *testing.T) {
	tests := []struct {
		name      string
		base      string
		discount  string
		tier      models.Tier
		free      bool
		wantTotal string
		wantTax   string
		wantCash  string
	}{
		{name: "standard без скидки", base: "100", discount: "0", tier: models.TierStandard, wantTotal: "110", wantTax: "10", wantCash: "0"},
		{name: "скидка округляется вниз", base: "99", discount: "0.25", tier: models.TierStandard, wantTotal: "81", wantTax: "7", wantCash: "0"},
		{name: "platinum без налога", base: "1000", discount: "0", tier: models.TierPlatinum, wantTotal: "1000", wantTax: "0", wantCash: "30"},
		{name: "premium с кэшбэком", base: "1000", discount: "0.1", tier: models.TierPremium, wantTotal: "936", wantTax: "36", wantCash: "18"},
		{name: "бесплатный товар", base: "1000", discount: "0.5", tier: models.TierBasic, free: true, wantTotal: "0", wantTax: "0", wantCash: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := economy.QuotePrice(dec(tt.base), dec(tt.discount), economy.PlanFor(tt.tier), tt.free)
			assertDec(t, tt.wantTotal, q.Total)
			assertDec(t, tt.wantTax, q.Tax)
			assertDec(t, tt.wantCash, q.Cashback)
			assert.Equal(t, tt.free, q.Free)
		})
	}
}

func TestPurchase_Standard(t *testing.T) {
	acc := newAccount("1000")
	item := models.ShopItem{ID: 7, Name: "Racket", Cost: dec("100")}

	q, inv, res, err := economy.Purchase(acc, item, now)
	require.NoError(t, err)
	assertDec(t, "110", q.Total)
	assertDec(t, "890", acc.Balance)
	assert.Equal(t, int64(5), acc.BPSBalance)
	assertDec(t, "55", inv.Value)
	assert.Equal(t, models.KindItem, inv.Kind)
	assert.Equal(t, int64(7), inv.OriginalID)
	require.Len(t, res.Events, 1)
	assert.Equal(t, "Bought Racket for $110", res.Events[0].Message)
}

func TestPurchase_FreeItemResetsCounter(t *testing.T) {
	acc := newAccount("10")
	acc.MembershipLevel = models.TierBasic
	acc.ShopOrderCount = 3
	acc.ActiveDiscount = dec("0.2")

	q, inv, res, err := economy.Purchase(acc, models.ShopItem{ID: 1, Name: "Balls", Cost: dec("500")}, now)
	require.NoError(t, err)
	assert.True(t, q.Free)
	assert.True(t, inv.IsFree)
	assertDec(t, "0", inv.Value)
	assertDec(t, "10", acc.Balance)
	assert.Equal(t, 0, acc.ShopOrderCount)
	assert.True(t, acc.ActiveDiscount.IsZero())
	assert.Equal(t, "Claimed free Balls", res.Events[0].Message)
}

func TestPurchase_Errors(t *testing.T) {
	item := models.ShopItem{ID: 1, Name: "Shoes", Cost: dec("100")}

	acc := newAccount("109")
	_, _, _, err := economy.Purchase(acc, item, now)
	assert.ErrorIs(t, err, economy.ErrInsufficientFunds)
	assertDec(t, "109", acc.Balance)

	acc = newAccount("1000")
	acc.ExpirationDate = now.AddDate(0, 0, -1)
	_, _, _, err = economy.Purchase(acc, item, now)
	assert.ErrorIs(t, err, economy.ErrIDExpired)

	acc = newAccount("1000")
	acc.IsEconomyPaused = true
	_, _, _, err = economy.Purchase(acc, item, now)
	assert.ErrorIs(t, err, economy.ErrEconomyPaused)
}

func TestUseItem(t *testing.T) {
	t.Run("купон активирует скидку", func(t *testing.T) {
		acc := newAccount("0")
		res, err := economy.UseItem(acc, models.InventoryItem{Name: "10% Off", Kind: models.KindCoupon, DiscountValue: dec("0.1")})
		require.NoError(t, err)
		assertDec(t, "0.1", acc.ActiveDiscount)
		assert.Equal(t, "Activated Coupon: 10% Off", res.Events[0].Message)

		_, err = economy.UseItem(acc, models.InventoryItem{Name: "20% Off", Kind: models.KindCoupon, DiscountValue: dec("0.2")})
		assert.ErrorIs(t, err, economy.ErrDiscountActive)
		assertDec(t, "0.1", acc.ActiveDiscount)
	})

	t.Run("счётчик не превышает порог", func(t *testing.T) {
		acc := newAccount("0")
		acc.MembershipLevel = models.TierPremium
		for range 5 {
			_, err := economy.UseItem(acc, models.InventoryItem{Name: "Towel", Kind: models.KindItem})
			require.NoError(t, err)
		}
		assert.Equal(t, 2, acc.ShopOrderCount)
		assert.True(t, economy.IsNextItemFree(acc))
	})

	t.Run("бесплатный предмет не считается", func(t *testing.T) {
		acc := newAccount("0")
		acc.MembershipLevel = models.TierBasic
		_, err := economy.UseItem(acc, models.InventoryItem{Name: "Towel", Kind: models.KindItem, IsFree: true})
		require.NoError(t, err)
		assert.Equal(t, 0, acc.ShopOrderCount)
	})

	t.Run("стандартный уровень без счётчика", func(t *testing.T) {
		acc := newAccount("0")
		_, err := economy.UseItem(acc, models.InventoryItem{Name: "Towel", Kind: models.KindItem})
		require.NoError(t, err)
		assert.Equal(t, 0, acc.ShopOrderCount)
	})
}

func TestSellItem(t *testing.T) {
	acc := newAccount("0")
	res, err := economy.SellItem(acc, models.InventoryItem{Name: "Racket", Kind: models.KindItem, Value: dec("55")})
	require.NoError(t, err)
	assertDec(t, "55", acc.Balance)
	assert.Equal(t, "Sold Racket for $55", res.Events[0].Message)

	_, err = economy.SellItem(acc, models.InventoryItem{Name: "Gift", Kind: models.KindItem, IsFree: true})
	assert.ErrorIs(t, err, economy.ErrItemUnsellable)
	_, err = economy.SellItem(acc, models.InventoryItem{Name: "Coupon", Kind: models.KindCoupon})
	assert.ErrorIs(t, err, economy.ErrItemUnsellable)
}

func TestPurchaseBPS(t *testing.T) {
	acc := newAccount("0")
	acc.BPSBalance = 50
	inv, _, err := economy.PurchaseBPS(acc, models.BPSItem{ID: 2, Name: "15% Off", Cost: 40, DiscountValue: dec("0.15")}, now)
	require.NoError(t, err)
	assert.Equal(t, int64(10), acc.BPSBalance)
	assert.Equal(t, models.KindCoupon, inv.Kind)
	assertDec(t, "0.15", inv.DiscountValue)

	_, _, err = economy.PurchaseBPS(acc, models.BPSItem{ID: 2, Name: "15% Off", Cost: 40}, now)
	assert.ErrorIs(t, err, economy.ErrInsufficientBPS)
}

func TestTransfer(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(from, to *models.Account)
		amount  string
		wantErr error
	}{
		{name: "успешный перевод", setup: func(from, to *models.Account) {}, amount: "250.50"},
		{name: "недостаточно средств", setup: func(from, to *models.Account) {}, amount: "1000.01", wantErr: economy.ErrInsufficientFunds},
		{name: "отрицательная сумма", setup: func(from, to *models.Account) {}, amount: "-1", wantErr: economy.ErrInvalidAmount},
		{name: "сумма точнее цента", setup: func(from, to *models.Account) {}, amount: "0.005", wantErr: economy.ErrInvalidAmount},
		{name: "перевод самому себе", setup: func(from, to *models.Account) { to.UID = from.UID }, amount: "1", wantErr: economy.ErrSelfTransfer},
		{name: "пауза экономики", setup: func(from, to *models.Account) { from.IsEconomyPaused = true }, amount: "1", wantErr: economy.ErrEconomyPaused},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from := newAccount("1000")
			to := newAccount("0")
			to.UID, to.Username = "uid-2", "bob"
			tt.setup(from, to)

			out, in, err := economy.Transfer(from, to, dec(tt.amount))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assertDec(t, "1000", from.Balance)
				return
			}
			require.NoError(t, err)
			assertDec(t, "749.5", from.Balance)
			assertDec(t, "250.5", to.Balance)
			assert.Equal(t, "Sent $250.5 to bob", out.Message)
			assert.Equal(t, "Received $250.5 from alice", in.Message)
			assert.Equal(t, models.HistoryTransferOut, out.Type)
			assert.Equal(t, models.HistoryTransferIn, in.Type)
		})
	}
}

func TestCosmetics(t *testing.T) {
	gold := models.Cosmetic{ID: "gold", Name: "Gold Bar", Price: dec("500"), Color: "#ffd700"}

	acc := newAccount("600")
	_, err := economy.BuyCosmetic(acc, gold, now)
	require.NoError(t, err)
	assertDec(t, "100", acc.Balance)
	assert.True(t, acc.OwnsCosmetic("gold"))

	_, err = economy.BuyCosmetic(acc, gold, now)
	assert.ErrorIs(t, err, economy.ErrCosmeticOwned)

	require.NoError(t, economy.EquipCosmetic(acc, &gold, now))
	assert.Equal(t, "#ffd700", acc.NavbarColor)

	res := economy.ReconcileCosmetics(acc, []models.Cosmetic{gold})
	assert.False(t, res.Changed)
	res = economy.ReconcileCosmetics(acc, nil)
	assert.True(t, res.Changed)
	assert.Empty(t, acc.NavbarColor)

	acc.RenewalPending = true
	assert.ErrorIs(t, economy.EquipCosmetic(acc, nil, now), economy.ErrRenewalPending)

	other := newAccount("0")
	assert.ErrorIs(t, economy.EquipCosmetic(other, &gold, now), economy.ErrCosmeticNotOwned)
}
