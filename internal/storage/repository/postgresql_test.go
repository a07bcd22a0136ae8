package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/economy-ledger/internal/models"
	"github.com/magabrotheeeer/economy-ledger/internal/storage"
)

func TestStorage_CreateAccount(t *testing.T) {
	s, cleanup := setupTestDatabase(t)
	defer cleanup()
	factory := NewTestDataFactory(s)

	acc := factory.CreateAccount(t, "Alice", "1000")
	assert.NotEmpty(t, acc.UID)

	dup := &models.Account{Username: "alice", Email: "x@example.com", PasswordHash: "h",
		MembershipLevel: models.TierStandard, EmploymentStatus: models.Unemployed,
		RenewalDate: time.Now(), ExpirationDate: time.Now()}
	err := s.CreateAccount(context.Background(), dup)
	assert.ErrorIs(t, err, storage.ErrUsernameTaken)

	uid, err := s.FindAccountUIDByUsername(context.Background(), " ALICE ")
	require.NoError(t, err)
	assert.Equal(t, acc.UID, uid)

	_, err = s.FindAccountUIDByUsername(context.Background(), "bob")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStorage_UpdateAccount_RoundTrip(t *testing.T) {
	s, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	acc := NewTestDataFactory(s).CreateAccount(t, "alice", "1000")
	deadline := time.Date(2026, time.March, 31, 23, 59, 59, 0, time.UTC)

	acc.Balance = decimal.RequireFromString("1234.56")
	acc.ActiveLoan = decimal.RequireFromString("500")
	acc.LoanDeadline = &deadline
	acc.LoanStartDate = &deadline
	acc.CosmeticsOwned = map[string]bool{"gold": true}
	acc.NavbarColor = "#ffd700"
	acc.MembershipLevel = models.TierPremium
	acc.RetirementInterestMonth = "2026-03"
	require.NoError(t, s.UpdateAccount(ctx, acc))

	got, err := s.Account(ctx, acc.UID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(acc.Balance))
	assert.True(t, got.ActiveLoan.Equal(acc.ActiveLoan))
	require.NotNil(t, got.LoanDeadline)
	assert.True(t, got.LoanDeadline.Equal(deadline))
	assert.Nil(t, got.LastRepaymentDate)
	assert.True(t, got.OwnsCosmetic("gold"))
	assert.Equal(t, "#ffd700", got.NavbarColor)
	assert.Equal(t, models.TierPremium, got.MembershipLevel)
	assert.Equal(t, "2026-03", got.RetirementInterestMonth)

	missing := *acc
	missing.UID = "00000000-0000-0000-0000-000000000000"
	assert.ErrorIs(t, s.UpdateAccount(ctx, &missing), storage.ErrNotFound)
}

func TestStorage_WithinTx(t *testing.T) {
	s, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()
	factory := NewTestDataFactory(s)
	verify := NewTestVerification(s)

	alice := factory.CreateAccount(t, "alice", "1000")
	bob := factory.CreateAccount(t, "bob", "0")

	t.Run("commit", func(t *testing.T) {
		err := s.WithinTx(ctx, func(ctx context.Context, tx storage.Tx) error {
			accs, err := tx.LockAccounts(ctx, bob.UID, alice.UID)
			if err != nil {
				return err
			}
			require.Len(t, accs, 2)
			accs[alice.UID].Balance = accs[alice.UID].Balance.Sub(decimal.NewFromInt(100))
			accs[bob.UID].Balance = accs[bob.UID].Balance.Add(decimal.NewFromInt(100))
			if err := tx.UpdateAccount(ctx, accs[alice.UID]); err != nil {
				return err
			}
			if err := tx.UpdateAccount(ctx, accs[bob.UID]); err != nil {
				return err
			}
			return tx.AppendHistory(ctx,
				models.HistoryEntry{AccountUID: alice.UID, Message: "Sent $100 to bob", Type: models.HistoryTransferOut, Timestamp: time.Now()},
				models.HistoryEntry{AccountUID: bob.UID, Message: "Received $100 from alice", Type: models.HistoryTransferIn, Timestamp: time.Now()},
			)
		})
		require.NoError(t, err)
		verify.VerifyBalance(t, alice.UID, "900")
		verify.VerifyBalance(t, bob.UID, "100")
		verify.VerifyHistoryCount(t, alice.UID, 1)
	})

	t.Run("rollback", func(t *testing.T) {
		boom := errors.New("boom")
		err := s.WithinTx(ctx, func(ctx context.Context, tx storage.Tx) error {
			acc, err := tx.LockAccount(ctx, alice.UID)
			if err != nil {
				return err
			}
			acc.Balance = decimal.Zero
			if err := tx.UpdateAccount(ctx, acc); err != nil {
				return err
			}
			if err := tx.AppendHistory(ctx, models.HistoryEntry{AccountUID: alice.UID, Message: "x", Type: models.HistoryAdmin, Timestamp: time.Now()}); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)
		verify.VerifyBalance(t, alice.UID, "900")
		verify.VerifyHistoryCount(t, alice.UID, 1)
	})
}

func TestStorage_History(t *testing.T) {
	s, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	acc := NewTestDataFactory(s).CreateAccount(t, "alice", "0")
	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := range 5 {
		require.NoError(t, s.AppendHistory(ctx, models.HistoryEntry{
			AccountUID: acc.UID,
			Message:    "entry",
			Type:       models.HistoryUsage,
			Timestamp:  base.Add(time.Duration(i) * time.Minute),
		}))
	}

	got, err := s.History(ctx, acc.UID, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0].Timestamp.After(got[1].Timestamp))
	assert.True(t, got[0].Timestamp.Equal(base.Add(4*time.Minute)))
}

func TestStorage_Inventory(t *testing.T) {
	s, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()
	factory := NewTestDataFactory(s)

	alice := factory.CreateAccount(t, "alice", "0")
	bob := factory.CreateAccount(t, "bob", "0")

	item := &models.InventoryItem{
		AccountUID: alice.UID, Name: "Racket", Kind: models.KindItem,
		Value: decimal.NewFromInt(55), OriginalID: 7, AcquiredAt: time.Now(),
	}
	require.NoError(t, s.InsertInventoryItem(ctx, item))
	assert.NotZero(t, item.ID)

	got, err := s.InventoryItemForUpdate(ctx, alice.UID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Racket", got.Name)
	assert.True(t, got.Value.Equal(decimal.NewFromInt(55)))

	_, err = s.InventoryItemForUpdate(ctx, bob.UID, item.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	list, err := s.Inventory(ctx, alice.UID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, s.DeleteInventoryItem(ctx, item.ID))
	assert.ErrorIs(t, s.DeleteInventoryItem(ctx, item.ID), storage.ErrNotFound)
}

func TestStorage_Contracts(t *testing.T) {
	s, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	player := NewTestDataFactory(s).CreateAccount(t, "alice", "0")
	c := &models.Contract{
		PlayerUID: player.UID, PlayerName: player.Username, TeamName: "Lions",
		Status: models.ContractOffered, SigningBonus: decimal.NewFromInt(1000),
		InstallmentsRemaining: 12, InitialInstallments: 12,
		GuaranteedPay: decimal.NewFromInt(600), BonusPay: decimal.NewFromInt(300),
	}
	require.NoError(t, s.InsertContract(ctx, c))

	active, err := s.HasActiveContract(ctx, player.UID)
	require.NoError(t, err)
	assert.False(t, active)

	c.Status = models.ContractExtensionOffered
	c.Extension = &models.ExtensionTerms{Years: 2, GuaranteedPay: decimal.NewFromInt(700), BonusPay: decimal.Zero}
	require.NoError(t, s.UpdateContract(ctx, c))

	got, err := s.ContractForUpdate(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Extension)
	assert.Equal(t, 2, got.Extension.Years)
	assert.True(t, got.Extension.GuaranteedPay.Equal(decimal.NewFromInt(700)))

	active, err = s.HasActiveContract(ctx, player.UID)
	require.NoError(t, err)
	assert.True(t, active)

	all, err := s.Contracts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
	mine, err := s.Contracts(ctx, player.UID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	require.NoError(t, s.DeleteContract(ctx, c.ID))
	_, err = s.ContractForUpdate(ctx, c.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStorage_Catalog(t *testing.T) {
	s, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	shop := &models.ShopItem{Name: "Racket", Cost: decimal.NewFromInt(100), Featured: true}
	require.NoError(t, s.CreateShopItem(ctx, shop))
	got, err := s.ShopItem(ctx, shop.ID)
	require.NoError(t, err)
	assert.Equal(t, "Racket", got.Name)

	bps := &models.BPSItem{Name: "10% Off", Cost: 50, DiscountValue: decimal.RequireFromString("0.1")}
	require.NoError(t, s.CreateBPSItem(ctx, bps))
	bpsItems, err := s.BPSItems(ctx)
	require.NoError(t, err)
	assert.Len(t, bpsItems, 1)

	gold := &models.Cosmetic{ID: "gold", Name: "Gold", Price: decimal.NewFromInt(500), Color: "#ffd700"}
	require.NoError(t, s.CreateCosmetic(ctx, gold))
	assert.ErrorIs(t, s.CreateCosmetic(ctx, gold), storage.ErrAlreadyExists)

	job := &models.Job{Name: "Ball boy", Pay: decimal.NewFromInt(250)}
	require.NoError(t, s.CreateJob(ctx, job))
	jobs, err := s.Jobs(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.True(t, jobs[0].Pay.Equal(decimal.NewFromInt(250)))

	_, err = s.Job(ctx, 999)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
