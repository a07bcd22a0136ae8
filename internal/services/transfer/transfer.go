// Package services содержит перевод наличных между пользователями.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/economy-ledger/internal/economy"
	"github.com/magabrotheeeer/economy-ledger/internal/services/ledger"
	"github.com/magabrotheeeer/economy-ledger/internal/storage"
)

// Runner выполняет операцию в транзакции.
type Runner interface {
	Run(ctx context.Context, op string, fn ledger.Func) error
}

// Receipt итог перевода.
type Receipt struct {
	Recipient string          `json:"recipient"`
	Amount    decimal.Decimal `json:"amount"`
	Balance   decimal.Decimal `json:"balance"`
}

// TransferService переводит наличные.
type TransferService struct {
	runner Runner
}

// NewTransferService создает TransferService.
func NewTransferService(runner Runner) *TransferService {
	return &TransferService{runner: runner}
}

// Transfer переводит amount со счёта senderUID пользователю recipient. Получатель
// ищется без учёта регистра, оба счёта блокируются в одной транзакции, записи
// журнала обоих счетов сохраняются в ней же.
func (s *TransferService) Transfer(ctx context.Context, senderUID, recipient string, amount decimal.Decimal) (*Receipt, error) {
	const op = "services.transfer.Transfer"
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return nil, economy.ErrInvalidUsername
	}
	if err := economy.RequirePositive(amount); err != nil {
		return nil, err
	}

	var receipt *Receipt
	err := s.runner.Run(ctx, "transfer", func(ctx context.Context, tx storage.Tx, b *ledger.Batch) error {
		recipientUID, err := tx.FindAccountUIDByUsername(ctx, recipient)
		if errors.Is(err, storage.ErrNotFound) {
			return economy.ErrRecipientNotFound
		}
		if err != nil {
			return err
		}
		if recipientUID == senderUID {
			return economy.ErrSelfTransfer
		}

		accs, err := b.LockMany(ctx, tx, senderUID, recipientUID)
		if err != nil {
			return err
		}
		from, to := accs[senderUID], accs[recipientUID]

		out, in, err := economy.Transfer(from, to, amount)
		if err != nil {
			return err
		}
		b.Record(from, out)
		b.Record(to, in)

		receipt = &Receipt{Recipient: to.Username, Amount: amount, Balance: from.Balance}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return receipt, nil
}
