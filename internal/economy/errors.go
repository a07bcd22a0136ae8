package economy

import "errors"

// Ошибки валидации входных данных.
var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInvalidTier       = errors.New("invalid membership tier")
	ErrInvalidUsername   = errors.New("username is required")
	ErrInvalidName       = errors.New("name is required")
	ErrInvalidStatus     = errors.New("invalid employment status")
	ErrInvalidExpiration = errors.New("expiration date must be in the future")
)

// Ошибки бизнес-правил.
var (
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInsufficientBPS      = errors.New("insufficient BPS balance")
	ErrInsufficientSavings  = errors.New("insufficient retirement savings")
	ErrSelfTransfer         = errors.New("cannot transfer to self")
	ErrIDExpired            = errors.New("ID is expired")
	ErrRenewalPending       = errors.New("ID renewal is pending approval")
	ErrEconomyPaused        = errors.New("economy is paused until the overdue loan is repaid")
	ErrLoanActive           = errors.New("an active loan must be repaid first")
	ErrLoanCooldown         = errors.New("loan cooldown active")
	ErrLoanCapExceeded      = errors.New("requested amount exceeds the credit tier limit")
	ErrNoDebt               = errors.New("no outstanding loan")
	ErrDiscountActive       = errors.New("a discount is already active")
	ErrItemUnsellable       = errors.New("item cannot be sold")
	ErrCosmeticNotOwned     = errors.New("cosmetic is not owned")
	ErrCosmeticOwned        = errors.New("cosmetic is already owned")
	ErrNotEmployed          = errors.New("only employed users can deposit")
	ErrNotRetired           = errors.New("only retired users can withdraw")
	ErrDailyLimit           = errors.New("daily retirement transaction limit reached")
	ErrAlreadyOnTier        = errors.New("membership tier is already active")
	ErrTrialActive          = errors.New("a free trial is active")
	ErrContractState        = errors.New("contract is not in a state that allows this action")
	ErrContractExists       = errors.New("player already has an active contract")
	ErrNoPendingRequest     = errors.New("contract has no pending request")
	ErrRequestAlreadyExists = errors.New("contract already has a pending request")
	ErrNotContractOwner     = errors.New("contract belongs to another player")
	ErrNoRenewalRequest     = errors.New("no pending renewal request")
)

// Ошибки поиска.
var (
	ErrRecipientNotFound = errors.New("recipient user not found")
)

// IsValidation сообщает, относится ли ошибка к ошибкам входных данных.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidTier) ||
		errors.Is(err, ErrInvalidUsername) ||
		errors.Is(err, ErrInvalidName) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidExpiration)
}

// IsRule сообщает, является ли ошибка нарушением бизнес-правила.
func IsRule(err error) bool {
	for _, target := range ruleErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

var ruleErrors = []error{
	ErrInsufficientFunds, ErrInsufficientBPS, ErrInsufficientSavings, ErrSelfTransfer,
	ErrIDExpired, ErrRenewalPending, ErrEconomyPaused, ErrLoanActive, ErrLoanCooldown,
	ErrLoanCapExceeded, ErrNoDebt, ErrDiscountActive, ErrItemUnsellable,
	ErrCosmeticNotOwned, ErrCosmeticOwned, ErrNotEmployed, ErrNotRetired, ErrDailyLimit,
	ErrAlreadyOnTier, ErrTrialActive, ErrContractState, ErrContractExists,
	ErrNoPendingRequest, ErrRequestAlreadyExists, ErrNotContractOwner,
	ErrNoRenewalRequest,
}
