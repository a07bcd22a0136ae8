// Package economy содержит чистые правила экономики: расчёт цен с налогом и скидкой,
// кредитные уровни и жизненный цикл займа, биллинг членства, выплаты по контрактам
// и пенсионные накопления. Функции пакета не обращаются к хранилищу: они изменяют
// переданный счёт и возвращают события для журнала и уведомлений.
package economy

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CentScale число знаков после запятой в денежных колонках.
const CentScale = 2

// RequireCents возвращает ErrInvalidAmount, если сумма точнее цента.
// Денежные колонки хранят ровно CentScale знаков.
func RequireCents(amount decimal.Decimal) error {
	if !amount.Equal(amount.Round(CentScale)) {
		return ErrInvalidAmount
	}
	return nil
}

// RequirePositive возвращает ErrInvalidAmount, если сумма не больше нуля
// или точнее цента.
func RequirePositive(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	return RequireCents(amount)
}

// FormatMoney форматирует сумму с разделителями тысяч и не более чем двумя
// знаками после запятой: 1234567.5 -> "1,234,567.5".
func FormatMoney(d decimal.Decimal) string {
	s := d.Round(2).String()
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// Dollars форматирует сумму с префиксом "$".
func Dollars(d decimal.Decimal) string {
	return "$" + FormatMoney(d)
}
