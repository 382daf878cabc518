package enums

// PaymentMethod tags how a purchase or payment was funded.
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "CASH"
	PaymentMethodBank   PaymentMethod = "BANK"
	PaymentMethodCredit PaymentMethod = "CREDIT"
	PaymentMethodMixed  PaymentMethod = "MIXED"
	PaymentMethodNone   PaymentMethod = "NONE"
)

// PaymentMethodFromSplit derives the tag from which of the three capital
// amounts are positive. More than one positive amount is MIXED; none is NONE.
func PaymentMethodFromSplit(cash, bank, credit bool) PaymentMethod {
	count := 0
	tag := PaymentMethodNone
	if cash {
		count++
		tag = PaymentMethodCash
	}
	if bank {
		count++
		tag = PaymentMethodBank
	}
	if credit {
		count++
		tag = PaymentMethodCredit
	}
	if count > 1 {
		return PaymentMethodMixed
	}
	return tag
}
