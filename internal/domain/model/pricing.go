package model

// Quote is the priced breakdown of a checkout before settlement.
type Quote struct {
	Subtotal    Money
	Discount    Money
	DeliveryFee Money
	Total       Money
}

const vipDiscountPercent = 5

// QuoteOrder prices a cart. The VIP discount is 5% of the subtotal, applied
// before the delivery fee and only when a promo grant was redeemed. The fee is
// waived when a VIP customer's next order lands on a multiple of three;
// numOrders is the count before this order.
func QuoteOrder(lines []CartLine, vip bool, numOrders int, promoApplied bool, deliveryFee Money) Quote {
	var subtotal Money
	for _, l := range lines {
		subtotal += l.UnitPrice * Money(l.Quantity)
	}

	var discount Money
	if vip && promoApplied {
		// integer cents, rounded half up
		discount = (subtotal*vipDiscountPercent + 50) / 100
	}

	fee := deliveryFee
	if vip && (numOrders+1)%3 == 0 {
		fee = 0
	}

	return Quote{
		Subtotal:    subtotal,
		Discount:    discount,
		DeliveryFee: fee,
		Total:       subtotal - discount + fee,
	}
}
