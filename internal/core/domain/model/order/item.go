package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Item is one requested line of an order: a product reference and a positive quantity.
// Pricing and stock belong to the checkout collaborator; the dispatch core only carries
// items so it can ask for their release on cancellation.
type Item struct {
	productID string
	quantity  int
}

// NewItem validates and creates an Item.
//
// Returns:
//   - Item: the line item
//   - error: errs.ValueIsRequiredError for an empty product id,
//     errs.ValueIsInvalidError for a non-positive quantity
func NewItem(productID string, quantity int) (Item, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return Item{}, errs.NewValueIsRequiredError("productId")
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	return Item{productID: productID, quantity: quantity}, nil
}

// ProductID returns the catalog reference of the item.
func (i Item) ProductID() string {
	return i.productID
}

// Quantity returns the requested amount.
func (i Item) Quantity() int {
	return i.quantity
}
