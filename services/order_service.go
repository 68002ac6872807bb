package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/foodmarket/food-market-api/models"
	"github.com/foodmarket/food-market-api/store"
)

// round2 rounds a price to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// GetOrders returns every order with buyer and seller identity joined in.
func GetOrders(ctx context.Context) ([]models.OrderWithUsers, *Error) {
	orders, err := store.Get().ListOrders(ctx)
	if err != nil {
		return nil, ErrServer("Failed to list orders")
	}
	return orders, nil
}

// GetOrdersForUser returns the union of orders where the user is the buyer
// or the seller, failing NotFound when no such user exists.
func GetOrdersForUser(ctx context.Context, email string) ([]models.OrderWithUsers, *Error) {
	if _, svcErr := GetUserByEmail(ctx, email, false); svcErr != nil {
		return nil, svcErr
	}

	orders, err := store.Get().ListOrdersForUser(ctx, email)
	if err != nil {
		return nil, ErrServer("Failed to list orders")
	}
	return orders, nil
}

// AddOrder runs the order-placement workflow:
//
//  1. price every requested line at the catalog's current unit price,
//  2. total the lines plus the delivery fee,
//  3. resolve the handover address from the order type,
//  4. stamp status and date,
//  5. persist the order,
//  6. decrement the stock of every purchased item.
//
// The inventory step is a per-item read-then-write, not an atomic
// decrement, and there is no compensating rollback: a failure after step 5
// leaves the persisted order with stock not yet decremented. Both are
// deliberate, documented properties of this workflow.
func AddOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, *Error) {
	st := store.Get()

	// Step 1: price each line against the current catalog.
	lines := make([]models.OrderLine, 0, len(req.FoodItems))
	for _, line := range req.FoodItems {
		id, err := primitive.ObjectIDFromHex(line.FoodItem)
		if err != nil {
			return nil, ErrBadRequest("INVALID_FOOD_ITEM_ID", fmt.Sprintf("%s is not a valid food item id", line.FoodItem))
		}

		item, err := st.GetFoodItemByID(ctx, id)
		if err != nil {
			if err == store.ErrNotFound {
				return nil, ErrNotFound("FOOD_ITEM_NOT_FOUND", fmt.Sprintf("Food Item %s does not exist!", line.FoodItem))
			}
			return nil, ErrServer("Failed to load food item")
		}

		lines = append(lines, models.OrderLine{
			FoodItem:       id,
			Quantity:       line.Quantity,
			FoodItemsPrice: round2(item.Price * float64(line.Quantity)),
		})
	}

	// Step 2: total price.
	totalPrice := 0.0
	for _, line := range lines {
		totalPrice += line.FoodItemsPrice
	}
	totalPrice = round2(totalPrice + *req.DeliveryFee)

	// Step 3: resolve the handover address. Delivery goes to the buyer's
	// stored address, pickup happens at the seller's.
	addressOwner := req.Seller
	if req.Type == models.OrderTypeDelivery {
		addressOwner = req.Buyer
	}
	owner, svcErr := GetUserByEmail(ctx, addressOwner, false)
	if svcErr != nil {
		return nil, svcErr
	}

	// Step 4: server-stamped fields.
	order := &models.Order{
		Seller:      req.Seller,
		Buyer:       req.Buyer,
		FoodItems:   lines,
		Address:     owner.Address,
		Type:        req.Type,
		DeliveryFee: *req.DeliveryFee,
		TotalPrice:  totalPrice,
		Status:      models.OrderStatusPending,
		Date:        time.Now(),
	}

	// Step 5: persist.
	created, err := st.InsertOrder(ctx, order)
	if err != nil {
		return nil, ErrServer("Failed to create order")
	}

	// Step 6: decrement stock. Read-then-write per line; concurrent orders
	// against the same item can lose an update.
	for _, line := range created.FoodItems {
		item, err := st.GetFoodItemByID(ctx, line.FoodItem)
		if err != nil {
			return nil, ErrServer("Failed to update food item quantities")
		}
		if err := st.SetFoodItemQuantity(ctx, line.FoodItem, item.Quantity-line.Quantity); err != nil {
			return nil, ErrServer("Failed to update food item quantities")
		}
	}

	return created, nil
}

// ChangeOrderStatus overwrites the order's status. Only enum membership is
// checked; there is no transition graph, so fulfilled orders can go back to
// pending.
func ChangeOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, *Error) {
	orderID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrBadRequest("INVALID_ORDER_ID", fmt.Sprintf("%s is not a valid order id", id))
	}
	if !status.Valid() {
		return nil, ErrBadRequest("INVALID_STATUS", fmt.Sprintf("%s is not a valid order status", status))
	}

	order, err := store.Get().UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, ErrNotFound("ORDER_NOT_FOUND", fmt.Sprintf("Order %s does not exist!", id))
		}
		return nil, ErrServer("Failed to update order status")
	}
	return order, nil
}
