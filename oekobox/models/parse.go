package models

// Row layouts follow the vendor's DataList column order:
//
//	Group:    [id, name, info, count]
//	SubGroup: [id, name, parent_id, count]
//	Item:     [id, name, price, unit, description, group_id]
//	CartItem: [item_id, amount, unit, price, note]
//	ShopDate: [order_id, state, date, ..., total@9]
//	Order:    [id, ddate, state, total]

// GroupsFromLists converts the Group blocks of a response.
func GroupsFromLists(lists []DataList) []Group {
	rows := Rows(lists, "Group")
	groups := make([]Group, 0, len(rows))
	for _, row := range rows {
		if isTerminator(row) || len(row) < 4 {
			continue
		}
		groups = append(groups, Group{
			ID:    asString(row, 0),
			Name:  asString(row, 1),
			Info:  asString(row, 2),
			Count: asInt(row, 3),
		})
	}
	return groups
}

// SubGroupsFromLists converts the SubGroup blocks, optionally keeping only the
// children of parentID.
func SubGroupsFromLists(lists []DataList, parentID string) []SubGroup {
	rows := Rows(lists, "SubGroup")
	subgroups := make([]SubGroup, 0, len(rows))
	for _, row := range rows {
		if isTerminator(row) || len(row) < 4 {
			continue
		}
		sg := SubGroup{
			ID:       asString(row, 0),
			Name:     asString(row, 1),
			ParentID: asString(row, 2),
			Count:    asInt(row, 3),
		}
		if parentID != "" && sg.ParentID != parentID {
			continue
		}
		subgroups = append(subgroups, sg)
	}
	return subgroups
}

// ItemsFromLists converts the Item blocks of a response.
func ItemsFromLists(lists []DataList) []Item {
	rows := Rows(lists, "Item")
	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		if isTerminator(row) || len(row) < 2 {
			continue
		}
		items = append(items, Item{
			ID:          asString(row, 0),
			Name:        asString(row, 1),
			Price:       asFloatPtr(row, 2),
			Unit:        asString(row, 3),
			Description: asString(row, 4),
			GroupID:     asString(row, 5),
		})
	}
	return items
}

// CartFromLists converts the CartItem blocks of a response. Positions without
// an amount default to 1.
func CartFromLists(lists []DataList) []CartItem {
	rows := Rows(lists, "CartItem")
	cart := make([]CartItem, 0, len(rows))
	for _, row := range rows {
		if isTerminator(row) || len(row) < 2 {
			continue
		}
		quantity, ok := asFloat(row, 1)
		if !ok {
			quantity = 1
		}
		cart = append(cart, CartItem{
			ItemID:   asString(row, 0),
			Quantity: quantity,
			Unit:     asString(row, 2),
			Price:    asFloatPtr(row, 3),
			Note:     asString(row, 4),
		})
	}
	return cart
}

// DeliveryDatesFromLists converts the ShopDate blocks into selectable
// delivery dates. Rows without a parseable date are skipped.
func DeliveryDatesFromLists(lists []DataList) []DeliveryDate {
	rows := Rows(lists, "ShopDate")
	dates := make([]DeliveryDate, 0, len(rows))
	for _, row := range rows {
		if isTerminator(row) || len(row) < 3 {
			continue
		}
		t := asTime(row, 2)
		if t == nil {
			continue
		}
		dates = append(dates, DeliveryDate{Date: *t, Available: true})
	}
	return dates
}

// OrdersFromShopDates converts ShopDate blocks into the order history they
// double as. Only rows with a real order id survive.
func OrdersFromShopDates(lists []DataList, customerID string) []Order {
	rows := Rows(lists, "ShopDate")
	orders := make([]Order, 0, len(rows))
	for _, row := range rows {
		if isTerminator(row) || len(row) < 3 {
			continue
		}
		orders = append(orders, Order{
			ID:           asString(row, 0),
			CustomerID:   customerID,
			Status:       asString(row, 1),
			DeliveryDate: asTime(row, 2),
			Total:        asFloatPtr(row, 9),
		})
	}
	return orders
}

// OrderFromLists converts the first Order block row plus any CartItem blocks
// into a full order. ok is false when the response holds no order row.
func OrderFromLists(lists []DataList, customerID string) (Order, bool) {
	rows := Rows(lists, "Order")
	for _, row := range rows {
		if isTerminator(row) || len(row) < 2 {
			continue
		}
		return Order{
			ID:           asString(row, 0),
			CustomerID:   customerID,
			DeliveryDate: asTime(row, 1),
			Status:       asString(row, 2),
			Total:        asFloatPtr(row, 3),
			Items:        CartFromLists(lists),
		}, true
	}
	return Order{}, false
}

// FavouritesFromLists converts Favourite blocks; rows reference items as
// ["Item", item_id].
func FavouritesFromLists(lists []DataList, customerID string) []Favourite {
	rows := Rows(lists, "Favourite")
	favourites := make([]Favourite, 0, len(rows))
	for _, row := range rows {
		if len(row) < 2 || asString(row, 0) != "Item" {
			continue
		}
		favourites = append(favourites, Favourite{
			CustomerID: customerID,
			ItemID:     asString(row, 1),
		})
	}
	return favourites
}

// SubscriptionsFromLists converts Subscription blocks.
func SubscriptionsFromLists(lists []DataList, customerID string) []Subscription {
	rows := Rows(lists, "Subscription")
	subs := make([]Subscription, 0, len(rows))
	for _, row := range rows {
		if isTerminator(row) || len(row) < 3 {
			continue
		}
		subs = append(subs, Subscription{
			ID:         asString(row, 0),
			CustomerID: customerID,
			Frequency:  asString(row, 2),
			Active:     true,
		})
	}
	return subs
}
