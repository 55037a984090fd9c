package cart

// Apply is the pure transition function over cart state. It never mutates the
// input and has no side effects; persistence lives in the dispatch service.
func Apply(state State, action Action) State {
	next := state.Clone()

	switch a := action.(type) {
	case AddItem:
		qty := a.Quantity
		if qty < 1 {
			qty = 1
		}
		merged := false
		for i, item := range next.Items {
			if item.ProductID != a.Product.ID {
				continue
			}
			newQty := item.Quantity + qty
			if newQty > MaxQuantityPerItem {
				newQty = MaxQuantityPerItem
			}
			next.Items[i].Quantity = newQty
			// price refreshes in case the catalog changed since first add
			next.Items[i].Price = a.Product.Price
			next.Items[i].PriceID = a.Product.PriceID
			next.Items[i].Name = a.Product.Name
			merged = true
			break
		}
		if !merged {
			if qty > MaxQuantityPerItem {
				qty = MaxQuantityPerItem
			}
			image := ""
			if len(a.Product.Images) > 0 {
				image = a.Product.Images[0]
			}
			next.Items = append(next.Items, Item{
				ProductID: a.Product.ID,
				PriceID:   a.Product.PriceID,
				Name:      a.Product.Name,
				Image:     image,
				Price:     a.Product.Price,
				Quantity:  qty,
			})
		}
		next.IsOpen = true

	case RemoveItem:
		kept := next.Items[:0]
		for _, item := range next.Items {
			if item.ProductID != a.ProductID {
				kept = append(kept, item)
			}
		}
		next.Items = kept

	case UpdateQuantity:
		for i, item := range next.Items {
			if item.ProductID == a.ProductID {
				next.Items[i].Quantity = a.Quantity
				break
			}
		}

	case RestoreCart:
		items := make([]Item, len(a.Items))
		copy(items, a.Items)
		next.Items = items
		// restoring on page load always lands with the drawer shut
		next.IsOpen = false

	case ToggleCart:
		next.IsOpen = !next.IsOpen

	case ClearCart:
		next.Items = nil
	}

	return next
}
