package model

// Category groups panels for refresh-bypass purposes. Triggering a refresh on
// a category invalidates trust in every panel it contains.
type Category string

const (
	CategoryProduct  Category = "product"
	CategoryCustomer Category = "customer"
	CategoryPrints   Category = "prints"
	CategoryPayments Category = "payments"
	CategoryOrders   Category = "orders"
)

// PanelID identifies one independent contextual view with its own cache,
// search state and pagination.
type PanelID string

const (
	PanelProductList     PanelID = "product.list"
	PanelCustomerRecent  PanelID = "customer.recent"
	PanelCustomerMost    PanelID = "customer.most"
	PanelCustomerDetails PanelID = "customer.details"
	PanelPrintDocuments  PanelID = "prints.documents"
	PanelPaymentVouchers PanelID = "payments.vouchers"
	PanelOrdersList      PanelID = "orders.list"
	PanelOrdersReturns   PanelID = "orders.returns"
)

var categoryPanels = map[Category][]PanelID{
	CategoryProduct:  {PanelProductList},
	CategoryCustomer: {PanelCustomerRecent, PanelCustomerMost, PanelCustomerDetails},
	CategoryPrints:   {PanelPrintDocuments},
	CategoryPayments: {PanelPaymentVouchers},
	CategoryOrders:   {PanelOrdersList, PanelOrdersReturns},
}

// PanelsOf returns every panel belonging to a category.
func PanelsOf(c Category) []PanelID {
	return categoryPanels[c]
}

// CategoryOf returns the category a panel belongs to.
func CategoryOf(p PanelID) Category {
	for c, panels := range categoryPanels {
		for _, id := range panels {
			if id == p {
				return c
			}
		}
	}
	return ""
}

// CustomerInsightPanels are the panels whose aggregates are only correct after
// an order status transition commits server-side.
func CustomerInsightPanels() []PanelID {
	return PanelsOf(CategoryCustomer)
}
