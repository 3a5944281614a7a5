package freshness

import "poscore/internal/domain/model"

func customerParams(tab model.Tab) map[string]string {
	return map[string]string{"customer": tab.Customer.ID}
}

func orderParams(tab model.Tab) map[string]string {
	return map[string]string{"order_id": tab.OrderID}
}

// DefaultSpecs is the full panel set of the POS shell. Print documents carry
// the render format URL as their cache-key variant.
func DefaultSpecs(printFormatURL string) []Spec {
	return []Spec{
		{ID: model.PanelProductList, Endpoint: "api/products", BindParams: customerParams},
		{ID: model.PanelCustomerRecent, Endpoint: "api/customer/recent_orders", BindParams: customerParams},
		{ID: model.PanelCustomerMost, Endpoint: "api/customer/most_ordered", BindParams: customerParams},
		{ID: model.PanelCustomerDetails, Endpoint: "api/customer/details", BindParams: customerParams},
		{ID: model.PanelPrintDocuments, Endpoint: "api/prints/documents", Variant: printFormatURL, BindParams: orderParams},
		{ID: model.PanelPaymentVouchers, Endpoint: "api/payments/vouchers", BindParams: orderParams},
		{ID: model.PanelOrdersList, Endpoint: "api/orders", BindParams: customerParams},
		{ID: model.PanelOrdersReturns, Endpoint: "api/orders/returns", BindParams: customerParams},
	}
}
