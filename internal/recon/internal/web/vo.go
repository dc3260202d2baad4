package web

type CancelOrderReq struct {
	OrderID int64 `json:"orderId"`
}

type EmitTicketReq struct {
	OrderID int64 `json:"orderId"`
}

type ReconcileOrderReq struct {
	OrderID int64 `json:"orderId"`
}
