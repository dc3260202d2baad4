// Copyright 2024 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package domain

type OrderStatus uint8

func (s OrderStatus) ToUint8() uint8 {
	return uint8(s)
}

// IsTerminal 已送达和已取消是终态, 轮询和管理端操作都不再触碰
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCanceled
}

const (
	// StatusPreparing 备货中, 订单创建后的初始状态
	StatusPreparing OrderStatus = 1
	// StatusInTransit 运输中, 承运商放行运单之后
	StatusInTransit OrderStatus = 2
	// StatusDelivered 已送达, 终态
	StatusDelivered OrderStatus = 3
	// StatusCanceled 已取消, 终态
	StatusCanceled OrderStatus = 4
)

type CancelReason uint8

func (r CancelReason) ToUint8() uint8 {
	return uint8(r)
}

const (
	CancelReasonNone CancelReason = 0
	// CancelReasonAdmin 管理员手工取消
	CancelReasonAdmin CancelReason = 1
	// CancelReasonCarrier 承运商取消了运单
	CancelReasonCarrier CancelReason = 2
)

type Order struct {
	ID            int64
	SN            string
	BuyerID       int64
	SessionSN     string
	Status        OrderStatus
	CancelReason  CancelReason
	CancelMessage string

	// 支付侧镜像, 以网关回查结果为准
	PaymentID     string
	PaymentStatus string
	SessionStatus string

	// 承运商侧镜像
	TicketID     string
	TicketStatus string
	TicketUtime  int64
	Tracking     string
	TicketPrice  int64
	PrintURL     string

	// 退款
	NeedsRefund  bool
	RefundSN     string
	RefundStatus string

	// 价格快照, 单位为分, 999表示9.99元
	TotalPrice          int64
	ShippingPrice       int64
	ShippingServiceID   int64
	ShippingServiceName string
	ShippingDaysMin     int64
	ShippingDaysMax     int64

	Version int64
	Items   []OrderItem
	Ctime   int64
	Utime   int64
}

type OrderItem struct {
	OrderID  int64
	BookID   int64
	Title    string
	Quantity int64
	// Price 购买时的单价快照, 创建后不变
	Price int64
}
