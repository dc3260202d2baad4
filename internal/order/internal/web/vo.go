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

package web

import (
	"github.com/ecodeclub/bookstore/internal/order/internal/domain"
	"github.com/ecodeclub/ekit/slice"
)

// ListOrdersReq 分页查询用户所有订单
type ListOrdersReq struct {
	Offset int `json:"offset,omitempty"`
	Limit  int `json:"limit,omitempty"`
}

type ListOrdersResp struct {
	Total  int64   `json:"total,omitempty"`
	Orders []Order `json:"orders,omitempty"`
}

// RetrieveOrderDetailReq 获取订单详情
type RetrieveOrderDetailReq struct {
	SN string `json:"sn"`
}

type RetrieveOrderDetailResp struct {
	Order Order `json:"order"`
}

type Order struct {
	SN                  string      `json:"sn"`
	Status              uint8       `json:"status"`
	CancelReason        uint8       `json:"cancelReason,omitempty"`
	CancelMessage       string      `json:"cancelMessage,omitempty"`
	Tracking            string      `json:"tracking,omitempty"`
	TotalPrice          int64       `json:"totalPrice"`
	ShippingPrice       int64       `json:"shippingPrice"`
	ShippingServiceName string      `json:"shippingServiceName,omitempty"`
	ShippingDaysMin     int64       `json:"shippingDaysMin,omitempty"`
	ShippingDaysMax     int64       `json:"shippingDaysMax,omitempty"`
	Items               []OrderItem `json:"items,omitempty"`
	Ctime               int64       `json:"ctime"`
	Utime               int64       `json:"utime"`
}

type OrderItem struct {
	BookID   int64  `json:"bookId"`
	Title    string `json:"title"`
	Quantity int64  `json:"quantity"`
	Price    int64  `json:"price"`
}

func toOrderVO(o domain.Order) Order {
	return Order{
		SN:                  o.SN,
		Status:              o.Status.ToUint8(),
		CancelReason:        o.CancelReason.ToUint8(),
		CancelMessage:       o.CancelMessage,
		Tracking:            o.Tracking,
		TotalPrice:          o.TotalPrice,
		ShippingPrice:       o.ShippingPrice,
		ShippingServiceName: o.ShippingServiceName,
		ShippingDaysMin:     o.ShippingDaysMin,
		ShippingDaysMax:     o.ShippingDaysMax,
		Items: slice.Map(o.Items, func(idx int, src domain.OrderItem) OrderItem {
			return OrderItem{
				BookID:   src.BookID,
				Title:    src.Title,
				Quantity: src.Quantity,
				Price:    src.Price,
			}
		}),
		Ctime: o.Ctime,
		Utime: o.Utime,
	}
}
