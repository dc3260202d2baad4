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

// ShippingSnapshot 结账时的运费报价快照
// 由结账会话创建时写入一次, 完成结算时读取一次, 之后不再修改
type ShippingSnapshot struct {
	ID            int64
	SessionSN     string
	BuyerID       int64
	SchemaVersion int64
	Options       []ShippingOption
	Products      []ShippingProduct
	Address       ShippingAddress
	Ctime         int64
}

// ShippingAddress 下单时买家收货地址的快照
type ShippingAddress struct {
	Name       string `json:"name"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
}

type ShippingOption struct {
	ServiceID   int64            `json:"serviceId"`
	ServiceName string           `json:"serviceName"`
	Price       int64            `json:"price"`
	DaysMin     int64            `json:"daysMin"`
	DaysMax     int64            `json:"daysMax"`
	Volumes     []ShippingVolume `json:"volumes,omitempty"`
}

type ShippingVolume struct {
	WeightGrams int64 `json:"weightGrams"`
	WidthCm     int64 `json:"widthCm"`
	HeightCm    int64 `json:"heightCm"`
	LengthCm    int64 `json:"lengthCm"`
}

type ShippingProduct struct {
	BookID      int64  `json:"bookId"`
	Title       string `json:"title"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
	WeightGrams int64  `json:"weightGrams"`
	WidthCm     int64  `json:"widthCm"`
	HeightCm    int64  `json:"heightCm"`
	LengthCm    int64  `json:"lengthCm"`
}
