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

type TicketStatus uint8

func (s TicketStatus) ToUint8() uint8 {
	return uint8(s)
}

const (
	// TicketStatusActive 票据已创建, 包裹尚未交给承运商
	TicketStatusActive TicketStatus = 1
	// TicketStatusReleased 承运商已放行, 包裹在途
	TicketStatusReleased TicketStatus = 2
	// TicketStatusCanceled 承运商侧已取消
	TicketStatusCanceled TicketStatus = 3
	// TicketStatusUnknown 承运商返回了无法识别的状态
	TicketStatusUnknown TicketStatus = 4
)

// Ticket 承运商侧的运单
type Ticket struct {
	ID        string
	Status    TicketStatus
	RawStatus string
	Tracking  string
	// 承运商实际收取的运费, 单位为分
	Price int64
	Utime int64
}

// TicketEmission 打印面单的结果
type TicketEmission struct {
	TicketID string
	Tracking string
	PrintURL string
	Price    int64
}

// ShippingOption 一次报价返回的单个承运方案
type ShippingOption struct {
	ServiceID   int64
	ServiceName string
	// 运费, 单位为分
	Price   int64
	DaysMin int64
	DaysMax int64
	// 承运商要求的包裹体积
	Packages []Package
}

type Package struct {
	WeightGrams int64
	WidthCm     int64
	HeightCm    int64
	LengthCm    int64
}

// Product 报价及购票时提交给承运商的单品快照
type Product struct {
	BookID      int64
	Title       string
	Quantity    int64
	UnitPrice   int64
	WeightGrams int64
	WidthCm     int64
	HeightCm    int64
	LengthCm    int64
}

type Address struct {
	Name       string
	Street     string
	Number     string
	City       string
	State      string
	PostalCode string
}
