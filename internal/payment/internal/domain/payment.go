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

type SessionStatus uint8

func (s SessionStatus) ToUint8() uint8 {
	return uint8(s)
}

const (
	// SessionStatusOpen 会话已创建, 买家尚未完成支付
	SessionStatusOpen SessionStatus = 1
	// SessionStatusComplete 支付已完成, 款项已被捕获
	SessionStatusComplete SessionStatus = 2
	// SessionStatusExpired 会话已关闭/撤销/失败, 不会再变为已完成
	SessionStatusExpired SessionStatus = 3
)

// Session 网关托管的支付会话
// SN 即网关侧的商户订单号, 是整个履约链路的幂等键
type Session struct {
	SN          string
	BuyerID     int64
	Description string
	// 总金额, 单位为分, 含所选承运方案的运费
	AmountTotal int64
	// 托管支付页URL, 创建会话时返回
	PayURL    string
	Status    SessionStatus
	RawStatus string
	// 网关侧的交易ID, 支付完成后才有值
	PaymentID string
	// 结算时选定的承运方案ID, 随会话元数据往返,
	// 完成结算时以网关回读的值为准, 不信任客户端
	ChosenServiceID int64
	LineItems       []LineItem
}

type LineItem struct {
	BookID    int64
	Title     string
	Quantity  int64
	UnitPrice int64
}

type RefundStatus uint8

func (s RefundStatus) ToUint8() uint8 {
	return uint8(s)
}

func (s RefundStatus) String() string {
	switch s {
	case RefundStatusPending:
		return "pending"
	case RefundStatusSucceeded:
		return "succeeded"
	case RefundStatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

const (
	RefundStatusPending   RefundStatus = 1
	RefundStatusSucceeded RefundStatus = 2
	RefundStatusFailed    RefundStatus = 3
)

type Refund struct {
	SN        string
	SessionSN string
	PaymentID string
	Amount    int64
	Status    RefundStatus
	RawStatus string
}
