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

// CreateSessionReq 创建结账会话
type CreateSessionReq struct {
	RequestID string     `json:"requestID"` // 请求去重, 防止重复结账
	Items     []CartItem `json:"items"`
	// ShippingServiceID 选定的承运方案, 0 表示选最便宜的
	ShippingServiceID int64 `json:"shippingServiceId,omitempty"`
}

type CartItem struct {
	BookID   int64 `json:"bookId"`
	Quantity int64 `json:"quantity"`
}

type CreateSessionResp struct {
	SN     string `json:"sn"`
	PayURL string `json:"payUrl"`
}

// CompleteCheckoutReq 支付完成后的回跳确认
type CompleteCheckoutReq struct {
	SessionSN string `json:"sessionSN"`
}

type CompleteCheckoutResp struct {
	OrderSN string `json:"orderSN"`
	Status  uint8  `json:"status"`
}
