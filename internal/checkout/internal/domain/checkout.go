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

// CartItem 购物车里的一行, 数量必须为正
type CartItem struct {
	BookID   int64
	Quantity int64
}

// CheckoutSession 结账会话的创建结果
// 前端拿着 PayURL 跳转托管支付页, 拿着 SN 轮询完成结算
type CheckoutSession struct {
	SN     string
	PayURL string
}
