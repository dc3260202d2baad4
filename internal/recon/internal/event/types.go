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

package event

const orderStatusEventName = "order_status_events"

// OrderStatusEvent 订单状态每发生一次变化就发一条
// 下游用来触发通知邮件或报表, 不参与状态推断本身
type OrderStatusEvent struct {
	OrderSN   string `json:"order_sn"`
	OldStatus uint8  `json:"old_status"`
	NewStatus uint8  `json:"new_status"`
}
