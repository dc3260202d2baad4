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

package service

import (
	"github.com/ecodeclub/bookstore/internal/order"
	"github.com/ecodeclub/bookstore/internal/shipping"
)

// Inference 一次状态推断的全部结论
type Inference struct {
	Status       order.OrderStatus
	CancelReason order.CancelReason
	// NeedsRefund 推断出取消且款项已捕获时置位, 放行时显式清零
	NeedsRefund bool
}

// InferOrderStatus 运单状态到订单状态的纯函数推断
// prior 是订单当前状态, captured 表示款项是否已被网关捕获
//
// 已经运输中的订单, 承运商侧的"已取消"几乎总是送达后的归档动作,
// 由 treatCanceledAsDelivered 控制是否按已送达处理
func InferOrderStatus(prior order.OrderStatus, ticket shipping.TicketStatus,
	captured bool, treatCanceledAsDelivered bool) Inference {
	switch ticket {
	case shipping.TicketStatusCanceled:
		if prior == order.StatusInTransit && treatCanceledAsDelivered {
			return Inference{Status: order.StatusDelivered, CancelReason: order.CancelReasonNone}
		}
		return Inference{
			Status:       order.StatusCanceled,
			CancelReason: order.CancelReasonCarrier,
			NeedsRefund:  captured,
		}
	case shipping.TicketStatusReleased:
		// 包裹已交承运商, 之前悬着的退款意向一并撤销
		return Inference{Status: order.StatusInTransit, NeedsRefund: false}
	default:
		// active 以及一切无法识别的状态都按备货中处理
		return Inference{Status: order.StatusPreparing}
	}
}
