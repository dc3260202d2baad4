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
	"testing"

	"github.com/ecodeclub/bookstore/internal/order"
	"github.com/ecodeclub/bookstore/internal/shipping"
	"github.com/stretchr/testify/assert"
)

func TestInferOrderStatus(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name                     string
		prior                    order.OrderStatus
		ticket                   shipping.TicketStatus
		captured                 bool
		treatCanceledAsDelivered bool
		want                     Inference
	}{
		{
			name:     "备货中遇到运单取消_已捕获_需要退款",
			prior:    order.StatusPreparing,
			ticket:   shipping.TicketStatusCanceled,
			captured: true,
			want: Inference{
				Status:       order.StatusCanceled,
				CancelReason: order.CancelReasonCarrier,
				NeedsRefund:  true,
			},
		},
		{
			name:     "备货中遇到运单取消_未捕获_不退款",
			prior:    order.StatusPreparing,
			ticket:   shipping.TicketStatusCanceled,
			captured: false,
			want: Inference{
				Status:       order.StatusCanceled,
				CancelReason: order.CancelReasonCarrier,
				NeedsRefund:  false,
			},
		},
		{
			name:                     "运输中遇到运单取消_开关打开_按已送达",
			prior:                    order.StatusInTransit,
			ticket:                   shipping.TicketStatusCanceled,
			captured:                 true,
			treatCanceledAsDelivered: true,
			want: Inference{
				Status: order.StatusDelivered,
			},
		},
		{
			name:     "运输中遇到运单取消_开关关闭_按取消处理",
			prior:    order.StatusInTransit,
			ticket:   shipping.TicketStatusCanceled,
			captured: true,
			want: Inference{
				Status:       order.StatusCanceled,
				CancelReason: order.CancelReasonCarrier,
				NeedsRefund:  true,
			},
		},
		{
			name:                     "备货中遇到运单取消_开关打开也不影响",
			prior:                    order.StatusPreparing,
			ticket:                   shipping.TicketStatusCanceled,
			captured:                 true,
			treatCanceledAsDelivered: true,
			want: Inference{
				Status:       order.StatusCanceled,
				CancelReason: order.CancelReasonCarrier,
				NeedsRefund:  true,
			},
		},
		{
			name:     "包裹放行_进入运输中并清除退款意向",
			prior:    order.StatusPreparing,
			ticket:   shipping.TicketStatusReleased,
			captured: true,
			want: Inference{
				Status:      order.StatusInTransit,
				NeedsRefund: false,
			},
		},
		{
			name:     "运单仍为active_保持备货中",
			prior:    order.StatusPreparing,
			ticket:   shipping.TicketStatusActive,
			captured: true,
			want: Inference{
				Status: order.StatusPreparing,
			},
		},
		{
			name:     "无法识别的运单状态_按备货中处理",
			prior:    order.StatusInTransit,
			ticket:   shipping.TicketStatusUnknown,
			captured: true,
			want: Inference{
				Status: order.StatusPreparing,
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := InferOrderStatus(tc.prior, tc.ticket, tc.captured, tc.treatCanceledAsDelivered)
			assert.Equal(t, tc.want, got)
		})
	}
}
