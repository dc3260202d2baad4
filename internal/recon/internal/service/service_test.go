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
	"context"
	"testing"

	"github.com/ecodeclub/bookstore/internal/order"
	"github.com/ecodeclub/bookstore/internal/payment"
	paymentmocks "github.com/ecodeclub/bookstore/internal/payment/mocks"
	"github.com/ecodeclub/bookstore/internal/recon/internal/event"
	"github.com/ecodeclub/bookstore/internal/shipping"
	shippingmocks "github.com/ecodeclub/bookstore/internal/shipping/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakeOrderService 记录调用痕迹的手写假实现
type fakeOrderService struct {
	order.Service

	orders map[int64]order.Order

	updated       []order.Order
	reconCanceled []order.Order
	deletedIDs    []int64

	canceledID     int64
	canceledReason order.CancelReason
	canceledMsg    string
	cancelErr      error
}

func newFakeOrderService(orders ...order.Order) *fakeOrderService {
	m := make(map[int64]order.Order, len(orders))
	for _, o := range orders {
		m[o.ID] = o
	}
	return &fakeOrderService{orders: m}
}

func (f *fakeOrderService) FindOrderByID(_ context.Context, id int64) (order.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return order.Order{}, order.ErrRecordNotFound
	}
	return o, nil
}

func (f *fakeOrderService) ListActiveOrders(_ context.Context, offset, limit int) ([]order.Order, int64, error) {
	var os []order.Order
	for _, o := range f.orders {
		if !o.Status.IsTerminal() {
			os = append(os, o)
		}
	}
	if offset >= len(os) {
		return nil, int64(len(os)), nil
	}
	end := offset + limit
	if end > len(os) {
		end = len(os)
	}
	return os[offset:end], int64(len(os)), nil
}

func (f *fakeOrderService) UpdateOrderReconciled(_ context.Context, o order.Order) error {
	f.updated = append(f.updated, o)
	f.orders[o.ID] = o
	return nil
}

func (f *fakeOrderService) DeleteOrder(_ context.Context, oid int64) error {
	f.deletedIDs = append(f.deletedIDs, oid)
	delete(f.orders, oid)
	return nil
}

func (f *fakeOrderService) CancelOrderAndRestoreStock(_ context.Context, oid int64, reason order.CancelReason, message string) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.canceledID = oid
	f.canceledReason = reason
	f.canceledMsg = message
	o := f.orders[oid]
	o.Status = order.StatusCanceled
	f.orders[oid] = o
	return nil
}

func (f *fakeOrderService) CancelOrderReconciled(_ context.Context, o order.Order) error {
	f.reconCanceled = append(f.reconCanceled, o)
	o.Status = order.StatusCanceled
	f.orders[o.ID] = o
	return nil
}

// fakeProducer 收集发出的状态事件
type fakeProducer struct {
	events []event.OrderStatusEvent
}

func (f *fakeProducer) Produce(_ context.Context, evt event.OrderStatusEvent) error {
	f.events = append(f.events, evt)
	return nil
}

func TestService_ReconcileOrder_SkipTerminal(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	paymentSvc := paymentmocks.NewMockService(ctrl)
	shippingSvc := shippingmocks.NewMockService(ctrl)
	orderSvc := newFakeOrderService(order.Order{ID: 1, Status: order.StatusDelivered})
	producer := &fakeProducer{}
	svc := NewService(orderSvc, paymentSvc, shippingSvc, producer, Config{})

	err := svc.ReconcileOrder(context.Background(), 1)

	require.NoError(t, err)
	assert.Empty(t, orderSvc.updated)
	assert.Empty(t, producer.events)
}

func TestService_ReconcileOrder_TerminalPendingRefundRefreshed(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	paymentSvc := paymentmocks.NewMockService(ctrl)
	shippingSvc := shippingmocks.NewMockService(ctrl)
	// 订单已落终态, 但退款还在进行中, 不能从此被遗忘
	orderSvc := newFakeOrderService(order.Order{
		ID:           11,
		SN:           "order-sn-11",
		SessionSN:    "session-sn-11",
		Status:       order.StatusCanceled,
		NeedsRefund:  true,
		RefundSN:     "Rsession-sn-11",
		RefundStatus: "pending",
	})
	producer := &fakeProducer{}
	svc := NewService(orderSvc, paymentSvc, shippingSvc, producer, Config{})

	paymentSvc.EXPECT().GetRefund(gomock.Any(), "session-sn-11").
		Return(payment.Refund{
			SN:        "Rsession-sn-11",
			SessionSN: "session-sn-11",
			Status:    payment.RefundStatusSucceeded,
			RawStatus: "SUCCESS",
		}, true, nil)

	err := svc.ReconcileOrder(context.Background(), 11)

	require.NoError(t, err)
	require.Len(t, orderSvc.updated, 1)
	got := orderSvc.updated[0]
	assert.Equal(t, "succeeded", got.RefundStatus)
	assert.Equal(t, order.StatusCanceled, got.Status)
	assert.Empty(t, producer.events)
}

func TestService_ReconcileOrder_TerminalRefundStillPending(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	paymentSvc := paymentmocks.NewMockService(ctrl)
	shippingSvc := shippingmocks.NewMockService(ctrl)
	orderSvc := newFakeOrderService(order.Order{
		ID:           12,
		SessionSN:    "session-sn-12",
		Status:       order.StatusCanceled,
		NeedsRefund:  true,
		RefundSN:     "Rsession-sn-12",
		RefundStatus: "pending",
	})
	svc := NewService(orderSvc, paymentSvc, shippingSvc, &fakeProducer{}, Config{})

	paymentSvc.EXPECT().GetRefund(gomock.Any(), "session-sn-12").
		Return(payment.Refund{
			SN:        "Rsession-sn-12",
			Status:    payment.RefundStatusPending,
			RawStatus: "PROCESSING",
		}, true, nil)

	err := svc.ReconcileOrder(context.Background(), 12)

	// 状态没变就不回写, 留给下一轮继续回查
	require.NoError(t, err)
	assert.Empty(t, orderSvc.updated)
}

func TestService_ReconcileOrder_SessionNoLongerComplete(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	paymentSvc := paymentmocks.NewMockService(ctrl)
	shippingSvc := shippingmocks.NewMockService(ctrl)
	orderSvc := newFakeOrderService(order.Order{
		ID:        7,
		SN:        "order-sn-7",
		SessionSN: "session-sn-7",
		Status:    order.StatusPreparing,
	})
	producer := &fakeProducer{}
	svc := NewService(orderSvc, paymentSvc, shippingSvc, producer, Config{})

	paymentSvc.EXPECT().GetSession(gomock.Any(), "session-sn-7").
		Return(payment.Session{
			SN:        "session-sn-7",
			Status:    payment.SessionStatusExpired,
			RawStatus: "CLOSED",
		}, nil)

	err := svc.ReconcileOrder(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, []int64{7}, orderSvc.deletedIDs)
	assert.Empty(t, orderSvc.updated)
}

func TestService_ReconcileOrder_TicketCanceledTriggersRefund(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	paymentSvc := paymentmocks.NewMockService(ctrl)
	shippingSvc := shippingmocks.NewMockService(ctrl)
	orderSvc := newFakeOrderService(order.Order{
		ID:         3,
		SN:         "order-sn-3",
		SessionSN:  "session-sn-3",
		Status:     order.StatusPreparing,
		TicketID:   "ticket-3",
		TotalPrice: 12800,
	})
	producer := &fakeProducer{}
	svc := NewService(orderSvc, paymentSvc, shippingSvc, producer, Config{TreatCanceledAsDelivered: true})

	paymentSvc.EXPECT().GetSession(gomock.Any(), "session-sn-3").
		Return(payment.Session{
			SN:        "session-sn-3",
			Status:    payment.SessionStatusComplete,
			RawStatus: "SUCCESS",
			PaymentID: "txn-3",
		}, nil)
	shippingSvc.EXPECT().GetTicket(gomock.Any(), "ticket-3").
		Return(shipping.Ticket{
			ID:        "ticket-3",
			Status:    shipping.TicketStatusCanceled,
			RawStatus: "canceled",
			Utime:     123,
		}, nil)
	paymentSvc.EXPECT().EnsureRefund(gomock.Any(), "session-sn-3", int64(12800)).
		Return(payment.Refund{
			SN:        "Rsession-sn-3",
			SessionSN: "session-sn-3",
			Amount:    12800,
			Status:    payment.RefundStatusPending,
			RawStatus: "PROCESSING",
		}, nil)

	err := svc.ReconcileOrder(context.Background(), 3)

	require.NoError(t, err)
	// 推断出取消时必须走恢复库存的取消路径, 而不是普通回写
	assert.Empty(t, orderSvc.updated)
	require.Len(t, orderSvc.reconCanceled, 1)
	got := orderSvc.reconCanceled[0]
	assert.Equal(t, order.StatusCanceled, got.Status)
	assert.Equal(t, order.CancelReasonCarrier, got.CancelReason)
	assert.True(t, got.NeedsRefund)
	assert.Equal(t, "Rsession-sn-3", got.RefundSN)
	assert.Equal(t, "pending", got.RefundStatus)
	assert.Equal(t, "txn-3", got.PaymentID)
	require.Len(t, producer.events, 1)
	assert.Equal(t, event.OrderStatusEvent{
		OrderSN:   "order-sn-3",
		OldStatus: order.StatusPreparing.ToUint8(),
		NewStatus: order.StatusCanceled.ToUint8(),
	}, producer.events[0])
}

func TestService_ReconcileOrder_ReleasedTicketMovesToInTransit(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	paymentSvc := paymentmocks.NewMockService(ctrl)
	shippingSvc := shippingmocks.NewMockService(ctrl)
	orderSvc := newFakeOrderService(order.Order{
		ID:        5,
		SN:        "order-sn-5",
		SessionSN: "session-sn-5",
		Status:    order.StatusPreparing,
		TicketID:  "ticket-5",
	})
	producer := &fakeProducer{}
	svc := NewService(orderSvc, paymentSvc, shippingSvc, producer, Config{})

	paymentSvc.EXPECT().GetSession(gomock.Any(), "session-sn-5").
		Return(payment.Session{
			Status:    payment.SessionStatusComplete,
			RawStatus: "SUCCESS",
		}, nil)
	shippingSvc.EXPECT().GetTicket(gomock.Any(), "ticket-5").
		Return(shipping.Ticket{
			ID:        "ticket-5",
			Status:    shipping.TicketStatusReleased,
			RawStatus: "released",
			Tracking:  "TRK123",
			Price:     990,
		}, nil)

	err := svc.ReconcileOrder(context.Background(), 5)

	require.NoError(t, err)
	require.Len(t, orderSvc.updated, 1)
	got := orderSvc.updated[0]
	assert.Equal(t, order.StatusInTransit, got.Status)
	assert.False(t, got.NeedsRefund)
	assert.Equal(t, "TRK123", got.Tracking)
	assert.Equal(t, int64(990), got.TicketPrice)
	require.Len(t, producer.events, 1)
}

func TestService_ReconcileAllOpenOrders_IsolatesFailures(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	paymentSvc := paymentmocks.NewMockService(ctrl)
	shippingSvc := shippingmocks.NewMockService(ctrl)
	orderSvc := newFakeOrderService(
		order.Order{ID: 1, SN: "order-sn-1", SessionSN: "bad-sn", Status: order.StatusPreparing},
		order.Order{ID: 2, SN: "order-sn-2", SessionSN: "good-sn", Status: order.StatusPreparing},
	)
	producer := &fakeProducer{}
	svc := NewService(orderSvc, paymentSvc, shippingSvc, producer, Config{})

	paymentSvc.EXPECT().GetSession(gomock.Any(), "bad-sn").
		Return(payment.Session{}, assert.AnError)
	paymentSvc.EXPECT().GetSession(gomock.Any(), "good-sn").
		Return(payment.Session{Status: payment.SessionStatusComplete, RawStatus: "SUCCESS"}, nil)

	err := svc.ReconcileAllOpenOrders(context.Background())

	// 坏订单的错误被收集, 好订单照常回写
	assert.Error(t, err)
	require.Len(t, orderSvc.updated, 1)
	assert.Equal(t, int64(2), orderSvc.updated[0].ID)
}

func TestService_CancelOrder(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		before    order.Order
		cfg       Config
		mock      func(p *paymentmocks.MockService, s *shippingmocks.MockService)
		wantErr   error
		assertion func(t *testing.T, orderSvc *fakeOrderService, producer *fakeProducer)
	}{
		{
			name:    "终态订单直接拒绝",
			before:  order.Order{ID: 1, Status: order.StatusCanceled},
			mock:    func(_ *paymentmocks.MockService, _ *shippingmocks.MockService) {},
			wantErr: ErrAlreadyTerminal,
		},
		{
			name:   "退款进入不可恢复状态",
			before: order.Order{ID: 2, SessionSN: "sn-2", Status: order.StatusPreparing, TotalPrice: 100},
			mock: func(p *paymentmocks.MockService, _ *shippingmocks.MockService) {
				p.EXPECT().EnsureRefund(gomock.Any(), "sn-2", int64(100)).
					Return(payment.Refund{SN: "Rsn-2", Status: payment.RefundStatusFailed, RawStatus: "ABNORMAL"}, nil)
			},
			wantErr: ErrRefundUnrecoverable,
		},
		{
			name:   "要求退款到账时不接受进行中的退款",
			before: order.Order{ID: 3, SessionSN: "sn-3", Status: order.StatusPreparing, TotalPrice: 100},
			cfg:    Config{RequireRefundSettled: true},
			mock: func(p *paymentmocks.MockService, _ *shippingmocks.MockService) {
				p.EXPECT().EnsureRefund(gomock.Any(), "sn-3", int64(100)).
					Return(payment.Refund{SN: "Rsn-3", Status: payment.RefundStatusPending, RawStatus: "PROCESSING"}, nil)
			},
			wantErr: assert.AnError,
		},
		{
			name: "承运商拒绝取消运单则整体失败",
			before: order.Order{
				ID: 4, SessionSN: "sn-4", Status: order.StatusPreparing,
				TicketID: "ticket-4", TotalPrice: 100,
			},
			mock: func(p *paymentmocks.MockService, s *shippingmocks.MockService) {
				p.EXPECT().EnsureRefund(gomock.Any(), "sn-4", int64(100)).
					Return(payment.Refund{SN: "Rsn-4", Status: payment.RefundStatusSucceeded, RawStatus: "SUCCESS"}, nil)
				s.EXPECT().CancelTicket(gomock.Any(), "ticket-4").
					Return(shipping.ErrTicketCancelRejected)
			},
			wantErr: shipping.ErrTicketCancelRejected,
		},
		{
			name: "退款成功且运单取消成功",
			before: order.Order{
				ID: 5, SN: "order-sn-5", SessionSN: "sn-5", Status: order.StatusPreparing,
				TicketID: "ticket-5", TotalPrice: 100,
			},
			mock: func(p *paymentmocks.MockService, s *shippingmocks.MockService) {
				p.EXPECT().EnsureRefund(gomock.Any(), "sn-5", int64(100)).
					Return(payment.Refund{SN: "Rsn-5", Status: payment.RefundStatusSucceeded, RawStatus: "SUCCESS"}, nil)
				s.EXPECT().CancelTicket(gomock.Any(), "ticket-5").Return(nil)
			},
			assertion: func(t *testing.T, orderSvc *fakeOrderService, producer *fakeProducer) {
				assert.Equal(t, int64(5), orderSvc.canceledID)
				assert.Equal(t, order.CancelReasonAdmin, orderSvc.canceledReason)
				assert.Equal(t, "管理员取消", orderSvc.canceledMsg)
				require.Len(t, producer.events, 1)
				assert.Equal(t, order.StatusCanceled.ToUint8(), producer.events[0].NewStatus)
			},
		},
		{
			name: "没有运单时跳过承运商直接取消",
			before: order.Order{
				ID: 6, SN: "order-sn-6", SessionSN: "sn-6",
				Status: order.StatusPreparing, TotalPrice: 100,
			},
			mock: func(p *paymentmocks.MockService, _ *shippingmocks.MockService) {
				p.EXPECT().EnsureRefund(gomock.Any(), "sn-6", int64(100)).
					Return(payment.Refund{SN: "Rsn-6", Status: payment.RefundStatusSucceeded, RawStatus: "SUCCESS"}, nil)
			},
			assertion: func(t *testing.T, orderSvc *fakeOrderService, _ *fakeProducer) {
				assert.Equal(t, int64(6), orderSvc.canceledID)
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			paymentSvc := paymentmocks.NewMockService(ctrl)
			shippingSvc := shippingmocks.NewMockService(ctrl)
			orderSvc := newFakeOrderService(tc.before)
			producer := &fakeProducer{}
			tc.mock(paymentSvc, shippingSvc)
			svc := NewService(orderSvc, paymentSvc, shippingSvc, producer, tc.cfg)

			err := svc.CancelOrder(context.Background(), tc.before.ID)

			if tc.wantErr != nil {
				require.Error(t, err)
				if tc.wantErr != assert.AnError {
					assert.ErrorIs(t, err, tc.wantErr)
				}
				return
			}
			require.NoError(t, err)
			if tc.assertion != nil {
				tc.assertion(t, orderSvc, producer)
			}
		})
	}
}

func TestService_CancelOrder_LosesRaceToTerminal(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	paymentSvc := paymentmocks.NewMockService(ctrl)
	shippingSvc := shippingmocks.NewMockService(ctrl)
	// 查询时订单还未落终态, 但落库前另一条路径抢先取消了
	orderSvc := newFakeOrderService(order.Order{
		ID: 8, SN: "order-sn-8", SessionSN: "sn-8",
		Status: order.StatusPreparing, TotalPrice: 100,
	})
	orderSvc.cancelErr = order.ErrOrderAlreadyTerminal
	producer := &fakeProducer{}
	svc := NewService(orderSvc, paymentSvc, shippingSvc, producer, Config{})

	paymentSvc.EXPECT().EnsureRefund(gomock.Any(), "sn-8", int64(100)).
		Return(payment.Refund{SN: "Rsn-8", Status: payment.RefundStatusSucceeded, RawStatus: "SUCCESS"}, nil)

	err := svc.CancelOrder(context.Background(), 8)

	assert.ErrorIs(t, err, ErrAlreadyTerminal)
	assert.Empty(t, producer.events)
}

func TestService_EmitTicket(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	paymentSvc := paymentmocks.NewMockService(ctrl)
	shippingSvc := shippingmocks.NewMockService(ctrl)
	orderSvc := newFakeOrderService(order.Order{
		ID:       9,
		TicketID: "ticket-9",
		Status:   order.StatusPreparing,
	})
	svc := NewService(orderSvc, paymentSvc, shippingSvc, &fakeProducer{}, Config{})

	shippingSvc.EXPECT().EmitTicket(gomock.Any(), "ticket-9").
		Return(shipping.TicketEmission{
			TicketID: "ticket-9",
			Tracking: "TRK999",
			PrintURL: "https://carrier.example.com/print/9",
			Price:    1500,
		}, nil)

	err := svc.EmitTicket(context.Background(), 9)

	require.NoError(t, err)
	require.Len(t, orderSvc.updated, 1)
	got := orderSvc.updated[0]
	assert.Equal(t, "TRK999", got.Tracking)
	assert.Equal(t, "https://carrier.example.com/print/9", got.PrintURL)
	assert.Equal(t, int64(1500), got.TicketPrice)
}

func TestService_EmitTicket_NoTicket(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	orderSvc := newFakeOrderService(order.Order{ID: 10, Status: order.StatusPreparing})
	svc := NewService(orderSvc,
		paymentmocks.NewMockService(ctrl),
		shippingmocks.NewMockService(ctrl),
		&fakeProducer{}, Config{})

	err := svc.EmitTicket(context.Background(), 10)

	assert.Error(t, err)
	assert.Empty(t, orderSvc.updated)
}

func TestService_EmitTicket_Terminal(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	orderSvc := newFakeOrderService(order.Order{
		ID:       13,
		TicketID: "ticket-13",
		Status:   order.StatusCanceled,
	})
	svc := NewService(orderSvc,
		paymentmocks.NewMockService(ctrl),
		shippingmocks.NewMockService(ctrl),
		&fakeProducer{}, Config{})

	err := svc.EmitTicket(context.Background(), 13)

	// 已取消的订单不允许再打印面单
	assert.ErrorIs(t, err, ErrAlreadyTerminal)
	assert.Empty(t, orderSvc.updated)
}
