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
	"errors"
	"fmt"

	"github.com/ecodeclub/bookstore/internal/order"
	"github.com/ecodeclub/bookstore/internal/payment"
	"github.com/ecodeclub/bookstore/internal/shipping"

	"github.com/ecodeclub/bookstore/internal/recon/internal/event"
	"github.com/gotomicro/ego/core/elog"
)

var (
	// ErrAlreadyTerminal 终态订单不接受取消
	ErrAlreadyTerminal = errors.New("订单已处于终态")
	// ErrRefundUnrecoverable 退款落在既非进行中也非成功的状态, 人工介入
	ErrRefundUnrecoverable = errors.New("退款进入不可恢复状态")
)

// Config 对账策略开关
type Config struct {
	// TreatCanceledAsDelivered 运输中的订单遇到承运商侧取消时按已送达处理
	TreatCanceledAsDelivered bool
	// RequireRefundSettled 管理员取消时要求退款已成功, 而不只是已发起
	RequireRefundSettled bool
}

//go:generate mockgen -source=./service.go -package=reconmocks -destination=../../mocks/recon.mock.go Service
type Service interface {
	// ReconcileOrder 对单个订单做一轮完整对账
	ReconcileOrder(ctx context.Context, orderID int64) error
	// ReconcileAllOpenOrders 分页遍历所有待对账订单, 单个失败不影响其余
	ReconcileAllOpenOrders(ctx context.Context) error
	// CancelOrder 管理员取消: 先退款, 再取消运单, 最后一个事务里恢复库存并落终态
	CancelOrder(ctx context.Context, orderID int64) error
	// EmitTicket 打印面单, 回写追踪号与实际运费
	EmitTicket(ctx context.Context, orderID int64) error
}

func NewService(orderSvc order.Service,
	paymentSvc payment.Service,
	shippingSvc shipping.Service,
	producer event.OrderStatusEventProducer,
	cfg Config,
) Service {
	return &reconService{
		orderSvc:    orderSvc,
		paymentSvc:  paymentSvc,
		shippingSvc: shippingSvc,
		producer:    producer,
		cfg:         cfg,
		batchSize:   100,
		l:           elog.DefaultLogger,
	}
}

type reconService struct {
	orderSvc    order.Service
	paymentSvc  payment.Service
	shippingSvc shipping.Service
	producer    event.OrderStatusEventProducer
	cfg         Config
	batchSize   int
	l           *elog.Component
}

func (s *reconService) ReconcileOrder(ctx context.Context, orderID int64) error {
	o, err := s.orderSvc.FindOrderByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("查询订单失败: %w", err)
	}
	return s.reconcile(ctx, o)
}

func (s *reconService) ReconcileAllOpenOrders(ctx context.Context) error {
	var es []error
	for offset := 0; ; offset += s.batchSize {
		os, total, err := s.orderSvc.ListActiveOrders(ctx, offset, s.batchSize)
		if err != nil {
			return fmt.Errorf("获取待对账订单失败: %w", err)
		}
		for _, o := range os {
			// 逐单隔离, 单个订单的外部调用失败不影响本轮其余订单
			if er := s.reconcile(ctx, o); er != nil {
				s.l.Warn("订单对账失败",
					elog.FieldErr(er),
					elog.Int64("order_id", o.ID))
				es = append(es, fmt.Errorf("订单对账失败: id=%d: %w", o.ID, er))
			}
		}
		if len(os) < s.batchSize || int64(offset+s.batchSize) >= total {
			break
		}
	}
	return errors.Join(es...)
}

// reconcile 一轮对账: 会话还在吗 -> 运单怎么样了 -> 推断 -> 退款 -> 一次性回写
// 任何外部调用失败都在落库之前返回, 不留半程状态
func (s *reconService) reconcile(ctx context.Context, o order.Order) error {
	if o.Status.IsTerminal() {
		// 终态订单唯一还要跟进的是未完结的退款
		if o.NeedsRefund && o.RefundStatus != payment.RefundStatusSucceeded.String() {
			return s.refreshRefund(ctx, o)
		}
		return nil
	}

	session, err := s.paymentSvc.GetSession(ctx, o.SessionSN)
	if err != nil {
		return fmt.Errorf("回查支付会话失败: %w", err)
	}
	if session.Status != payment.SessionStatusComplete {
		// 会话不再是已完成, 订单失去了存在依据, 这是唯一的删除路径
		s.l.Warn("会话不再处于已完成状态, 删除订单",
			elog.Int64("order_id", o.ID),
			elog.String("session_sn", o.SessionSN),
			elog.String("session_status", session.RawStatus))
		return s.orderSvc.DeleteOrder(ctx, o.ID)
	}

	updated := o
	updated.PaymentID = session.PaymentID
	updated.PaymentStatus = session.RawStatus
	updated.SessionStatus = session.RawStatus

	if o.TicketID != "" {
		ticket, err := s.shippingSvc.GetTicket(ctx, o.TicketID)
		if err != nil {
			return fmt.Errorf("回查运单失败: %w", err)
		}
		// 走到这里会话必然已完成, 即款项已被捕获
		inference := InferOrderStatus(o.Status, ticket.Status, true, s.cfg.TreatCanceledAsDelivered)
		updated.Status = inference.Status
		updated.NeedsRefund = inference.NeedsRefund
		if inference.CancelReason != order.CancelReasonNone {
			updated.CancelReason = inference.CancelReason
			updated.CancelMessage = fmt.Sprintf("承运商运单状态: %s", ticket.RawStatus)
		}
		updated.TicketStatus = ticket.RawStatus
		updated.TicketUtime = ticket.Utime
		if ticket.Tracking != "" {
			updated.Tracking = ticket.Tracking
		}
		if ticket.Price > 0 {
			updated.TicketPrice = ticket.Price
		}
	}

	if updated.NeedsRefund && updated.RefundStatus != payment.RefundStatusSucceeded.String() {
		refund, err := s.paymentSvc.EnsureRefund(ctx, o.SessionSN, updated.TotalPrice)
		if err != nil {
			return fmt.Errorf("保证退款失败: %w", err)
		}
		updated.RefundSN = refund.SN
		updated.RefundStatus = refund.Status.String()
	}

	if updated.Status == order.StatusCanceled {
		// 推断落在取消时走恢复库存的事务路径, 和镜像字段一起落库
		err = s.orderSvc.CancelOrderReconciled(ctx, updated)
	} else {
		err = s.orderSvc.UpdateOrderReconciled(ctx, updated)
	}
	if err != nil {
		// 版本冲突说明另一条路径刚处理过, 留给下一轮
		return err
	}

	if updated.Status != o.Status {
		if er := s.producer.Produce(ctx, event.OrderStatusEvent{
			OrderSN:   o.SN,
			OldStatus: o.Status.ToUint8(),
			NewStatus: updated.Status.ToUint8(),
		}); er != nil {
			s.l.Warn("发送订单状态事件失败",
				elog.FieldErr(er),
				elog.String("order_sn", o.SN))
		}
	}
	return nil
}

// refreshRefund 订单已经落了终态, 但退款还没有走完, 继续回查网关直到退款完结
func (s *reconService) refreshRefund(ctx context.Context, o order.Order) error {
	refund, ok, err := s.paymentSvc.GetRefund(ctx, o.SessionSN)
	if err != nil {
		return fmt.Errorf("回查退款失败: %w", err)
	}
	if !ok {
		s.l.Error("订单需要退款但网关没有退款单",
			elog.Int64("order_id", o.ID),
			elog.String("session_sn", o.SessionSN))
		return nil
	}
	if refund.Status == payment.RefundStatusFailed {
		s.l.Error("退款进入失败状态, 需要人工介入",
			elog.Int64("order_id", o.ID),
			elog.String("refund_sn", refund.SN),
			elog.String("refund_status", refund.RawStatus))
	}
	if refund.SN == o.RefundSN && refund.Status.String() == o.RefundStatus {
		return nil
	}
	updated := o
	updated.RefundSN = refund.SN
	updated.RefundStatus = refund.Status.String()
	return s.orderSvc.UpdateOrderReconciled(ctx, updated)
}

func (s *reconService) CancelOrder(ctx context.Context, orderID int64) error {
	o, err := s.orderSvc.FindOrderByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("查询订单失败: %w", err)
	}
	if o.Status.IsTerminal() {
		return fmt.Errorf("%w: id=%d status=%d", ErrAlreadyTerminal, o.ID, o.Status.ToUint8())
	}

	// 第一步: 钱. 退款保证存在且处于可接受状态, 否则整个取消失败
	refund, err := s.paymentSvc.EnsureRefund(ctx, o.SessionSN, o.TotalPrice)
	if err != nil {
		return fmt.Errorf("保证退款失败: %w", err)
	}
	switch refund.Status {
	case payment.RefundStatusSucceeded:
	case payment.RefundStatusPending:
		if s.cfg.RequireRefundSettled {
			return fmt.Errorf("退款尚未到账: sn=%s", refund.SN)
		}
	default:
		return fmt.Errorf("%w: sn=%s status=%s", ErrRefundUnrecoverable, refund.SN, refund.RawStatus)
	}

	// 第二步: 包裹. 承运商明确拒绝则取消失败; 超时是瞬时故障, 不能当成功
	if o.TicketID != "" {
		if err := s.shippingSvc.CancelTicket(ctx, o.TicketID); err != nil {
			return fmt.Errorf("取消运单失败: %w", err)
		}
	}

	// 第三步: 库存与状态, 单一事务全有或全无
	err = s.orderSvc.CancelOrderAndRestoreStock(ctx, o.ID, order.CancelReasonAdmin, "管理员取消")
	if err != nil {
		if errors.Is(err, order.ErrOrderAlreadyTerminal) {
			// 查询之后别的路径抢先落了终态
			return fmt.Errorf("%w: id=%d", ErrAlreadyTerminal, o.ID)
		}
		return fmt.Errorf("取消订单失败: %w", err)
	}

	if er := s.producer.Produce(ctx, event.OrderStatusEvent{
		OrderSN:   o.SN,
		OldStatus: o.Status.ToUint8(),
		NewStatus: order.StatusCanceled.ToUint8(),
	}); er != nil {
		s.l.Warn("发送订单状态事件失败",
			elog.FieldErr(er),
			elog.String("order_sn", o.SN))
	}
	return nil
}

func (s *reconService) EmitTicket(ctx context.Context, orderID int64) error {
	o, err := s.orderSvc.FindOrderByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("查询订单失败: %w", err)
	}
	if o.Status.IsTerminal() {
		return fmt.Errorf("%w: id=%d status=%d", ErrAlreadyTerminal, o.ID, o.Status.ToUint8())
	}
	if o.TicketID == "" {
		return fmt.Errorf("订单没有运单: id=%d", o.ID)
	}
	emission, err := s.shippingSvc.EmitTicket(ctx, o.TicketID)
	if err != nil {
		return fmt.Errorf("打印面单失败: %w", err)
	}
	o.Tracking = emission.Tracking
	o.PrintURL = emission.PrintURL
	if emission.Price > 0 {
		o.TicketPrice = emission.Price
	}
	return s.orderSvc.UpdateOrderReconciled(ctx, o)
}
