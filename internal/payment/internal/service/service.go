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
	"fmt"

	"github.com/ecodeclub/bookstore/internal/payment/internal/domain"
	"github.com/ecodeclub/bookstore/internal/payment/internal/event"
	"github.com/ecodeclub/bookstore/internal/payment/internal/service/wechat"
	"github.com/gotomicro/ego/core/elog"
	"github.com/wechatpay-apiv3/wechatpay-go/services/payments"
)

//go:generate mockgen -source=./service.go -package=paymentmocks -destination=../../mocks/payment.mock.go Service
type Service interface {
	// CreateSession 在网关侧打开托管支付会话, 返回带 PayURL 的会话
	CreateSession(ctx context.Context, session domain.Session) (domain.Session, error)
	// GetSession 回查网关, 会话状态以网关为准
	GetSession(ctx context.Context, sessionSN string) (domain.Session, error)
	// EnsureRefund 幂等地保证会话存在一笔全额退款
	EnsureRefund(ctx context.Context, sessionSN string, amount int64) (domain.Refund, error)
	// GetRefund 查询既有退款, 第二个返回值表示退款是否存在
	GetRefund(ctx context.Context, sessionSN string) (domain.Refund, bool, error)
	// HandleCallback 处理网关的支付结果通知
	HandleCallback(ctx context.Context, txn *payments.Transaction) error
}

func NewService(sessionSvc *wechat.SessionPaymentService, producer event.PaymentEventProducer) Service {
	return &service{
		sessionSvc: sessionSvc,
		producer:   producer,
		l:          elog.DefaultLogger,
	}
}

type service struct {
	sessionSvc *wechat.SessionPaymentService
	producer   event.PaymentEventProducer
	l          *elog.Component
}

func (s *service) CreateSession(ctx context.Context, session domain.Session) (domain.Session, error) {
	return s.sessionSvc.CreateSession(ctx, session)
}

func (s *service) GetSession(ctx context.Context, sessionSN string) (domain.Session, error) {
	return s.sessionSvc.GetSession(ctx, sessionSN)
}

func (s *service) EnsureRefund(ctx context.Context, sessionSN string, amount int64) (domain.Refund, error) {
	return s.sessionSvc.EnsureRefund(ctx, sessionSN, amount)
}

func (s *service) GetRefund(ctx context.Context, sessionSN string) (domain.Refund, bool, error) {
	return s.sessionSvc.GetRefund(ctx, sessionSN)
}

// HandleCallback 回调只负责把"会话可能已完成"的信号转成事件
// 消费方会重新回查网关, 所以即便通知重复或乱序也不会产生副作用
func (s *service) HandleCallback(ctx context.Context, txn *payments.Transaction) error {
	session, err := s.sessionSvc.ConvertCallbackTransactionToDomain(txn)
	if err != nil {
		return err
	}
	if session.Status != domain.SessionStatusComplete {
		s.l.Warn("忽略未完成会话的支付通知",
			elog.String("session_sn", session.SN),
			elog.String("trade_state", session.RawStatus))
		return nil
	}
	err = s.producer.Produce(ctx, event.PaymentEvent{SessionSN: session.SN})
	if err != nil {
		return fmt.Errorf("发送支付事件失败: %w", err)
	}
	return nil
}
