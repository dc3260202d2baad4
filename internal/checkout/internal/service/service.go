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
	"strings"

	"github.com/ecodeclub/bookstore/internal/checkout/internal/domain"
	"github.com/ecodeclub/bookstore/internal/order"
	"github.com/ecodeclub/bookstore/internal/payment"
	"github.com/ecodeclub/bookstore/internal/pkg/sequencenumber"
	"github.com/ecodeclub/bookstore/internal/product"
	"github.com/ecodeclub/bookstore/internal/shipping"
	"github.com/ecodeclub/bookstore/internal/user"
	"github.com/ecodeclub/ekit/slice"
	"github.com/gotomicro/ego/core/elog"
)

var (
	// ErrNoAddress 买家没有收货地址, 无法结账
	ErrNoAddress = errors.New("买家没有收货地址")
	// ErrBookNotFound 购物车里存在已下架或不存在的图书
	ErrBookNotFound = product.ErrBookNotFound
	// ErrInvalidCart 购物车为空或数量非法
	ErrInvalidCart = errors.New("购物车非法")
	// ErrSessionNotCompleted 会话在网关侧不是已完成状态, 不能落订单
	ErrSessionNotCompleted = errors.New("结账会话未完成")
	// ErrMissingShippingSnapshot 找不到报价快照, 属于一致性故障, 不做任何猜测性补偿
	ErrMissingShippingSnapshot = errors.New("缺少运费报价快照")
	// ErrRefundedNotFulfilled 已收款但无法履约, 已发起全额退款
	ErrRefundedNotFulfilled = errors.New("订单无法履约, 已退款")
)

//go:generate mockgen -source=./service.go -package=checkoutmocks -destination=../../mocks/checkout.mock.go Service
type Service interface {
	// CreateSession 构建结账会话: 地址校验, 图书解析, 运费报价, 开启支付会话, 落报价快照
	// shippingServiceID 为 0 时选择报价最便宜的承运方案
	CreateSession(ctx context.Context, buyerID int64, items []domain.CartItem, shippingServiceID int64) (domain.CheckoutSession, error)
	// CompleteCheckout 幂等地把已完成的会话落成订单
	// 重复调用与并发调用都返回同一个订单
	CompleteCheckout(ctx context.Context, sessionSN string) (order.Order, error)
}

func NewService(userSvc user.Service,
	productSvc product.Service,
	shippingSvc shipping.Service,
	paymentSvc payment.Service,
	orderSvc order.Service,
	snGenerator *sequencenumber.Generator,
	warehouse shipping.Address,
) Service {
	return &checkoutService{
		userSvc:     userSvc,
		productSvc:  productSvc,
		shippingSvc: shippingSvc,
		paymentSvc:  paymentSvc,
		orderSvc:    orderSvc,
		snGenerator: snGenerator,
		warehouse:   warehouse,
		l:           elog.DefaultLogger,
	}
}

type checkoutService struct {
	userSvc     user.Service
	productSvc  product.Service
	shippingSvc shipping.Service
	paymentSvc  payment.Service
	orderSvc    order.Service
	snGenerator *sequencenumber.Generator
	// warehouse 书仓发货地址, 报价和购票的起点
	warehouse shipping.Address
	l         *elog.Component
}

func (s *checkoutService) CreateSession(ctx context.Context, buyerID int64, items []domain.CartItem, shippingServiceID int64) (domain.CheckoutSession, error) {
	if len(items) == 0 {
		return domain.CheckoutSession{}, ErrInvalidCart
	}
	for _, item := range items {
		if item.Quantity < 1 {
			return domain.CheckoutSession{}, fmt.Errorf("%w: bookId=%d quantity=%d", ErrInvalidCart, item.BookID, item.Quantity)
		}
	}

	addr, err := s.userSvc.FindAddressByUID(ctx, buyerID)
	if err != nil {
		if errors.Is(err, user.ErrAddressNotFound) {
			return domain.CheckoutSession{}, fmt.Errorf("%w: uid=%d", ErrNoAddress, buyerID)
		}
		return domain.CheckoutSession{}, fmt.Errorf("查询收货地址失败: %w", err)
	}

	bookIDs := slice.Map(items, func(idx int, src domain.CartItem) int64 {
		return src.BookID
	})
	books, err := s.productSvc.FindBooksByIDs(ctx, bookIDs)
	if err != nil {
		return domain.CheckoutSession{}, err
	}

	products := s.toShippingProducts(books, items)
	options, err := s.shippingSvc.Quote(ctx, s.warehouse, addr.PostalCode, products)
	if err != nil {
		return domain.CheckoutSession{}, fmt.Errorf("运费报价失败: %w", err)
	}

	chosen, err := s.chooseOption(options, shippingServiceID)
	if err != nil {
		return domain.CheckoutSession{}, err
	}

	sn, err := s.snGenerator.Generate(buyerID)
	if err != nil {
		return domain.CheckoutSession{}, fmt.Errorf("生成会话序列号失败: %w", err)
	}

	var total int64
	lineItems := make([]payment.LineItem, 0, len(books))
	titles := make([]string, 0, len(books))
	for i, b := range books {
		total += b.Price * items[i].Quantity
		lineItems = append(lineItems, payment.LineItem{
			BookID:    b.ID,
			Title:     b.Title,
			Quantity:  items[i].Quantity,
			UnitPrice: b.Price,
		})
		titles = append(titles, b.Title)
	}
	total += chosen.Price

	session, err := s.paymentSvc.CreateSession(ctx, payment.Session{
		SN:              sn,
		BuyerID:         buyerID,
		Description:     strings.Join(titles, ", "),
		AmountTotal:     total,
		ChosenServiceID: chosen.ServiceID,
		LineItems:       lineItems,
	})
	if err != nil {
		return domain.CheckoutSession{}, fmt.Errorf("开启支付会话失败: %w", err)
	}

	// 快照必须在返回支付URL之前落库, 完成结算只信快照
	_, err = s.orderSvc.CreateShippingSnapshot(ctx, order.ShippingSnapshot{
		SessionSN:     sn,
		BuyerID:       buyerID,
		SchemaVersion: 1,
		Options:       s.toSnapshotOptions(options),
		Products:      s.toSnapshotProducts(products),
		Address: order.ShippingAddress{
			Name:       addr.Name,
			Street:     addr.Street,
			Number:     addr.Number,
			City:       addr.City,
			State:      addr.State,
			PostalCode: addr.PostalCode,
		},
	})
	if err != nil {
		return domain.CheckoutSession{}, fmt.Errorf("保存报价快照失败: %w", err)
	}

	return domain.CheckoutSession{SN: sn, PayURL: session.PayURL}, nil
}

func (s *checkoutService) CompleteCheckout(ctx context.Context, sessionSN string) (order.Order, error) {
	// 幂等检查优先, 已有订单直接返回
	existing, err := s.orderSvc.FindOrderBySessionSN(ctx, sessionSN)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, order.ErrRecordNotFound) {
		return order.Order{}, fmt.Errorf("查询订单失败: %w", err)
	}

	session, err := s.paymentSvc.GetSession(ctx, sessionSN)
	if err != nil {
		return order.Order{}, fmt.Errorf("回查支付会话失败: %w", err)
	}
	if session.Status != payment.SessionStatusComplete {
		return order.Order{}, fmt.Errorf("%w: sn=%s status=%s", ErrSessionNotCompleted, sessionSN, session.RawStatus)
	}

	snapshot, err := s.orderSvc.FindShippingSnapshotBySessionSN(ctx, sessionSN)
	if err != nil {
		if errors.Is(err, order.ErrRecordNotFound) {
			s.l.Error("已完成的会话找不到报价快照",
				elog.String("session_sn", sessionSN))
			return order.Order{}, fmt.Errorf("%w: sn=%s", ErrMissingShippingSnapshot, sessionSN)
		}
		return order.Order{}, fmt.Errorf("查询报价快照失败: %w", err)
	}

	chosen, ok := s.resolveChosenOption(snapshot.Options, session.ChosenServiceID)
	if !ok {
		s.l.Error("会话元数据里的承运方案不在快照中",
			elog.String("session_sn", sessionSN),
			elog.Int64("service_id", session.ChosenServiceID))
		return order.Order{}, fmt.Errorf("%w: sn=%s serviceId=%d", ErrMissingShippingSnapshot, sessionSN, session.ChosenServiceID)
	}

	ticketID, err := s.createTicket(ctx, snapshot, chosen)
	if err != nil {
		// 已收款但开票失败, 保证全额退款后向上暴露
		if _, refundErr := s.paymentSvc.EnsureRefund(ctx, sessionSN, session.AmountTotal); refundErr != nil {
			return order.Order{}, fmt.Errorf("开票失败且退款失败: %w: %v", refundErr, err)
		}
		s.l.Warn("开票失败, 已发起全额退款",
			elog.FieldErr(err),
			elog.String("session_sn", sessionSN))
		return order.Order{}, fmt.Errorf("%w: %v", ErrRefundedNotFulfilled, err)
	}

	orderSN, err := s.snGenerator.Generate(snapshot.BuyerID)
	if err != nil {
		return order.Order{}, fmt.Errorf("生成订单序列号失败: %w", err)
	}

	o, created, err := s.orderSvc.CreateOrder(ctx, order.Order{
		SN:                  orderSN,
		BuyerID:             snapshot.BuyerID,
		SessionSN:           sessionSN,
		Status:              order.StatusPreparing,
		PaymentID:           session.PaymentID,
		PaymentStatus:       session.RawStatus,
		SessionStatus:       session.RawStatus,
		TicketID:            ticketID,
		TotalPrice:          session.AmountTotal,
		ShippingPrice:       chosen.Price,
		ShippingServiceID:   chosen.ServiceID,
		ShippingServiceName: chosen.ServiceName,
		ShippingDaysMin:     chosen.DaysMin,
		ShippingDaysMax:     chosen.DaysMax,
		Items: slice.Map(snapshot.Products, func(idx int, src order.ShippingProduct) order.OrderItem {
			return order.OrderItem{
				BookID:   src.BookID,
				Title:    src.Title,
				Quantity: src.Quantity,
				Price:    src.UnitPrice,
			}
		}),
	})
	if err != nil {
		return order.Order{}, fmt.Errorf("创建订单失败: %w", err)
	}
	if !created {
		// 并发竞争输家, 赢家已经为该会话创建了订单
		s.l.Warn("结算并发竞争, 返回已创建的订单",
			elog.String("session_sn", sessionSN),
			elog.Int64("order_id", o.ID))
		if o.TicketID != ticketID {
			// 输家刚买的运单是多余的, 取消掉, 失败只能留给人工跟进
			if cancelErr := s.shippingSvc.CancelTicket(ctx, ticketID); cancelErr != nil {
				s.l.Error("取消多余运单失败",
					elog.FieldErr(cancelErr),
					elog.String("session_sn", sessionSN),
					elog.String("ticket_id", ticketID))
			}
		}
	}
	return o, nil
}

func (s *checkoutService) createTicket(ctx context.Context, snapshot order.ShippingSnapshot, chosen order.ShippingOption) (string, error) {
	to := shipping.Address{
		Name:       snapshot.Address.Name,
		Street:     snapshot.Address.Street,
		Number:     snapshot.Address.Number,
		City:       snapshot.Address.City,
		State:      snapshot.Address.State,
		PostalCode: snapshot.Address.PostalCode,
	}
	products := slice.Map(snapshot.Products, func(idx int, src order.ShippingProduct) shipping.Product {
		return shipping.Product{
			BookID:      src.BookID,
			Title:       src.Title,
			Quantity:    src.Quantity,
			UnitPrice:   src.UnitPrice,
			WeightGrams: src.WeightGrams,
			WidthCm:     src.WidthCm,
			HeightCm:    src.HeightCm,
			LengthCm:    src.LengthCm,
		}
	})
	volumes := slice.Map(chosen.Volumes, func(idx int, src order.ShippingVolume) shipping.Package {
		return shipping.Package{
			WeightGrams: src.WeightGrams,
			WidthCm:     src.WidthCm,
			HeightCm:    src.HeightCm,
			LengthCm:    src.LengthCm,
		}
	})
	return s.shippingSvc.CreateTicket(ctx, s.warehouse, to, chosen.ServiceID, products, volumes)
}

func (s *checkoutService) chooseOption(options []shipping.ShippingOption, serviceID int64) (shipping.ShippingOption, error) {
	if serviceID == 0 {
		cheapest := options[0]
		for _, opt := range options[1:] {
			if opt.Price < cheapest.Price {
				cheapest = opt
			}
		}
		return cheapest, nil
	}
	for _, opt := range options {
		if opt.ServiceID == serviceID {
			return opt, nil
		}
	}
	return shipping.ShippingOption{}, fmt.Errorf("%w: 承运方案不在报价之中 serviceId=%d", ErrInvalidCart, serviceID)
}

func (s *checkoutService) resolveChosenOption(options []order.ShippingOption, serviceID int64) (order.ShippingOption, bool) {
	for _, opt := range options {
		if opt.ServiceID == serviceID {
			return opt, true
		}
	}
	return order.ShippingOption{}, false
}

func (s *checkoutService) toShippingProducts(books []product.Book, items []domain.CartItem) []shipping.Product {
	return slice.Map(books, func(idx int, src product.Book) shipping.Product {
		return shipping.Product{
			BookID:      src.ID,
			Title:       src.Title,
			Quantity:    items[idx].Quantity,
			UnitPrice:   src.Price,
			WeightGrams: src.WeightGrams,
			WidthCm:     src.WidthCm,
			HeightCm:    src.HeightCm,
			LengthCm:    src.LengthCm,
		}
	})
}

func (s *checkoutService) toSnapshotOptions(options []shipping.ShippingOption) []order.ShippingOption {
	return slice.Map(options, func(idx int, src shipping.ShippingOption) order.ShippingOption {
		return order.ShippingOption{
			ServiceID:   src.ServiceID,
			ServiceName: src.ServiceName,
			Price:       src.Price,
			DaysMin:     src.DaysMin,
			DaysMax:     src.DaysMax,
			Volumes: slice.Map(src.Packages, func(idx int, p shipping.Package) order.ShippingVolume {
				return order.ShippingVolume{
					WeightGrams: p.WeightGrams,
					WidthCm:     p.WidthCm,
					HeightCm:    p.HeightCm,
					LengthCm:    p.LengthCm,
				}
			}),
		}
	})
}

func (s *checkoutService) toSnapshotProducts(products []shipping.Product) []order.ShippingProduct {
	return slice.Map(products, func(idx int, src shipping.Product) order.ShippingProduct {
		return order.ShippingProduct{
			BookID:      src.BookID,
			Title:       src.Title,
			Quantity:    src.Quantity,
			UnitPrice:   src.UnitPrice,
			WeightGrams: src.WeightGrams,
			WidthCm:     src.WidthCm,
			HeightCm:    src.HeightCm,
			LengthCm:    src.LengthCm,
		}
	})
}
