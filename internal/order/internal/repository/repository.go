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

package repository

import (
	"context"

	"github.com/ecodeclub/bookstore/internal/order/internal/domain"
	"github.com/ecodeclub/bookstore/internal/order/internal/repository/dao"
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ekit/sqlx"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, bool, error)
	FindOrderBySessionSN(ctx context.Context, sessionSN string) (domain.Order, error)
	FindOrderByID(ctx context.Context, id int64) (domain.Order, error)
	FindOrderBySNAndBuyerID(ctx context.Context, sn string, buyerID int64) (domain.Order, error)
	ListOrdersByUID(ctx context.Context, offset, limit int, uid int64) ([]domain.Order, error)
	TotalOrders(ctx context.Context, uid int64) (int64, error)
	ListActiveOrders(ctx context.Context, offset, limit int) ([]domain.Order, error)
	TotalActiveOrders(ctx context.Context) (int64, error)
	UpdateOrderReconciled(ctx context.Context, order domain.Order) error
	DeleteOrder(ctx context.Context, oid int64) error
	CancelOrderAndRestoreStock(ctx context.Context, oid int64, reason domain.CancelReason, message string) error
	CancelOrderReconciled(ctx context.Context, order domain.Order) error
	CreateShippingSnapshot(ctx context.Context, snapshot domain.ShippingSnapshot) (int64, error)
	FindShippingSnapshotBySessionSN(ctx context.Context, sessionSN string) (domain.ShippingSnapshot, error)
}

func NewRepository(d dao.OrderDAO) OrderRepository {
	return &orderRepository{dao: d}
}

type orderRepository struct {
	dao dao.OrderDAO
}

func (r *orderRepository) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, bool, error) {
	entity, created, err := r.dao.CreateOrder(ctx, r.toOrderEntity(order), r.toOrderItemEntities(order.Items))
	if err != nil {
		return domain.Order{}, false, err
	}
	res := r.toOrderDomain(entity)
	if !created {
		// 幂等命中时订单项来自赢家创建的行
		items, err := r.dao.FindOrderItems(ctx, entity.Id)
		if err != nil {
			return domain.Order{}, false, err
		}
		res.Items = r.toOrderItemDomains(items)
		return res, false, nil
	}
	res.Items = order.Items
	return res, true, nil
}

func (r *orderRepository) FindOrderBySessionSN(ctx context.Context, sessionSN string) (domain.Order, error) {
	entity, err := r.dao.FindOrderBySessionSN(ctx, sessionSN)
	if err != nil {
		return domain.Order{}, err
	}
	return r.findOrderWithItems(ctx, entity)
}

func (r *orderRepository) FindOrderByID(ctx context.Context, id int64) (domain.Order, error) {
	entity, err := r.dao.FindOrderByID(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	return r.findOrderWithItems(ctx, entity)
}

func (r *orderRepository) FindOrderBySNAndBuyerID(ctx context.Context, sn string, buyerID int64) (domain.Order, error) {
	entity, err := r.dao.FindOrderBySNAndBuyerID(ctx, sn, buyerID)
	if err != nil {
		return domain.Order{}, err
	}
	return r.findOrderWithItems(ctx, entity)
}

func (r *orderRepository) findOrderWithItems(ctx context.Context, entity dao.Order) (domain.Order, error) {
	items, err := r.dao.FindOrderItems(ctx, entity.Id)
	if err != nil {
		return domain.Order{}, err
	}
	res := r.toOrderDomain(entity)
	res.Items = r.toOrderItemDomains(items)
	return res, nil
}

func (r *orderRepository) ListOrdersByUID(ctx context.Context, offset, limit int, uid int64) ([]domain.Order, error) {
	os, err := r.dao.ListOrdersByUID(ctx, offset, limit, uid)
	if err != nil {
		return nil, err
	}
	return slice.Map(os, func(idx int, src dao.Order) domain.Order {
		return r.toOrderDomain(src)
	}), nil
}

func (r *orderRepository) TotalOrders(ctx context.Context, uid int64) (int64, error) {
	return r.dao.TotalOrders(ctx, uid)
}

func (r *orderRepository) ListActiveOrders(ctx context.Context, offset, limit int) ([]domain.Order, error) {
	os, err := r.dao.ListActiveOrders(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(os, func(idx int, src dao.Order) domain.Order {
		return r.toOrderDomain(src)
	}), nil
}

func (r *orderRepository) TotalActiveOrders(ctx context.Context) (int64, error) {
	return r.dao.TotalActiveOrders(ctx)
}

func (r *orderRepository) UpdateOrderReconciled(ctx context.Context, order domain.Order) error {
	return r.dao.UpdateOrderReconciled(ctx, r.toOrderEntity(order))
}

func (r *orderRepository) DeleteOrder(ctx context.Context, oid int64) error {
	return r.dao.DeleteOrder(ctx, oid)
}

func (r *orderRepository) CancelOrderAndRestoreStock(ctx context.Context, oid int64, reason domain.CancelReason, message string) error {
	return r.dao.CancelOrderAndRestoreStock(ctx, oid, reason.ToUint8(), message)
}

func (r *orderRepository) CancelOrderReconciled(ctx context.Context, order domain.Order) error {
	return r.dao.CancelOrderReconciled(ctx, r.toOrderEntity(order))
}

func (r *orderRepository) CreateShippingSnapshot(ctx context.Context, snapshot domain.ShippingSnapshot) (int64, error) {
	return r.dao.CreateOrderShipping(ctx, dao.OrderShipping{
		SessionSN:     snapshot.SessionSN,
		BuyerId:       snapshot.BuyerID,
		SchemaVersion: snapshot.SchemaVersion,
		Options:       sqlx.JsonColumn[[]domain.ShippingOption]{Val: snapshot.Options, Valid: true},
		Products:      sqlx.JsonColumn[[]domain.ShippingProduct]{Val: snapshot.Products, Valid: true},
		Address:       sqlx.JsonColumn[domain.ShippingAddress]{Val: snapshot.Address, Valid: true},
	})
}

func (r *orderRepository) FindShippingSnapshotBySessionSN(ctx context.Context, sessionSN string) (domain.ShippingSnapshot, error) {
	entity, err := r.dao.FindOrderShippingBySessionSN(ctx, sessionSN)
	if err != nil {
		return domain.ShippingSnapshot{}, err
	}
	return domain.ShippingSnapshot{
		ID:            entity.Id,
		SessionSN:     entity.SessionSN,
		BuyerID:       entity.BuyerId,
		SchemaVersion: entity.SchemaVersion,
		Options:       entity.Options.Val,
		Products:      entity.Products.Val,
		Address:       entity.Address.Val,
		Ctime:         entity.Ctime,
	}, nil
}

func (r *orderRepository) toOrderEntity(o domain.Order) dao.Order {
	return dao.Order{
		Id:                  o.ID,
		SN:                  o.SN,
		BuyerId:             o.BuyerID,
		SessionSN:           o.SessionSN,
		Status:              o.Status.ToUint8(),
		CancelReason:        o.CancelReason.ToUint8(),
		CancelMessage:       o.CancelMessage,
		PaymentId:           o.PaymentID,
		PaymentStatus:       o.PaymentStatus,
		SessionStatus:       o.SessionStatus,
		TicketId:            o.TicketID,
		TicketStatus:        o.TicketStatus,
		TicketUtime:         o.TicketUtime,
		Tracking:            o.Tracking,
		TicketPrice:         o.TicketPrice,
		PrintURL:            o.PrintURL,
		NeedsRefund:         o.NeedsRefund,
		RefundSN:            o.RefundSN,
		RefundStatus:        o.RefundStatus,
		TotalPrice:          o.TotalPrice,
		ShippingPrice:       o.ShippingPrice,
		ShippingServiceId:   o.ShippingServiceID,
		ShippingServiceName: o.ShippingServiceName,
		ShippingDaysMin:     o.ShippingDaysMin,
		ShippingDaysMax:     o.ShippingDaysMax,
		Version:             o.Version,
	}
}

func (r *orderRepository) toOrderItemEntities(items []domain.OrderItem) []dao.OrderItem {
	return slice.Map(items, func(idx int, src domain.OrderItem) dao.OrderItem {
		return dao.OrderItem{
			BookId:   src.BookID,
			Title:    src.Title,
			Quantity: src.Quantity,
			Price:    src.Price,
		}
	})
}

func (r *orderRepository) toOrderDomain(o dao.Order) domain.Order {
	return domain.Order{
		ID:                  o.Id,
		SN:                  o.SN,
		BuyerID:             o.BuyerId,
		SessionSN:           o.SessionSN,
		Status:              domain.OrderStatus(o.Status),
		CancelReason:        domain.CancelReason(o.CancelReason),
		CancelMessage:       o.CancelMessage,
		PaymentID:           o.PaymentId,
		PaymentStatus:       o.PaymentStatus,
		SessionStatus:       o.SessionStatus,
		TicketID:            o.TicketId,
		TicketStatus:        o.TicketStatus,
		TicketUtime:         o.TicketUtime,
		Tracking:            o.Tracking,
		TicketPrice:         o.TicketPrice,
		PrintURL:            o.PrintURL,
		NeedsRefund:         o.NeedsRefund,
		RefundSN:            o.RefundSN,
		RefundStatus:        o.RefundStatus,
		TotalPrice:          o.TotalPrice,
		ShippingPrice:       o.ShippingPrice,
		ShippingServiceID:   o.ShippingServiceId,
		ShippingServiceName: o.ShippingServiceName,
		ShippingDaysMin:     o.ShippingDaysMin,
		ShippingDaysMax:     o.ShippingDaysMax,
		Version:             o.Version,
		Ctime:               o.Ctime,
		Utime:               o.Utime,
	}
}

func (r *orderRepository) toOrderItemDomains(items []dao.OrderItem) []domain.OrderItem {
	return slice.Map(items, func(idx int, src dao.OrderItem) domain.OrderItem {
		return domain.OrderItem{
			OrderID:  src.OrderId,
			BookID:   src.BookId,
			Title:    src.Title,
			Quantity: src.Quantity,
			Price:    src.Price,
		}
	})
}
