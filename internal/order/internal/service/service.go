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

	"github.com/ecodeclub/bookstore/internal/order/internal/domain"
	"github.com/ecodeclub/bookstore/internal/order/internal/repository"
	"golang.org/x/sync/errgroup"
)

type Service interface {
	// CreateOrder 以结账会话序列号为幂等键创建订单
	// 第二个返回值表示订单是否由本次调用创建
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, bool, error)
	FindOrderBySessionSN(ctx context.Context, sessionSN string) (domain.Order, error)
	FindOrderByID(ctx context.Context, id int64) (domain.Order, error)
	// FindUserVisibleOrder 用户只能查到属于自己的订单
	FindUserVisibleOrder(ctx context.Context, sn string, buyerID int64) (domain.Order, error)
	ListOrders(ctx context.Context, offset, limit int, uid int64) ([]domain.Order, int64, error)
	// ListActiveOrders 分页列出所有待对账订单, 供轮询器使用
	// 包括非终态订单, 以及退款尚未完结的终态订单
	ListActiveOrders(ctx context.Context, offset, limit int) ([]domain.Order, int64, error)
	// UpdateOrderReconciled 版本号守护地回写一次对账的全部结果
	UpdateOrderReconciled(ctx context.Context, order domain.Order) error
	// DeleteOrder 订单对应的会话不再处于已完成状态时的唯一删除路径
	DeleteOrder(ctx context.Context, oid int64) error
	// CancelOrderAndRestoreStock 取消订单并恢复库存, 单一事务
	// 订单已处于终态时拒绝, 避免库存被重复归还
	CancelOrderAndRestoreStock(ctx context.Context, oid int64, reason domain.CancelReason, message string) error
	// CancelOrderReconciled 对账推断出取消时的回写路径, 版本号守护并恢复库存
	CancelOrderReconciled(ctx context.Context, order domain.Order) error
	CreateShippingSnapshot(ctx context.Context, snapshot domain.ShippingSnapshot) (int64, error)
	FindShippingSnapshotBySessionSN(ctx context.Context, sessionSN string) (domain.ShippingSnapshot, error)
}

func NewService(repo repository.OrderRepository) Service {
	return &service{repo: repo}
}

type service struct {
	repo repository.OrderRepository
}

func (s *service) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, bool, error) {
	return s.repo.CreateOrder(ctx, order)
}

func (s *service) FindOrderBySessionSN(ctx context.Context, sessionSN string) (domain.Order, error) {
	return s.repo.FindOrderBySessionSN(ctx, sessionSN)
}

func (s *service) FindOrderByID(ctx context.Context, id int64) (domain.Order, error) {
	return s.repo.FindOrderByID(ctx, id)
}

func (s *service) FindUserVisibleOrder(ctx context.Context, sn string, buyerID int64) (domain.Order, error) {
	return s.repo.FindOrderBySNAndBuyerID(ctx, sn, buyerID)
}

func (s *service) ListOrders(ctx context.Context, offset, limit int, uid int64) ([]domain.Order, int64, error) {
	var (
		eg    errgroup.Group
		os    []domain.Order
		total int64
	)
	eg.Go(func() error {
		var err error
		os, err = s.repo.ListOrdersByUID(ctx, offset, limit, uid)
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = s.repo.TotalOrders(ctx, uid)
		return err
	})
	return os, total, eg.Wait()
}

func (s *service) ListActiveOrders(ctx context.Context, offset, limit int) ([]domain.Order, int64, error) {
	var (
		eg    errgroup.Group
		os    []domain.Order
		total int64
	)
	eg.Go(func() error {
		var err error
		os, err = s.repo.ListActiveOrders(ctx, offset, limit)
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = s.repo.TotalActiveOrders(ctx)
		return err
	})
	return os, total, eg.Wait()
}

func (s *service) UpdateOrderReconciled(ctx context.Context, order domain.Order) error {
	return s.repo.UpdateOrderReconciled(ctx, order)
}

func (s *service) DeleteOrder(ctx context.Context, oid int64) error {
	return s.repo.DeleteOrder(ctx, oid)
}

func (s *service) CancelOrderAndRestoreStock(ctx context.Context, oid int64, reason domain.CancelReason, message string) error {
	return s.repo.CancelOrderAndRestoreStock(ctx, oid, reason, message)
}

func (s *service) CancelOrderReconciled(ctx context.Context, order domain.Order) error {
	return s.repo.CancelOrderReconciled(ctx, order)
}

func (s *service) CreateShippingSnapshot(ctx context.Context, snapshot domain.ShippingSnapshot) (int64, error) {
	return s.repo.CreateShippingSnapshot(ctx, snapshot)
}

func (s *service) FindShippingSnapshotBySessionSN(ctx context.Context, sessionSN string) (domain.ShippingSnapshot, error) {
	return s.repo.FindShippingSnapshotBySessionSN(ctx, sessionSN)
}
