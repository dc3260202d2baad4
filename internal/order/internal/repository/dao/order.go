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

package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/bookstore/internal/order/internal/domain"
	"github.com/ecodeclub/ekit/sqlx"
	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

var (
	// ErrRecordChangedConcurrently 版本号校验失败, 说明另一条并发路径已经更新过该订单
	ErrRecordChangedConcurrently = errors.New("订单已被并发修改")
	// ErrOrderAlreadyTerminal 订单已送达或已取消, 不允许再次取消
	ErrOrderAlreadyTerminal = errors.New("订单已处于终态")
	ErrRecordNotFound       = egorm.ErrRecordNotFound
)

type OrderDAO interface {
	// CreateOrder 以 session_sn 为幂等键创建订单及订单项
	// 并发竞争时输家拿到赢家已创建的行, created 为 false
	CreateOrder(ctx context.Context, o Order, items []OrderItem) (order Order, created bool, err error)
	FindOrderBySessionSN(ctx context.Context, sessionSN string) (Order, error)
	FindOrderByID(ctx context.Context, id int64) (Order, error)
	FindOrderBySNAndBuyerID(ctx context.Context, sn string, buyerID int64) (Order, error)
	FindOrderItems(ctx context.Context, oid int64) ([]OrderItem, error)
	ListOrdersByUID(ctx context.Context, offset, limit int, uid int64) ([]Order, error)
	TotalOrders(ctx context.Context, uid int64) (int64, error)
	ListActiveOrders(ctx context.Context, offset, limit int) ([]Order, error)
	TotalActiveOrders(ctx context.Context) (int64, error)
	// UpdateOrderReconciled 版本号守护的镜像字段回写
	UpdateOrderReconciled(ctx context.Context, o Order) error
	// DeleteOrder 删除订单及其订单项
	DeleteOrder(ctx context.Context, oid int64) error
	// CancelOrderAndRestoreStock 取消订单并把订单项数量如数还回图书库存, 同一事务
	// 订单已处于终态时返回 ErrOrderAlreadyTerminal, 库存不会被重复归还
	CancelOrderAndRestoreStock(ctx context.Context, oid int64, reason uint8, message string) error
	// CancelOrderReconciled 版本号守护的取消回写, 镜像字段与库存归还在同一事务内完成
	CancelOrderReconciled(ctx context.Context, o Order) error

	CreateOrderShipping(ctx context.Context, s OrderShipping) (int64, error)
	FindOrderShippingBySessionSN(ctx context.Context, sessionSN string) (OrderShipping, error)
}

type orderDAO struct {
	db *egorm.Component
}

func NewOrderGORMDAO(db *egorm.Component) OrderDAO {
	return &orderDAO{db: db}
}

func (g *orderDAO) CreateOrder(ctx context.Context, o Order, items []OrderItem) (Order, bool, error) {
	var created bool
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UnixMilli()
		o.Ctime, o.Utime = now, now
		res := tx.Where(Order{SessionSN: o.SessionSN}).Attrs(o).FirstOrCreate(&o)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// 幂等命中, 另一条路径已经为该会话创建过订单
			return nil
		}
		created = true
		for i := range items {
			items[i].OrderId = o.Id
			items[i].Ctime, items[i].Utime = now, now
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("创建订单项失败: %w", err)
		}
		return nil
	})
	return o, created, err
}

func (g *orderDAO) FindOrderBySessionSN(ctx context.Context, sessionSN string) (Order, error) {
	var res Order
	err := g.db.WithContext(ctx).First(&res, "session_sn = ?", sessionSN).Error
	return res, err
}

func (g *orderDAO) FindOrderByID(ctx context.Context, id int64) (Order, error) {
	var res Order
	err := g.db.WithContext(ctx).First(&res, "id = ?", id).Error
	return res, err
}

func (g *orderDAO) FindOrderBySNAndBuyerID(ctx context.Context, sn string, buyerID int64) (Order, error) {
	var res Order
	err := g.db.WithContext(ctx).First(&res, "sn = ? AND buyer_id = ?", sn, buyerID).Error
	return res, err
}

func (g *orderDAO) FindOrderItems(ctx context.Context, oid int64) ([]OrderItem, error) {
	var res []OrderItem
	err := g.db.WithContext(ctx).Where("order_id = ?", oid).Find(&res).Error
	return res, err
}

func (g *orderDAO) ListOrdersByUID(ctx context.Context, offset, limit int, uid int64) ([]Order, error) {
	var res []Order
	err := g.db.WithContext(ctx).Where("buyer_id = ?", uid).
		Order("ctime DESC").Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

func (g *orderDAO) TotalOrders(ctx context.Context, uid int64) (int64, error) {
	var res int64
	err := g.db.WithContext(ctx).Model(&Order{}).Where("buyer_id = ?", uid).Count(&res).Error
	return res, err
}

func (g *orderDAO) ListActiveOrders(ctx context.Context, offset, limit int) ([]Order, error) {
	var res []Order
	err := g.db.WithContext(ctx).
		Scopes(activeOrders).
		Order("id ASC").Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

func (g *orderDAO) TotalActiveOrders(ctx context.Context) (int64, error) {
	var res int64
	err := g.db.WithContext(ctx).Model(&Order{}).
		Scopes(activeOrders).
		Count(&res).Error
	return res, err
}

// activeOrders 非终态订单, 以及退款尚未走完的终态订单
func activeOrders(db *gorm.DB) *gorm.DB {
	return db.Where("status NOT IN ? OR (needs_refund = ? AND refund_status <> ?)",
		[]uint8{domain.StatusDelivered.ToUint8(), domain.StatusCanceled.ToUint8()},
		true, "succeeded")
}

func (g *orderDAO) UpdateOrderReconciled(ctx context.Context, o Order) error {
	version := o.Version
	res := g.db.WithContext(ctx).Model(&Order{}).
		Where("id = ? AND version = ?", o.Id, version).
		Updates(map[string]any{
			"status":         o.Status,
			"cancel_reason":  o.CancelReason,
			"cancel_message": o.CancelMessage,
			"payment_id":     o.PaymentId,
			"payment_status": o.PaymentStatus,
			"session_status": o.SessionStatus,
			"ticket_status":  o.TicketStatus,
			"ticket_utime":   o.TicketUtime,
			"tracking":       o.Tracking,
			"ticket_price":   o.TicketPrice,
			"print_url":      o.PrintURL,
			"needs_refund":   o.NeedsRefund,
			"refund_sn":      o.RefundSN,
			"refund_status":  o.RefundStatus,
			"version":        version + 1,
			"utime":          time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return fmt.Errorf("更新订单失败: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id=%d", ErrRecordChangedConcurrently, o.Id)
	}
	return nil
}

func (g *orderDAO) DeleteOrder(ctx context.Context, oid int64) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&Order{}, "id = ?", oid).Error; err != nil {
			return err
		}
		return tx.Delete(&OrderItem{}, "order_id = ?", oid).Error
	})
}

func (g *orderDAO) CancelOrderAndRestoreStock(ctx context.Context, oid int64, reason uint8, message string) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 先做受终态守护的状态翻转, 翻转失败就不碰库存, 重复取消不会把库存加两次
		res := tx.Model(&Order{}).
			Where("id = ? AND status NOT IN ?", oid,
				[]uint8{domain.StatusDelivered.ToUint8(), domain.StatusCanceled.ToUint8()}).
			Updates(map[string]any{
				"status":         domain.StatusCanceled.ToUint8(),
				"cancel_reason":  reason,
				"cancel_message": message,
				"version":        gorm.Expr("version + 1"),
				"utime":          time.Now().UnixMilli(),
			})
		if res.Error != nil {
			return fmt.Errorf("取消订单失败: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			var total int64
			if err := tx.Model(&Order{}).Where("id = ?", oid).Count(&total).Error; err != nil {
				return fmt.Errorf("取消订单失败: %w", err)
			}
			if total == 0 {
				return fmt.Errorf("取消订单失败: %w", ErrRecordNotFound)
			}
			return fmt.Errorf("取消订单失败: %w: id=%d", ErrOrderAlreadyTerminal, oid)
		}
		return restoreStock(tx, oid)
	})
}

func (g *orderDAO) CancelOrderReconciled(ctx context.Context, o Order) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		version := o.Version
		res := tx.Model(&Order{}).
			Where("id = ? AND version = ?", o.Id, version).
			Updates(map[string]any{
				"status":         domain.StatusCanceled.ToUint8(),
				"cancel_reason":  o.CancelReason,
				"cancel_message": o.CancelMessage,
				"payment_id":     o.PaymentId,
				"payment_status": o.PaymentStatus,
				"session_status": o.SessionStatus,
				"ticket_status":  o.TicketStatus,
				"ticket_utime":   o.TicketUtime,
				"tracking":       o.Tracking,
				"ticket_price":   o.TicketPrice,
				"print_url":      o.PrintURL,
				"needs_refund":   o.NeedsRefund,
				"refund_sn":      o.RefundSN,
				"refund_status":  o.RefundStatus,
				"version":        version + 1,
				"utime":          time.Now().UnixMilli(),
			})
		if res.Error != nil {
			return fmt.Errorf("取消订单失败: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: id=%d", ErrRecordChangedConcurrently, o.Id)
		}
		return restoreStock(tx, o.Id)
	})
}

// restoreStock 在取消订单的事务内把订单项数量如数还回图书库存
func restoreStock(tx *gorm.DB, oid int64) error {
	var items []OrderItem
	if err := tx.Where("order_id = ?", oid).Find(&items).Error; err != nil {
		return fmt.Errorf("查询订单项失败: %w", err)
	}
	for _, item := range items {
		// 库存表归产品模块所有, 这里按表名回写, 数量如数归还
		res := tx.Table("books").Where("id = ?", item.BookId).
			Updates(map[string]any{
				"stock": gorm.Expr("stock + ?", item.Quantity),
				"utime": time.Now().UnixMilli(),
			})
		if res.Error != nil {
			return fmt.Errorf("恢复图书库存失败: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("恢复图书库存失败: 图书不存在 id=%d", item.BookId)
		}
	}
	return nil
}

func (g *orderDAO) CreateOrderShipping(ctx context.Context, s OrderShipping) (int64, error) {
	now := time.Now().UnixMilli()
	s.Ctime, s.Utime = now, now
	err := g.db.WithContext(ctx).Create(&s).Error
	return s.Id, err
}

func (g *orderDAO) FindOrderShippingBySessionSN(ctx context.Context, sessionSN string) (OrderShipping, error) {
	var res OrderShipping
	err := g.db.WithContext(ctx).First(&res, "session_sn = ?", sessionSN).Error
	return res, err
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Order{}, &OrderItem{}, &OrderShipping{})
}

type Order struct {
	Id            int64  `gorm:"primaryKey;autoIncrement;comment:订单自增ID"`
	SN            string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_order_sn;comment:订单序列号"`
	BuyerId       int64  `gorm:"not null;index:idx_buyer_id;comment:购买者ID"`
	SessionSN     string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_session_sn;comment:结账会话序列号,幂等键"`
	Status        uint8  `gorm:"type:tinyint unsigned;not null;default:1;comment:订单状态 1=备货中 2=运输中 3=已送达 4=已取消"`
	CancelReason  uint8  `gorm:"type:tinyint unsigned;not null;default:0;comment:取消原因 0=无 1=管理员 2=承运商"`
	CancelMessage string `gorm:"type:varchar(512);not null;default:'';comment:取消说明"`

	PaymentId     string `gorm:"type:varchar(255);not null;default:'';comment:网关支付事务ID"`
	PaymentStatus string `gorm:"type:varchar(64);not null;default:'';comment:网关支付状态原文"`
	SessionStatus string `gorm:"type:varchar(64);not null;default:'';comment:结账会话状态原文"`

	TicketId     string `gorm:"type:varchar(255);not null;default:'';index:idx_ticket_id;comment:承运商运单ID"`
	TicketStatus string `gorm:"type:varchar(64);not null;default:'';comment:承运商运单状态原文"`
	TicketUtime  int64  `gorm:"not null;default:0;comment:运单状态更新时间"`
	Tracking     string `gorm:"type:varchar(255);not null;default:'';comment:物流追踪号"`
	TicketPrice  int64  `gorm:"not null;default:0;comment:运单实际价格;单位为分"`
	PrintURL     string `gorm:"type:varchar(512);not null;default:'';comment:面单打印URL"`

	NeedsRefund  bool   `gorm:"not null;default:false;comment:是否需要退款"`
	RefundSN     string `gorm:"type:varchar(255);not null;default:'';comment:退款序列号"`
	RefundStatus string `gorm:"type:varchar(64);not null;default:'';comment:退款状态原文"`

	TotalPrice          int64  `gorm:"not null;comment:订单总价;单位为分, 999表示9.99元"`
	ShippingPrice       int64  `gorm:"not null;comment:报价时的运费;单位为分"`
	ShippingServiceId   int64  `gorm:"not null;comment:选定的承运服务ID"`
	ShippingServiceName string `gorm:"type:varchar(255);not null;default:'';comment:选定的承运服务名称"`
	ShippingDaysMin     int64  `gorm:"not null;default:0;comment:报价时效下限,天"`
	ShippingDaysMax     int64  `gorm:"not null;default:0;comment:报价时效上限,天"`

	Version int64 `gorm:"not null;default:1;comment:版本号"`
	Ctime   int64
	Utime   int64
}

type OrderItem struct {
	Id       int64  `gorm:"primaryKey;autoIncrement;comment:订单项自增ID"`
	OrderId  int64  `gorm:"not null;index:idx_order_id;comment:订单自增ID"`
	BookId   int64  `gorm:"not null;index:idx_book_id;comment:图书自增ID"`
	Title    string `gorm:"type:varchar(255);not null;comment:图书标题快照"`
	Quantity int64  `gorm:"not null;comment:购买数量"`
	Price    int64  `gorm:"not null;comment:购买时单价;单位为分, 999表示9.99元"`
	Ctime    int64
	Utime    int64
}

// OrderShipping 结账时的报价快照, 只写一次不再修改
type OrderShipping struct {
	Id            int64                                     `gorm:"primaryKey;autoIncrement;comment:快照自增ID"`
	SessionSN     string                                    `gorm:"type:varchar(255);not null;uniqueIndex:uniq_shipping_session_sn;comment:结账会话序列号"`
	BuyerId       int64                                     `gorm:"not null;index:idx_shipping_buyer_id;comment:购买者ID"`
	SchemaVersion int64                                     `gorm:"not null;default:1;comment:快照结构版本号"`
	Options       sqlx.JsonColumn[[]domain.ShippingOption]  `gorm:"type:text;not null;comment:报价选项,JSON格式"`
	Products      sqlx.JsonColumn[[]domain.ShippingProduct] `gorm:"type:text;not null;comment:在售商品快照,JSON格式"`
	Address       sqlx.JsonColumn[domain.ShippingAddress]   `gorm:"type:varchar(1024);not null;comment:收货地址快照,JSON格式"`
	Ctime         int64
	Utime         int64
}
