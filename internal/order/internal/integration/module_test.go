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

//go:build e2e

package integration

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/ecodeclub/bookstore/internal/order"
	"github.com/ecodeclub/bookstore/internal/order/internal/domain"
	"github.com/ecodeclub/bookstore/internal/order/internal/errs"
	"github.com/ecodeclub/bookstore/internal/order/internal/repository/dao"
	"github.com/ecodeclub/bookstore/internal/order/internal/web"
	"github.com/ecodeclub/bookstore/internal/product"
	"github.com/ecodeclub/bookstore/internal/test"
	testioc "github.com/ecodeclub/bookstore/internal/test/ioc"
	"github.com/ecodeclub/ekit/iox"
	"github.com/ecodeclub/ginx/session"
	"github.com/ego-component/egorm"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/server/egin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	testUID = int64(234)
)

func TestOrderModule(t *testing.T) {
	suite.Run(t, new(OrderModuleTestSuite))
}

type OrderModuleTestSuite struct {
	suite.Suite
	server *egin.Component
	db     *egorm.Component
	dao    dao.OrderDAO
	svc    order.Service
}

func (s *OrderModuleTestSuite) SetupSuite() {
	s.db = testioc.InitDB()
	err := dao.InitTables(s.db)
	require.NoError(s.T(), err)
	// 取消订单要回补 books 表的库存
	_ = product.InitTablesOnce(s.db)
	s.dao = dao.NewOrderGORMDAO(s.db)
	s.svc = order.InitService(s.db)

	econf.Set("server", map[string]any{"contextTimeout": "1s"})
	server := egin.Load("server").Build()
	server.Use(func(ctx *gin.Context) {
		ctx.Set("_session", session.NewMemorySession(session.Claims{
			Uid: testUID,
		}))
	})
	web.NewHandler(s.svc).PrivateRoutes(server.Engine)
	s.server = server
}

func (s *OrderModuleTestSuite) TearDownSuite() {
	for _, table := range []string{"orders", "order_items", "order_shippings", "books"} {
		err := s.db.Exec(fmt.Sprintf("DROP TABLE `%s`", table)).Error
		require.NoError(s.T(), err)
	}
}

func (s *OrderModuleTestSuite) TearDownTest() {
	for _, table := range []string{"orders", "order_items", "order_shippings", "books"} {
		err := s.db.Exec(fmt.Sprintf("TRUNCATE TABLE `%s`", table)).Error
		require.NoError(s.T(), err)
	}
}

func (s *OrderModuleTestSuite) newOrder(sn, sessionSN string) domain.Order {
	return domain.Order{
		SN:                  sn,
		BuyerID:             testUID,
		SessionSN:           sessionSN,
		Status:              domain.StatusPreparing,
		PaymentID:           "txn-" + sn,
		PaymentStatus:       "SUCCESS",
		SessionStatus:       "Complete",
		TicketID:            "ticket-" + sn,
		TicketStatus:        "active",
		TotalPrice:          13000,
		ShippingPrice:       1200,
		ShippingServiceID:   11,
		ShippingServiceName: "标准快递",
		ShippingDaysMin:     2,
		ShippingDaysMax:     5,
		Items: []domain.OrderItem{
			{BookID: 100, Title: "Go语言实战", Quantity: 2, Price: 5900},
		},
	}
}

func (s *OrderModuleTestSuite) seedBook(t *testing.T, id, stock int64) {
	t.Helper()
	now := time.Now().UnixMilli()
	err := s.db.Exec("INSERT INTO `books` (`id`, `sn`, `title`, `author_name`, `price`, `stock`, `weight_grams`, `width_cm`, `height_cm`, `length_cm`, `ctime`, `utime`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		id, fmt.Sprintf("book-sn-%d", id), "Go语言实战", "作者", 5900, stock, 500, 15, 2, 23, now, now).Error
	require.NoError(t, err)
}

func (s *OrderModuleTestSuite) TestService_CreateOrderIdempotent() {
	t := s.T()

	first, created, err := s.svc.CreateOrder(context.Background(), s.newOrder("order-sn-1", "session-sn-1"))
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, first.ID)
	require.Len(t, first.Items, 1)

	// 同一会话再次创建, 即便订单序列号和订单项不同也要返回赢家的数据
	second := s.newOrder("order-sn-other", "session-sn-1")
	second.Items = []domain.OrderItem{
		{BookID: 200, Title: "数据密集型应用系统设计", Quantity: 1, Price: 9900},
	}
	got, created, err := s.svc.CreateOrder(context.Background(), second)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "order-sn-1", got.SN)
	require.Len(t, got.Items, 1)
	assert.Equal(t, int64(100), got.Items[0].BookID)
	assert.Equal(t, int64(2), got.Items[0].Quantity)
}

func (s *OrderModuleTestSuite) TestService_UpdateOrderReconciled() {
	t := s.T()

	created, _, err := s.svc.CreateOrder(context.Background(), s.newOrder("order-sn-2", "session-sn-2"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.Version)

	created.Status = domain.StatusInTransit
	created.TicketStatus = "released"
	created.Tracking = "TRK123"
	created.TicketPrice = 990
	created.PrintURL = "https://carrier.example.com/print/1"
	err = s.svc.UpdateOrderReconciled(context.Background(), created)
	require.NoError(t, err)

	after, err := s.svc.FindOrderByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInTransit, after.Status)
	assert.Equal(t, "TRK123", after.Tracking)
	assert.Equal(t, int64(990), after.TicketPrice)
	assert.Equal(t, int64(2), after.Version)

	// 仍然拿着旧版本号回写, 说明期间有人动过这一行
	err = s.svc.UpdateOrderReconciled(context.Background(), created)
	assert.ErrorIs(t, err, dao.ErrRecordChangedConcurrently)
}

func (s *OrderModuleTestSuite) TestService_CancelOrderAndRestoreStock() {
	t := s.T()
	s.seedBook(t, 100, 5)

	created, _, err := s.svc.CreateOrder(context.Background(), s.newOrder("order-sn-3", "session-sn-3"))
	require.NoError(t, err)

	err = s.svc.CancelOrderAndRestoreStock(context.Background(), created.ID, domain.CancelReasonAdmin, "管理员取消")
	require.NoError(t, err)

	after, err := s.svc.FindOrderByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCanceled, after.Status)
	assert.Equal(t, domain.CancelReasonAdmin, after.CancelReason)
	assert.Equal(t, "管理员取消", after.CancelMessage)

	var stock int64
	err = s.db.Raw("SELECT `stock` FROM `books` WHERE `id` = ?", int64(100)).Scan(&stock).Error
	require.NoError(t, err)
	assert.Equal(t, int64(7), stock)

	// 重复取消被终态守护拦下, 库存不会被归还第二次
	err = s.svc.CancelOrderAndRestoreStock(context.Background(), created.ID, domain.CancelReasonAdmin, "管理员取消")
	assert.ErrorIs(t, err, dao.ErrOrderAlreadyTerminal)
	err = s.db.Raw("SELECT `stock` FROM `books` WHERE `id` = ?", int64(100)).Scan(&stock).Error
	require.NoError(t, err)
	assert.Equal(t, int64(7), stock)
}

func (s *OrderModuleTestSuite) TestService_CancelOrderReconciled() {
	t := s.T()
	s.seedBook(t, 100, 5)

	created, _, err := s.svc.CreateOrder(context.Background(), s.newOrder("order-sn-9", "session-sn-9"))
	require.NoError(t, err)

	canceled := created
	canceled.Status = domain.StatusCanceled
	canceled.CancelReason = domain.CancelReasonCarrier
	canceled.CancelMessage = "承运商运单状态: canceled"
	canceled.TicketStatus = "canceled"
	canceled.NeedsRefund = true
	canceled.RefundSN = "Rsession-sn-9"
	canceled.RefundStatus = "pending"
	err = s.svc.CancelOrderReconciled(context.Background(), canceled)
	require.NoError(t, err)

	after, err := s.svc.FindOrderByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCanceled, after.Status)
	assert.Equal(t, domain.CancelReasonCarrier, after.CancelReason)
	assert.True(t, after.NeedsRefund)
	assert.Equal(t, "pending", after.RefundStatus)
	assert.Equal(t, int64(2), after.Version)

	var stock int64
	err = s.db.Raw("SELECT `stock` FROM `books` WHERE `id` = ?", int64(100)).Scan(&stock).Error
	require.NoError(t, err)
	assert.Equal(t, int64(7), stock)

	// 旧版本号重放被版本守护拦下, 库存保持不变
	err = s.svc.CancelOrderReconciled(context.Background(), canceled)
	assert.ErrorIs(t, err, dao.ErrRecordChangedConcurrently)
	err = s.db.Raw("SELECT `stock` FROM `books` WHERE `id` = ?", int64(100)).Scan(&stock).Error
	require.NoError(t, err)
	assert.Equal(t, int64(7), stock)
}

func (s *OrderModuleTestSuite) TestService_CancelOrderBookMissing() {
	t := s.T()

	created, _, err := s.svc.CreateOrder(context.Background(), s.newOrder("order-sn-4", "session-sn-4"))
	require.NoError(t, err)

	// 库存行缺失时整个事务回滚, 订单保持原状
	err = s.svc.CancelOrderAndRestoreStock(context.Background(), created.ID, domain.CancelReasonAdmin, "管理员取消")
	require.Error(t, err)

	after, err := s.svc.FindOrderByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPreparing, after.Status)
}

func (s *OrderModuleTestSuite) TestService_DeleteOrder() {
	t := s.T()

	created, _, err := s.svc.CreateOrder(context.Background(), s.newOrder("order-sn-5", "session-sn-5"))
	require.NoError(t, err)

	err = s.svc.DeleteOrder(context.Background(), created.ID)
	require.NoError(t, err)

	_, err = s.svc.FindOrderBySessionSN(context.Background(), "session-sn-5")
	assert.True(t, errors.Is(err, dao.ErrRecordNotFound))

	var count int64
	err = s.db.Raw("SELECT COUNT(*) FROM `order_items` WHERE `order_id` = ?", created.ID).Scan(&count).Error
	require.NoError(t, err)
	assert.Zero(t, count)
}

func (s *OrderModuleTestSuite) TestService_ListActiveOrders() {
	t := s.T()
	s.seedBook(t, 100, 10)

	var ids []int64
	for i := 1; i <= 5; i++ {
		created, _, err := s.svc.CreateOrder(context.Background(),
			s.newOrder(fmt.Sprintf("order-sn-active-%d", i), fmt.Sprintf("session-sn-active-%d", i)))
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	// 一单送达一单取消, 都不应再被轮询到
	delivered, err := s.svc.FindOrderByID(context.Background(), ids[0])
	require.NoError(t, err)
	delivered.Status = domain.StatusDelivered
	require.NoError(t, s.svc.UpdateOrderReconciled(context.Background(), delivered))
	require.NoError(t, s.svc.CancelOrderAndRestoreStock(context.Background(), ids[1], domain.CancelReasonCarrier, "承运商取消"))

	// 终态但退款未完结的订单仍要被轮询到
	refunding, err := s.svc.FindOrderByID(context.Background(), ids[4])
	require.NoError(t, err)
	refunding.Status = domain.StatusCanceled
	refunding.NeedsRefund = true
	refunding.RefundSN = "Rsession-sn-active-5"
	refunding.RefundStatus = "pending"
	require.NoError(t, s.svc.UpdateOrderReconciled(context.Background(), refunding))

	orders, total, err := s.svc.ListActiveOrders(context.Background(), 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, orders, 3)
	assert.Equal(t, ids[2], orders[0].ID)
	assert.Equal(t, ids[3], orders[1].ID)
	assert.Equal(t, ids[4], orders[2].ID)

	// 分页按自增ID升序
	page, _, err := s.svc.ListActiveOrders(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, ids[3], page[0].ID)
}

func (s *OrderModuleTestSuite) TestService_ShippingSnapshot() {
	t := s.T()

	snapshot := domain.ShippingSnapshot{
		SessionSN:     "session-sn-snap",
		BuyerID:       testUID,
		SchemaVersion: 1,
		Options: []domain.ShippingOption{
			{ServiceID: 11, ServiceName: "标准快递", Price: 1200, DaysMin: 2, DaysMax: 5,
				Volumes: []domain.ShippingVolume{{WeightGrams: 500, WidthCm: 15, HeightCm: 2, LengthCm: 23}}},
			{ServiceID: 12, ServiceName: "次日达", Price: 2600, DaysMin: 1, DaysMax: 1},
		},
		Products: []domain.ShippingProduct{
			{BookID: 100, Title: "Go语言实战", Quantity: 2, UnitPrice: 5900, WeightGrams: 500, WidthCm: 15, HeightCm: 2, LengthCm: 23},
		},
		Address: domain.ShippingAddress{
			Name: "张三", Street: "北京路", Number: "1024", City: "上海", State: "上海", PostalCode: "200000",
		},
	}
	id, err := s.svc.CreateShippingSnapshot(context.Background(), snapshot)
	require.NoError(t, err)
	assert.NotZero(t, id)

	got, err := s.svc.FindShippingSnapshotBySessionSN(context.Background(), "session-sn-snap")
	require.NoError(t, err)
	assert.Equal(t, snapshot.Options, got.Options)
	assert.Equal(t, snapshot.Products, got.Products)
	assert.Equal(t, snapshot.Address, got.Address)

	_, err = s.svc.FindShippingSnapshotBySessionSN(context.Background(), "session-sn-missing")
	assert.True(t, errors.Is(err, dao.ErrRecordNotFound))
}

func (s *OrderModuleTestSuite) TestHandler_ListOrders() {
	t := s.T()

	for i := 1; i <= 2; i++ {
		_, _, err := s.svc.CreateOrder(context.Background(),
			s.newOrder(fmt.Sprintf("order-sn-list-%d", i), fmt.Sprintf("session-sn-list-%d", i)))
		require.NoError(t, err)
		// 列表按创建时间倒序, 拉开毫秒差
		time.Sleep(2 * time.Millisecond)
	}
	other := s.newOrder("order-sn-list-other", "session-sn-list-other")
	other.BuyerID = testUID + 1
	_, _, err := s.svc.CreateOrder(context.Background(), other)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost,
		"/order/list", iox.NewJSONReader(web.ListOrdersReq{Offset: 0, Limit: 10}))
	req.Header.Set("content-type", "application/json")
	require.NoError(t, err)
	recorder := test.NewJSONResponseRecorder[web.ListOrdersResp]()
	s.server.ServeHTTP(recorder, req)
	require.Equal(t, 200, recorder.Code)

	resp := recorder.MustScan().Data
	assert.Equal(t, int64(2), resp.Total)
	require.Len(t, resp.Orders, 2)
	assert.Equal(t, "order-sn-list-2", resp.Orders[0].SN)
	assert.Equal(t, "order-sn-list-1", resp.Orders[1].SN)
}

func (s *OrderModuleTestSuite) TestHandler_RetrieveOrderDetail() {
	t := s.T()

	_, _, err := s.svc.CreateOrder(context.Background(), s.newOrder("order-sn-detail", "session-sn-detail"))
	require.NoError(t, err)
	other := s.newOrder("order-sn-detail-other", "session-sn-detail-other")
	other.BuyerID = testUID + 1
	_, _, err = s.svc.CreateOrder(context.Background(), other)
	require.NoError(t, err)

	testCases := []struct {
		name     string
		req      web.RetrieveOrderDetailReq
		wantCode int
		after    func(t *testing.T, recorder *test.JSONResponseRecorder[web.RetrieveOrderDetailResp])
	}{
		{
			name:     "查询成功",
			req:      web.RetrieveOrderDetailReq{SN: "order-sn-detail"},
			wantCode: 200,
			after: func(t *testing.T, recorder *test.JSONResponseRecorder[web.RetrieveOrderDetailResp]) {
				got := recorder.MustScan().Data.Order
				assert.Equal(t, "order-sn-detail", got.SN)
				assert.Equal(t, domain.StatusPreparing.ToUint8(), got.Status)
				assert.Equal(t, int64(13000), got.TotalPrice)
				assert.Equal(t, int64(1200), got.ShippingPrice)
				assert.Equal(t, "标准快递", got.ShippingServiceName)
				require.Len(t, got.Items, 1)
				assert.Equal(t, web.OrderItem{
					BookID: 100, Title: "Go语言实战", Quantity: 2, Price: 5900,
				}, got.Items[0])
			},
		},
		{
			name:     "别人的订单查不到",
			req:      web.RetrieveOrderDetailReq{SN: "order-sn-detail-other"},
			wantCode: 500,
			after: func(t *testing.T, recorder *test.JSONResponseRecorder[web.RetrieveOrderDetailResp]) {
				got := recorder.MustScan()
				assert.Equal(t, errs.OrderNotFound.Code, got.Code)
				assert.Equal(t, errs.OrderNotFound.Msg, got.Msg)
			},
		},
		{
			name:     "订单不存在",
			req:      web.RetrieveOrderDetailReq{SN: "order-sn-ghost"},
			wantCode: 500,
			after: func(t *testing.T, recorder *test.JSONResponseRecorder[web.RetrieveOrderDetailResp]) {
				got := recorder.MustScan()
				assert.Equal(t, errs.OrderNotFound.Code, got.Code)
			},
		},
	}
	for _, tc := range testCases {
		s.T().Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost,
				"/order/detail", iox.NewJSONReader(tc.req))
			req.Header.Set("content-type", "application/json")
			require.NoError(t, err)
			recorder := test.NewJSONResponseRecorder[web.RetrieveOrderDetailResp]()
			s.server.ServeHTTP(recorder, req)
			require.Equal(t, tc.wantCode, recorder.Code)
			tc.after(t, recorder)
		})
	}
}
