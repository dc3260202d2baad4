//go:build wireinject

package ioc

import (
	"github.com/ecodeclub/bookstore/internal/checkout"
	"github.com/ecodeclub/bookstore/internal/order"
	"github.com/ecodeclub/bookstore/internal/payment"
	"github.com/ecodeclub/bookstore/internal/product"
	"github.com/ecodeclub/bookstore/internal/recon"
	"github.com/ecodeclub/bookstore/internal/shipping"
	"github.com/ecodeclub/bookstore/internal/user"
	"github.com/google/wire"
)

var BaseSet = wire.NewSet(InitDB, InitRedis, InitCache, InitMQ)

func InitApp() (*App, error) {
	wire.Build(wire.Struct(new(App), "*"),
		BaseSet,
		user.InitModule,
		product.InitModule,
		shipping.InitModule,
		payment.InitModule,
		order.InitModule,
		checkout.InitModule,
		recon.InitModule,
		wire.FieldsOf(new(*checkout.Module), "Hdl", "C"),
		wire.FieldsOf(new(*order.Module), "Hdl"),
		wire.FieldsOf(new(*payment.Module), "Hdl"),
		wire.FieldsOf(new(*recon.Module), "AdminHdl", "Job"),
		InitSession,
		initGinxServer,
		InitAdminServer,
		initMQConsumers,
		initCronJobs,
	)
	return new(App), nil
}
