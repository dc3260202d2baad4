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

//go:build wireinject

package payment

import (
	"github.com/ecodeclub/bookstore/internal/payment/internal/event"
	"github.com/ecodeclub/bookstore/internal/payment/internal/service"
	"github.com/ecodeclub/bookstore/internal/payment/internal/service/wechat"
	"github.com/ecodeclub/bookstore/internal/payment/internal/web"
	"github.com/ecodeclub/bookstore/internal/payment/ioc"
	"github.com/ecodeclub/mq-api"
	"github.com/google/wire"
	"github.com/wechatpay-apiv3/wechatpay-go/services/payments/native"
	"github.com/wechatpay-apiv3/wechatpay-go/services/refunddomestic"
)

func InitModule(q mq.MQ) (*Module, error) {
	wire.Build(
		ioc.InitWechatConfig,
		ioc.InitWechatClient,
		ioc.InitNativeApiService,
		ioc.InitRefundApiService,
		wire.Bind(new(wechat.SessionAPIService), new(*native.NativeApiService)),
		wire.Bind(new(wechat.RefundAPIService), new(*refunddomestic.RefundsApiService)),
		ioc.InitSessionPaymentService,
		ioc.InitWechatNotifyHandler,
		event.NewPaymentEventProducer,
		service.NewService,
		web.NewHandler,
		wire.Struct(new(Module), "*"),
	)
	return new(Module), nil
}
