package ioc

import (
	"github.com/ecodeclub/bookstore/internal/checkout"
)

func initMQConsumers(paymentConsumer *checkout.PaymentConsumer) []Consumer {
	return []Consumer{
		paymentConsumer,
	}
}
