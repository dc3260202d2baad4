package ioc

import (
	"context"

	"github.com/gotomicro/ego/server/egin"
	"github.com/gotomicro/ego/task/ecron"
)

// Consumer 后台消息消费者, Start 启动消费循环后立刻返回
type Consumer interface {
	Start(ctx context.Context)
}

type App struct {
	Web       *egin.Component
	Admin     AdminServer
	Consumers []Consumer
	Crons     []ecron.Ecron
}
