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

package ioc

import (
	"context"
	"fmt"
	"time"

	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/mq-api/kafka"
	"github.com/gotomicro/ego/core/econf"
)

func InitMQ() mq.MQ {
	type topicConfig struct {
		Name       string `yaml:"name"`
		Partitions int    `yaml:"partitions"`
	}
	type config struct {
		Network   string        `yaml:"network"`
		Addresses []string      `yaml:"addresses"`
		Topics    []topicConfig `yaml:"topics"`
	}

	var cfg config
	if err := econf.UnmarshalKey("kafka", &cfg); err != nil {
		panic(err)
	}

	q, err := kafka.NewMQ(cfg.Network, cfg.Addresses)
	if err != nil {
		panic(err)
	}

	// 支付事件和订单状态事件的Topic在启动时就建好
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	for _, topic := range cfg.Topics {
		if err := q.CreateTopic(ctx, topic.Name, topic.Partitions); err != nil {
			panic(fmt.Sprintf("创建Topic失败: Topic = %s, Partitions = %d: %v",
				topic.Name, topic.Partitions, err))
		}
	}
	return q
}
