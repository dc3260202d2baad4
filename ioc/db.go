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
	"database/sql"
	"time"

	"github.com/ecodeclub/bookstore/internal/pkg/database"
	"github.com/ecodeclub/ekit/retry"
	"github.com/ego-component/egorm"
	_ "github.com/go-sql-driver/mysql"
	"github.com/gotomicro/ego/core/econf"
)

func InitDB() *egorm.Component {
	WaitForDBSetup(econf.GetString("mysql.dsn"))
	db := egorm.Load("mysql").Build()
	if err := database.NewGormTracingPlugin().Initialize(db); err != nil {
		panic(err)
	}
	return db
}

// WaitForDBSetup 容器化部署时数据库可能比应用晚就绪, 指数退避地等它
func WaitForDBSetup(dsn string) {
	sqlDB, err := sql.Open("mysql", dsn)
	if err != nil {
		panic(err)
	}
	const (
		initialInterval = time.Second
		maxInterval     = 10 * time.Second
		maxRetries      = 10
		pingTimeout     = 5 * time.Second
	)
	strategy, err := retry.NewExponentialBackoffRetryStrategy(initialInterval, maxInterval, maxRetries)
	if err != nil {
		panic(err)
	}
	for {
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		err = sqlDB.PingContext(ctx)
		cancel()
		if err == nil {
			return
		}
		interval, ok := strategy.Next()
		if !ok {
			panic("等待数据库就绪超时: " + err.Error())
		}
		time.Sleep(interval)
	}
}
