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

package sequencenumber

import (
	"fmt"
	"time"

	"github.com/lithammer/shortuuid/v4"
)

const snLength = 32

// Generator 生成订单和结账会话用的序列号
// 毫秒时间戳保证大体有序, 尾四位携带用户特征, 随机段避免同毫秒撞号
type Generator struct {
	nowFunc  func() int64
	randFunc func() string
}

func NewGenerator() *Generator {
	return NewGeneratorWith(
		func() int64 { return time.Now().UnixMilli() },
		func() string { return shortuuid.New() },
	)
}

// NewGeneratorWith 测试时注入固定的时间戳和随机段
func NewGeneratorWith(nowFunc func() int64, randFunc func() string) *Generator {
	return &Generator{nowFunc: nowFunc, randFunc: randFunc}
}

// Generate 生成32位序列号: 时间戳 + id尾四位 + 随机段截断
func (g *Generator) Generate(id int64) (string, error) {
	sn := fmt.Sprintf("%d%04d%s", g.nowFunc(), id%10000, g.randFunc())
	if len(sn) < snLength {
		return "", fmt.Errorf("序列号长度不足: %s", sn)
	}
	return sn[:snLength], nil
}
