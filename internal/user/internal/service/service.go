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
	"errors"
	"fmt"

	"github.com/ecodeclub/bookstore/internal/user/internal/domain"
	"github.com/ecodeclub/bookstore/internal/user/internal/repository"
)

// ErrAddressNotFound 用户没有保存收货地址
var ErrAddressNotFound = errors.New("收货地址不存在")

//go:generate mockgen -source=./service.go -package=usermocks -destination=../../mocks/user.mock.go Service
type Service interface {
	Profile(ctx context.Context, id int64) (domain.User, error)
	FindAddressByUID(ctx context.Context, uid int64) (domain.Address, error)
}

func NewService(repo repository.UserRepository) Service {
	return &service{repo: repo}
}

type service struct {
	repo repository.UserRepository
}

func (s *service) Profile(ctx context.Context, id int64) (domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) FindAddressByUID(ctx context.Context, uid int64) (domain.Address, error) {
	addr, err := s.repo.FindAddressByUID(ctx, uid)
	if err != nil {
		return domain.Address{}, fmt.Errorf("%w: uid=%d", ErrAddressNotFound, uid)
	}
	return addr, nil
}
