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

package repository

import (
	"context"

	"github.com/ecodeclub/bookstore/internal/user/internal/domain"
	"github.com/ecodeclub/bookstore/internal/user/internal/repository/dao"
)

type UserRepository interface {
	FindByID(ctx context.Context, id int64) (domain.User, error)
	FindAddressByUID(ctx context.Context, uid int64) (domain.Address, error)
}

func NewUserRepository(d dao.UserDAO) UserRepository {
	return &userRepository{d: d}
}

type userRepository struct {
	d dao.UserDAO
}

func (u *userRepository) FindByID(ctx context.Context, id int64) (domain.User, error) {
	usr, err := u.d.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	return domain.User{ID: usr.Id, Email: usr.Email, Nickname: usr.Nickname}, nil
}

func (u *userRepository) FindAddressByUID(ctx context.Context, uid int64) (domain.Address, error) {
	addr, err := u.d.FindAddressByUID(ctx, uid)
	if err != nil {
		return domain.Address{}, err
	}
	return domain.Address{
		ID:         addr.Id,
		Uid:        addr.Uid,
		Name:       addr.Name,
		Street:     addr.Street,
		Number:     addr.Number,
		City:       addr.City,
		State:      addr.State,
		PostalCode: addr.PostalCode,
	}, nil
}
