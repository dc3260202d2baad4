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

	"github.com/ecodeclub/bookstore/internal/product/internal/domain"
	"github.com/ecodeclub/bookstore/internal/product/internal/repository"
)

// ErrBookNotFound 购买清单中的图书ID已失效
var ErrBookNotFound = errors.New("图书不存在")

//go:generate mockgen -source=./service.go -package=productmocks -destination=../../mocks/product.mock.go Service
type Service interface {
	FindBookByID(ctx context.Context, id int64) (domain.Book, error)
	// FindBooksByIDs 按入参顺序返回, 任意一个ID未找到即返回 ErrBookNotFound
	FindBooksByIDs(ctx context.Context, ids []int64) ([]domain.Book, error)
}

func NewService(repo repository.BookRepository) Service {
	return &service{repo: repo}
}

type service struct {
	repo repository.BookRepository
}

func (s *service) FindBookByID(ctx context.Context, id int64) (domain.Book, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Book{}, fmt.Errorf("%w: id=%d", ErrBookNotFound, id)
	}
	return book, nil
}

func (s *service) FindBooksByIDs(ctx context.Context, ids []int64) ([]domain.Book, error) {
	books, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("批量查找图书失败: %w", err)
	}
	byID := make(map[int64]domain.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}
	res := make([]domain.Book, 0, len(ids))
	for _, id := range ids {
		b, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: id=%d", ErrBookNotFound, id)
		}
		res = append(res, b)
	}
	return res, nil
}
