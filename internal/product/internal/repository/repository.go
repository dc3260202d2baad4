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

	"github.com/ecodeclub/bookstore/internal/product/internal/domain"
	"github.com/ecodeclub/bookstore/internal/product/internal/repository/dao"
	"github.com/ecodeclub/ekit/slice"
)

type BookRepository interface {
	FindByID(ctx context.Context, id int64) (domain.Book, error)
	FindByIDs(ctx context.Context, ids []int64) ([]domain.Book, error)
	Create(ctx context.Context, b domain.Book) (int64, error)
}

func NewBookRepository(d dao.BookDAO) BookRepository {
	return &bookRepository{d: d}
}

type bookRepository struct {
	d dao.BookDAO
}

func (b *bookRepository) FindByID(ctx context.Context, id int64) (domain.Book, error) {
	book, err := b.d.FindByID(ctx, id)
	if err != nil {
		return domain.Book{}, err
	}
	return b.toDomain(book), nil
}

func (b *bookRepository) FindByIDs(ctx context.Context, ids []int64) ([]domain.Book, error) {
	books, err := b.d.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return slice.Map(books, func(idx int, src dao.Book) domain.Book {
		return b.toDomain(src)
	}), nil
}

func (b *bookRepository) Create(ctx context.Context, book domain.Book) (int64, error) {
	return b.d.Create(ctx, b.toEntity(book))
}

func (b *bookRepository) toDomain(book dao.Book) domain.Book {
	return domain.Book{
		ID:          book.Id,
		SN:          book.SN,
		Title:       book.Title,
		AuthorName:  book.AuthorName,
		Price:       book.Price,
		Stock:       book.Stock,
		WeightGrams: book.WeightGrams,
		WidthCm:     book.WidthCm,
		HeightCm:    book.HeightCm,
		LengthCm:    book.LengthCm,
		Ctime:       book.Ctime,
		Utime:       book.Utime,
	}
}

func (b *bookRepository) toEntity(book domain.Book) dao.Book {
	return dao.Book{
		Id:          book.ID,
		SN:          book.SN,
		Title:       book.Title,
		AuthorName:  book.AuthorName,
		Price:       book.Price,
		Stock:       book.Stock,
		WeightGrams: book.WeightGrams,
		WidthCm:     book.WidthCm,
		HeightCm:    book.HeightCm,
		LengthCm:    book.LengthCm,
	}
}
