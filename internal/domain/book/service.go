package book

import (
	"context"
	"errors"
)

// Service 图书领域服务接口
// 设计说明:
// 1. "不存在"不是错误:查询/更新/删除通过bool返回是否命中
// 2. error只表示存储层故障,由上层转换为500
type Service interface {
	// ListAll 查询全部图书
	ListAll(ctx context.Context) ([]*Book, error)

	// FindByID 根据ID获取图书,found=false表示不存在
	FindByID(ctx context.Context, id uint) (book *Book, found bool, err error)

	// Create 创建图书,未出现的字段按null保存
	Create(ctx context.Context, fields Fields) (*Book, error)

	// Update 部分更新,found=false表示不存在(此时不写库)
	Update(ctx context.Context, id uint, fields Fields) (book *Book, found bool, err error)

	// Delete 删除图书,deleted=false表示不存在
	Delete(ctx context.Context, id uint) (deleted bool, err error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// ListAll 查询全部图书
func (s *service) ListAll(ctx context.Context) ([]*Book, error) {
	return s.repo.List(ctx)
}

// FindByID 根据ID获取图书
func (s *service) FindByID(ctx context.Context, id uint) (*Book, bool, error) {
	if id == 0 {
		return nil, false, nil
	}

	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrBookNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return book, true, nil
}

// Create 创建图书
func (s *service) Create(ctx context.Context, fields Fields) (*Book, error) {
	book := NewBook(fields)
	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// Update 部分更新图书
func (s *service) Update(ctx context.Context, id uint, fields Fields) (*Book, bool, error) {
	if id == 0 {
		return nil, false, nil
	}

	book, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, ErrBookNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return book, true, nil
}

// Delete 删除图书
// 注意:仓储先查出记录再删除同一条记录,不存在时不会执行DELETE
func (s *service) Delete(ctx context.Context, id uint) (bool, error) {
	if id == 0 {
		return false, nil
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrBookNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
