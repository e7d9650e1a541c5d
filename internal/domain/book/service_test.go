package book

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBookRepo 内存实现的Repository测试替身
type fakeBookRepo struct {
	books  map[uint]*Book
	nextID uint
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: make(map[uint]*Book), nextID: 1}
}

func (f *fakeBookRepo) Create(ctx context.Context, b *Book) error {
	b.ID = f.nextID
	f.nextID++
	copied := *b
	f.books[b.ID] = &copied
	return nil
}

func (f *fakeBookRepo) FindByID(ctx context.Context, id uint) (*Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, ErrBookNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookRepo) Update(ctx context.Context, b *Book) error {
	if _, ok := f.books[b.ID]; !ok {
		return ErrBookNotFound
	}
	copied := *b
	f.books[b.ID] = &copied
	return nil
}

func (f *fakeBookRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := f.books[id]; !ok {
		return ErrBookNotFound
	}
	delete(f.books, id)
	return nil
}

func (f *fakeBookRepo) List(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	var out []*Book
	for _, b := range f.books {
		copied := *b
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

// TestCreateBook_Success 合法字段创建成功
func TestCreateBook_Success(t *testing.T) {
	svc := NewService(newFakeBookRepo())

	b, err := svc.CreateBook(context.Background(), "  Go语言实战  ", "William Kennedy", 2015)

	require.NoError(t, err)
	assert.NotZero(t, b.ID)
	assert.Equal(t, "Go语言实战", b.Title, "首尾空白应被裁剪")
	assert.Equal(t, "William Kennedy", b.Author)
	assert.Equal(t, 2015, b.Year)
	assert.False(t, b.CreatedAt.IsZero())
}

// TestCreateBook_Validation 字段校验规则
func TestCreateBook_Validation(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		author  string
		year    int
		wantErr error
	}{
		{"书名为空", "", "Jane Doe", 2020, ErrTitleRequired},
		{"书名全是空白", "   ", "Jane Doe", 2020, ErrTitleRequired},
		{"书名超长", strings.Repeat("长", 201), "Jane Doe", 2020, ErrTitleTooLong},
		{"书名恰好200字符合法", strings.Repeat("长", 200), "Jane Doe", 2020, nil},
		{"作者为空", "A Title", "", 2020, ErrAuthorRequired},
		{"作者全是空白", "A Title", "  ", 2020, ErrAuthorRequired},
		{"年份早于1000", "A Title", "Jane Doe", 999, ErrInvalidYear},
		{"年份是未来", "A Title", "Jane Doe", time.Now().Year() + 1, ErrInvalidYear},
		{"年份是当前年", "A Title", "Jane Doe", time.Now().Year(), nil},
		{"年份恰好1000", "A Title", "Jane Doe", 1000, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newFakeBookRepo())
			_, err := svc.CreateBook(context.Background(), tt.title, tt.author, tt.year)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestUpdateBook 更新走同一套校验,且不存在的ID返回404
func TestUpdateBook(t *testing.T) {
	t.Run("更新成功", func(t *testing.T) {
		repo := newFakeBookRepo()
		svc := NewService(repo)
		created, err := svc.CreateBook(context.Background(), "Old Title", "Jane Doe", 2010)
		require.NoError(t, err)

		updated, err := svc.UpdateBook(context.Background(), created.ID, "New Title", "John Smith", 2018)

		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "New Title", updated.Title)
		assert.Equal(t, "John Smith", updated.Author)
		assert.Equal(t, 2018, updated.Year)

		stored, err := repo.FindByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, "New Title", stored.Title)
	})

	t.Run("不存在的ID", func(t *testing.T) {
		svc := NewService(newFakeBookRepo())

		_, err := svc.UpdateBook(context.Background(), 42, "New Title", "John Smith", 2018)

		assert.ErrorIs(t, err, ErrBookNotFound)
	})

	t.Run("非法字段不落库", func(t *testing.T) {
		repo := newFakeBookRepo()
		svc := NewService(repo)
		created, err := svc.CreateBook(context.Background(), "Old Title", "Jane Doe", 2010)
		require.NoError(t, err)

		_, err = svc.UpdateBook(context.Background(), created.ID, "", "John Smith", 2018)
		require.ErrorIs(t, err, ErrTitleRequired)

		stored, err := repo.FindByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Old Title", stored.Title, "校验失败不应修改原记录")
	})
}

// TestDeleteBook 删除不存在的ID返回404而不是静默成功
func TestDeleteBook(t *testing.T) {
	t.Run("删除成功", func(t *testing.T) {
		repo := newFakeBookRepo()
		svc := NewService(repo)
		created, err := svc.CreateBook(context.Background(), "A Title", "Jane Doe", 2010)
		require.NoError(t, err)

		require.NoError(t, svc.DeleteBook(context.Background(), created.ID))

		_, err = svc.GetBookByID(context.Background(), created.ID)
		assert.ErrorIs(t, err, ErrBookNotFound)
	})

	t.Run("删除不存在的ID", func(t *testing.T) {
		svc := NewService(newFakeBookRepo())
		err := svc.DeleteBook(context.Background(), 42)
		assert.ErrorIs(t, err, ErrBookNotFound)
	})
}

// TestGetBookByID 查询不存在的ID
func TestGetBookByID_NotFound(t *testing.T) {
	svc := NewService(newFakeBookRepo())
	_, err := svc.GetBookByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrBookNotFound)
}

// TestListBooks 列表查询透传仓储结果
func TestListBooks(t *testing.T) {
	repo := newFakeBookRepo()
	svc := NewService(repo)
	for i := 0; i < 3; i++ {
		_, err := svc.CreateBook(context.Background(), "Title "+strings.Repeat("x", i+1), "Jane Doe", 2010+i)
		require.NoError(t, err)
	}

	books, total, err := svc.ListBooks(context.Background(), ListParams{Page: 1, PageSize: 20})

	require.NoError(t, err)
	assert.Len(t, books, 3)
	assert.Equal(t, int64(3), total)
}
