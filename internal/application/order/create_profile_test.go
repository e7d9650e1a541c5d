package order

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/orderlab/internal/domain/order"
	"github.com/xiebiao/orderlab/internal/i18n"
	"github.com/xiebiao/orderlab/internal/metrics"
)

// fakeRepo 仓储测试替身:内存存储+可注入故障
type fakeRepo struct {
	created    []*order.OrderProfile
	createErr  error
	batchErr   error
	lookupErr  error
	isbnExists bool
}

func (f *fakeRepo) Create(ctx context.Context, p *order.OrderProfile) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, p)
	return nil
}

func (f *fakeRepo) CreateBatch(ctx context.Context, ps []*order.OrderProfile) error {
	if f.batchErr != nil {
		return f.batchErr
	}
	f.created = append(f.created, ps...)
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*order.OrderProfile, error) {
	for _, p := range f.created {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, order.ErrProfileNotFound
}

func (f *fakeRepo) ListByCategory(ctx context.Context, category order.Category) ([]*order.OrderProfile, error) {
	var out []*order.OrderProfile
	for _, p := range f.created {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) ExistsByTitleAndAuthor(ctx context.Context, title, author string) (bool, error) {
	if f.lookupErr != nil {
		return false, f.lookupErr
	}
	for _, p := range f.created {
		if p.Title == title && p.Author == author {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	if f.lookupErr != nil {
		return false, f.lookupErr
	}
	if f.isbnExists {
		return true, nil
	}
	normalized := order.NormalizeISBN(isbn)
	for _, p := range f.created {
		if order.NormalizeISBN(p.ISBN) == normalized {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	if f.lookupErr != nil {
		return 0, f.lookupErr
	}
	return int64(len(f.created)), nil
}

// fixedClock 固定时钟
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// newCreateUseCase 组装一个全内存依赖的单条管道
func newCreateUseCase(repo *fakeRepo, aggregator *metrics.Aggregator) *CreateProfileUseCase {
	clock := fixedClock{now: testNow}
	localizer := i18n.NewLocalizer(i18n.LocaleEnUS)
	validator := order.NewValidator(repo, clock, order.DefaultRuleConfig())
	projector := order.NewProjector(localizer, clock)
	return NewCreateProfileUseCase(repo, validator, projector, aggregator, clock, nil)
}

// validRequest 一份完全合法的创建请求
func validRequest() CreateProfileRequest {
	return CreateProfileRequest{
		Title:         "A Quiet Evening",
		Author:        "Jane Doe",
		ISBN:          "978-0-13-419044-0",
		Category:      "Fiction",
		Price:         1999,
		PublishedDate: time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC),
		StockQuantity: 10,
		Locale:        i18n.LocaleEnUS,
	}
}

// TestCreateProfile_Success 成功路径:持久化+投影+指标样本
func TestCreateProfile_Success(t *testing.T) {
	repo := &fakeRepo{}
	aggregator := metrics.NewAggregator(16)
	uc := newCreateUseCase(repo, aggregator)

	result, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	require.NotNil(t, result.View)
	assert.Nil(t, result.Rejected)

	// 持久化了一条记录,Location指向它
	require.Len(t, repo.created, 1)
	assert.Equal(t, "/api/v1/orders/"+repo.created[0].ID, result.Location)

	// 投影字段
	assert.Equal(t, "Fiction & Literature", result.View.CategoryDisplayName)
	assert.Equal(t, "$19.99", result.View.FormattedPrice)
	assert.Equal(t, "JD", result.View.AuthorInitials)

	// 指标:一条成功样本
	s := aggregator.Summarize()
	assert.Equal(t, 1, s.TotalProcessed)
	assert.InDelta(t, 100.0, s.SuccessRate, 0.001)
}

// TestCreateProfile_Rejected 校验拒绝:不持久化,但仍然记录样本
func TestCreateProfile_Rejected(t *testing.T) {
	repo := &fakeRepo{}
	aggregator := metrics.NewAggregator(16)
	uc := newCreateUseCase(repo, aggregator)

	req := validRequest()
	req.Title = ""
	req.Price = 0

	result, err := uc.Execute(context.Background(), req)

	require.NoError(t, err, "校验拒绝是正常结果,不是error")
	require.NotNil(t, result.Rejected)
	assert.Contains(t, result.Rejected, "title")
	assert.Contains(t, result.Rejected, "price")
	assert.Nil(t, result.View)

	assert.Empty(t, repo.created, "拒绝时不应有任何写入")

	s := aggregator.Summarize()
	assert.Equal(t, 1, s.TotalProcessed)
	assert.InDelta(t, 0.0, s.SuccessRate, 0.001)
	require.Len(t, s.LastErrors, 1)
	assert.True(t, strings.HasSuffix(s.LastErrors[0], "Validation failed"))
}

// TestCreateProfile_PersistFailure 持久化失败:返回error,样本记为失败
func TestCreateProfile_PersistFailure(t *testing.T) {
	repo := &fakeRepo{createErr: errors.New("connection reset")}
	aggregator := metrics.NewAggregator(16)
	uc := newCreateUseCase(repo, aggregator)

	result, err := uc.Execute(context.Background(), validRequest())

	require.Error(t, err)
	assert.Nil(t, result)

	s := aggregator.Summarize()
	assert.Equal(t, 1, s.TotalProcessed)
	assert.InDelta(t, 0.0, s.SuccessRate, 0.001)
}

// TestCreateProfile_LookupFailure 存在性检查失败:基础设施错误直接上抛
func TestCreateProfile_LookupFailure(t *testing.T) {
	repo := &fakeRepo{lookupErr: errors.New("connection refused")}
	aggregator := metrics.NewAggregator(16)
	uc := newCreateUseCase(repo, aggregator)

	result, err := uc.Execute(context.Background(), validRequest())

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Empty(t, repo.created)
}

// TestCreateProfile_DuplicateISBN 已存在的ISBN作为校验拒绝返回
func TestCreateProfile_DuplicateISBN(t *testing.T) {
	repo := &fakeRepo{isbnExists: true}
	aggregator := metrics.NewAggregator(16)
	uc := newCreateUseCase(repo, aggregator)

	result, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	require.NotNil(t, result.Rejected)
	assert.Contains(t, result.Rejected["isbn"], "An order with this ISBN already exists.")
}
