package product

import (
	"context"
	"strings"
	"testing"

	"storefront-be/internal/apperr"
	"storefront-be/internal/category"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSplitFeedLine(t *testing.T) {
	cases := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "PlainFields",
			line: `Widget,desc,19.99,Gadgets`,
			want: []string{"Widget", "desc", "19.99", "Gadgets"},
		},
		{
			name: "QuotedCommaNotADelimiter",
			line: `"Widget, Deluxe","desc",9.99,"Tools"`,
			want: []string{`"Widget, Deluxe"`, `"desc"`, "9.99", `"Tools"`},
		},
		{
			name: "EmptyLine",
			line: "",
			want: []string{""},
		},
		{
			name: "TrailingEmptyField",
			line: "a,b,c,",
			want: []string{"a", "b", "c", ""},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, splitFeedLine(tc.line))
		})
	}
}

func TestCleanField(t *testing.T) {
	assert.Equal(t, "Widget", cleanField(`  "Widget" `))
	assert.Equal(t, "Widget, Deluxe", cleanField(`"Widget, Deluxe"`))
	assert.Equal(t, "plain", cleanField(" plain "))
	// unmatched quote is kept as-is
	assert.Equal(t, `"half`, cleanField(`"half`))
	assert.Equal(t, `"`, cleanField(`"`))
}

func TestService_ImportCSV(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatesProductAndCategory", func(t *testing.T) {
		repo := new(MockRepository)
		cats := new(MockCategoryRepo)
		svc := NewService(repo, cats)

		feed := "name,description,price,category\n" +
			`"Widget","A nice widget",19.99,"Gadgets"` + "\n"

		cats.On("FindByName", ctx, "Gadgets").Return(nil, nil)
		cats.On("Create", ctx, "Gadgets", "Gadgets").
			Return(&category.Category{ID: 2, Name: "Gadgets", Description: "Gadgets"}, nil)

		repo.On("Create", ctx, mock.MatchedBy(func(p CreateParams) bool {
			return p.Name == "Widget" &&
				p.Description == "A nice widget" &&
				p.Price.Equal(decimal.RequireFromString("19.99")) &&
				p.StockQuantity == DefaultUploadStock &&
				p.CategoryID != nil && *p.CategoryID == 2 &&
				p.ImageURL == nil
		})).Return(&Product{ID: 1}, nil)

		imported, err := svc.ImportCSV(ctx, strings.NewReader(feed), DefaultUploadStock)
		require.NoError(t, err)
		assert.Equal(t, 1, imported)
		cats.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("ReusesExistingCategory", func(t *testing.T) {
		repo := new(MockRepository)
		cats := new(MockCategoryRepo)
		svc := NewService(repo, cats)

		feed := "name,description,price,category\n" +
			"A,first,1.00,Tools\n" +
			"B,second,2.00,Tools\n"

		cats.On("FindByName", ctx, "Tools").
			Return(&category.Category{ID: 9, Name: "Tools"}, nil).Twice()
		repo.On("Create", ctx, mock.Anything).Return(&Product{}, nil).Twice()

		imported, err := svc.ImportCSV(ctx, strings.NewReader(feed), DefaultUploadStock)
		require.NoError(t, err)
		assert.Equal(t, 2, imported)
		cats.AssertNotCalled(t, "Create")
	})

	t.Run("QuotedCommaInName", func(t *testing.T) {
		repo := new(MockRepository)
		cats := new(MockCategoryRepo)
		svc := NewService(repo, cats)

		feed := "name,description,price,category\n" +
			`"Widget, Deluxe","desc",9.99,"Tools"` + "\n"

		cats.On("FindByName", ctx, "Tools").
			Return(&category.Category{ID: 9, Name: "Tools"}, nil)
		repo.On("Create", ctx, mock.MatchedBy(func(p CreateParams) bool {
			return p.Name == "Widget, Deluxe"
		})).Return(&Product{}, nil)

		imported, err := svc.ImportCSV(ctx, strings.NewReader(feed), DefaultUploadStock)
		require.NoError(t, err)
		assert.Equal(t, 1, imported)
		repo.AssertExpectations(t)
	})

	t.Run("ShortRowSkippedSilently", func(t *testing.T) {
		repo := new(MockRepository)
		cats := new(MockCategoryRepo)
		svc := NewService(repo, cats)

		feed := "name,description,price,category\n" +
			"broken,row,only3\n" +
			"Good,desc,4.50,Tools\n"

		cats.On("FindByName", ctx, "Tools").
			Return(&category.Category{ID: 9, Name: "Tools"}, nil)
		repo.On("Create", ctx, mock.MatchedBy(func(p CreateParams) bool {
			return p.Name == "Good"
		})).Return(&Product{}, nil)

		imported, err := svc.ImportCSV(ctx, strings.NewReader(feed), DefaultUploadStock)
		require.NoError(t, err)
		assert.Equal(t, 1, imported)
	})

	t.Run("BadPriceAbortsRemainingRows", func(t *testing.T) {
		repo := new(MockRepository)
		cats := new(MockCategoryRepo)
		svc := NewService(repo, cats)

		feed := "name,description,price,category\n" +
			"First,desc,1.00,Tools\n" +
			"Second,desc,not-a-price,Tools\n" +
			"Third,desc,3.00,Tools\n"

		cats.On("FindByName", ctx, "Tools").
			Return(&category.Category{ID: 9, Name: "Tools"}, nil).Once()
		repo.On("Create", ctx, mock.MatchedBy(func(p CreateParams) bool {
			return p.Name == "First"
		})).Return(&Product{}, nil).Once()

		imported, err := svc.ImportCSV(ctx, strings.NewReader(feed), DefaultUploadStock)
		require.Error(t, err)
		assert.Equal(t, apperr.KindIngestion, apperr.KindOf(err))
		assert.Contains(t, err.Error(), `"not-a-price"`)
		// the first row stays committed
		assert.Equal(t, 1, imported)
		repo.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("OptionalImageURL", func(t *testing.T) {
		repo := new(MockRepository)
		cats := new(MockCategoryRepo)
		svc := NewService(repo, cats)

		feed := "name,description,price,category,image\n" +
			`Cam,desc,599.00,Photo,"https://img.example/cam.jpg"` + "\n"

		cats.On("FindByName", ctx, "Photo").
			Return(&category.Category{ID: 3, Name: "Photo"}, nil)
		repo.On("Create", ctx, mock.MatchedBy(func(p CreateParams) bool {
			return p.ImageURL != nil && *p.ImageURL == "https://img.example/cam.jpg"
		})).Return(&Product{}, nil)

		imported, err := svc.ImportCSV(ctx, strings.NewReader(feed), DefaultUploadStock)
		require.NoError(t, err)
		assert.Equal(t, 1, imported)
		repo.AssertExpectations(t)
	})

	t.Run("SeedStockParameter", func(t *testing.T) {
		repo := new(MockRepository)
		cats := new(MockCategoryRepo)
		svc := NewService(repo, cats)

		feed := "name,description,price,category\n" +
			"Seeded,desc,5.00,Tools\n"

		cats.On("FindByName", ctx, "Tools").
			Return(&category.Category{ID: 9}, nil)
		repo.On("Create", ctx, mock.MatchedBy(func(p CreateParams) bool {
			return p.StockQuantity == DefaultSeedStock
		})).Return(&Product{}, nil)

		_, err := svc.ImportCSV(ctx, strings.NewReader(feed), DefaultSeedStock)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("HeaderOnlyFeed", func(t *testing.T) {
		repo := new(MockRepository)
		cats := new(MockCategoryRepo)
		svc := NewService(repo, cats)

		imported, err := svc.ImportCSV(ctx, strings.NewReader("name,description,price,category\n"), DefaultUploadStock)
		require.NoError(t, err)
		assert.Zero(t, imported)
		repo.AssertNotCalled(t, "Create")
	})
}
