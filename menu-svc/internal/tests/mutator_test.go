package tests

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"cafe-menu/menu-svc/internal/domain"
	"cafe-menu/menu-svc/internal/mocks"
	"cafe-menu/menu-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newLocalMutator(t *testing.T, menu domain.Menu) (*service.Mutator, *service.MenuState, *mocks.Store) {
	t.Helper()
	mockStore := mocks.NewStore(t)
	state := service.NewMenuState(menu)
	return service.NewMutator(state, mockStore, mockStore, nil, nil, quietLogger()), state, mockStore
}

func TestMutator_UpsertProductIdempotent(t *testing.T) {
	mutator, state, mockStore := newLocalMutator(t, exampleMenu())
	ctx := context.Background()
	in := service.ProductInput{
		CategoryID:  "hot",
		Name:        "Flat White",
		Price:       45000,
		Discount:    10,
		Ingredients: "espresso, steamed milk",
		Tags:        []string{"hot", "milk"},
	}

	mockStore.On("SaveSnapshot", mock.Anything, mock.Anything).Return(nil).Twice()

	item, res, err := mutator.UpsertProduct(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "flat-white", item.ID)
	assert.True(t, res.Changed)
	assert.Equal(t, service.RemoteLocalOnly, res.Remote)
	assert.NotEmpty(t, res.Warning)

	_, res, err = mutator.UpsertProduct(ctx, in)
	require.NoError(t, err)
	assert.False(t, res.Changed)

	in.Price = 48000
	_, res, err = mutator.UpsertProduct(ctx, in)
	require.NoError(t, err)
	assert.True(t, res.Changed)

	hot := state.Snapshot()[0]
	assert.Equal(t, []string{"a", "b", "flat-white"}, itemIDs(hot))
	assert.Equal(t, 48000, hot.Items[2].Price)
}

func TestMutator_UpsertProductClampsDiscount(t *testing.T) {
	tests := []struct {
		name     string
		discount int
		expected int
	}{
		{name: "above range", discount: 150, expected: 100},
		{name: "below range", discount: -5, expected: 0},
		{name: "in range", discount: 35, expected: 35},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mutator, state, mockStore := newLocalMutator(t, exampleMenu())
			mockStore.On("SaveSnapshot", mock.Anything, mock.Anything).Return(nil).Once()

			item, _, err := mutator.UpsertProduct(context.Background(), service.ProductInput{
				CategoryID: "hot", Name: "Latte", Price: 50000, Discount: testCase.discount,
			})
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, item.Discount)

			hot := state.Snapshot()[0]
			assert.Equal(t, testCase.expected, hot.Items[hot.ItemIndex("latte")].Discount)
		})
	}
}

func TestMutator_UpsertProductRejectsBadInput(t *testing.T) {
	tests := []struct {
		name        string
		input       service.ProductInput
		validation  bool
		expectedErr error
	}{
		{name: "empty name", input: service.ProductInput{CategoryID: "hot", Name: "  ", Price: 100}, validation: true},
		{name: "zero price", input: service.ProductInput{CategoryID: "hot", Name: "Latte", Price: 0}, validation: true},
		{name: "name without letters", input: service.ProductInput{CategoryID: "hot", Name: "!!!", Price: 100}, validation: true},
		{name: "unknown category", input: service.ProductInput{CategoryID: "dessert", Name: "Latte", Price: 100}, expectedErr: domain.ErrCategoryNotFound},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mutator, state, _ := newLocalMutator(t, exampleMenu())

			_, res, err := mutator.UpsertProduct(context.Background(), testCase.input)
			require.Error(t, err)
			if testCase.validation {
				assert.True(t, domain.IsValidation(err), "expected validation error, got %v", err)
			}
			if testCase.expectedErr != nil {
				assert.ErrorIs(t, err, testCase.expectedErr)
			}
			assert.False(t, res.Changed)
			assert.Equal(t, exampleMenu(), state.Snapshot())
		})
	}
}

func TestMutator_UpsertProductDefaults(t *testing.T) {
	menu := exampleMenu()
	menu[0].Items[0].Img = "https://example.com/espresso.jpg"
	mutator, state, mockStore := newLocalMutator(t, menu)
	mockStore.On("SaveSnapshot", mock.Anything, mock.Anything).Return(nil).Once()

	item, _, err := mutator.UpsertProduct(context.Background(), service.ProductInput{
		CategoryID: "hot", Name: "Espresso", Price: 42000, Tags: []string{" ", "hot", "hot"},
	})
	require.NoError(t, err)
	assert.Equal(t, "espresso", item.ID)
	assert.Equal(t, []string{"hot"}, item.Tags)

	hot := state.Snapshot()[0]
	// slug "espresso" differs from the seed id "a", so this is a new entry
	assert.Equal(t, []string{"a", "b", "espresso"}, itemIDs(hot))
	assert.Empty(t, hot.Items[2].Img)
}

func TestMutator_UpsertProductRename(t *testing.T) {
	mutator, state, mockStore := newLocalMutator(t, domain.DefaultMenu())
	ctx := context.Background()
	mockStore.On("SaveSnapshot", mock.Anything, mock.Anything).Return(nil).Once()

	item, _, err := mutator.UpsertProduct(ctx, service.ProductInput{
		CategoryID: "hot", Name: "Espresso Doppio", Price: 42000, PreviousID: "double-espresso",
	})
	require.NoError(t, err)
	assert.Equal(t, "espresso-doppio", item.ID)

	hot := state.Snapshot()[0]
	assert.Equal(t, []string{"espresso-doppio", "cappuccino", "mocha"}, itemIDs(hot))
	assert.NotEmpty(t, hot.Items[0].Img, "image carried over from the renamed item")

	_, _, err = mutator.UpsertProduct(ctx, service.ProductInput{
		CategoryID: "hot", Name: "Mocha", Price: 42000, PreviousID: "cappuccino",
	})
	assert.ErrorIs(t, err, domain.ErrItemExists)
}

func TestMutator_CategoryCascadeDelete(t *testing.T) {
	mutator, state, mockStore := newLocalMutator(t, domain.DefaultMenu())
	ctx := context.Background()
	mockStore.On("SaveSnapshot", mock.Anything, mock.MatchedBy(func(m domain.Menu) bool {
		return m.CategoryIndex("hot") < 0
	})).Return(nil).Once()

	res, err := mutator.RemoveCategory(ctx, "hot")
	require.NoError(t, err)
	assert.True(t, res.Changed)

	menu := state.Snapshot()
	assert.Equal(t, -1, menu.CategoryIndex("hot"))
	for _, it := range domain.FlattenItems(menu) {
		assert.NotEqual(t, "hot", it.CategoryID)
	}

	res, err = mutator.RemoveProduct(ctx, "hot", "cappuccino")
	assert.NoError(t, err)
	assert.False(t, res.Changed)

	res, err = mutator.RemoveCategory(ctx, "hot")
	assert.NoError(t, err)
	assert.False(t, res.Changed)
}

func TestMutator_AddCategory(t *testing.T) {
	tests := []struct {
		name        string
		input       service.CategoryInput
		expected    domain.Category
		validation  bool
		expectedErr error
	}{
		{
			name:     "defaults tag and icon",
			input:    service.CategoryInput{Title: "Iced Tea"},
			expected: domain.Category{ID: "iced-tea", Title: "Iced Tea", Tag: "iced-tea", Icon: "📦", Items: []domain.Item{}},
		},
		{
			name:     "keeps explicit tag and icon",
			input:    service.CategoryInput{Title: "Desserts", Tag: "sweet", Icon: "🍰"},
			expected: domain.Category{ID: "desserts", Title: "Desserts", Tag: "sweet", Icon: "🍰", Items: []domain.Item{}},
		},
		{name: "duplicate", input: service.CategoryInput{Title: "Hot"}, expectedErr: domain.ErrCategoryExists},
		{name: "empty title", input: service.CategoryInput{Title: " "}, validation: true},
		{name: "title too long", input: service.CategoryInput{Title: strings.Repeat("x", 61)}, validation: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mutator, state, mockStore := newLocalMutator(t, exampleMenu())
			if testCase.expectedErr == nil && !testCase.validation {
				mockStore.On("SaveSnapshot", mock.Anything, mock.Anything).Return(nil).Once()
			}

			cat, _, err := mutator.AddCategory(context.Background(), testCase.input)
			switch {
			case testCase.validation:
				assert.True(t, domain.IsValidation(err), "expected validation error, got %v", err)
			case testCase.expectedErr != nil:
				assert.ErrorIs(t, err, testCase.expectedErr)
			default:
				require.NoError(t, err)
				assert.Equal(t, testCase.expected, cat)
				menu := state.Snapshot()
				assert.Equal(t, testCase.expected, menu[len(menu)-1])
			}
		})
	}
}

func TestMutator_LocalSaveFailureLeavesStateUntouched(t *testing.T) {
	mutator, state, mockStore := newLocalMutator(t, exampleMenu())
	mockStore.On("SaveSnapshot", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

	res, err := mutator.ClearDiscounts(context.Background())
	assert.ErrorContains(t, err, "disk full")
	assert.False(t, res.Changed)
	assert.Equal(t, exampleMenu(), state.Snapshot())
}

func TestMutator_Discounts(t *testing.T) {
	ctx := context.Background()

	t.Run("category discount clamps", func(t *testing.T) {
		mutator, state, mockStore := newLocalMutator(t, domain.DefaultMenu())
		mockStore.On("SaveSnapshot", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := mutator.ApplyCategoryDiscount(ctx, "cold", 150)
		require.NoError(t, err)
		for _, it := range state.Snapshot()[1].Items {
			assert.Equal(t, 100, it.Discount)
		}
	})

	t.Run("category discount must be positive", func(t *testing.T) {
		mutator, _, _ := newLocalMutator(t, domain.DefaultMenu())
		_, err := mutator.ApplyCategoryDiscount(ctx, "cold", 0)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("category discount unknown category", func(t *testing.T) {
		mutator, _, _ := newLocalMutator(t, domain.DefaultMenu())
		_, err := mutator.ApplyCategoryDiscount(ctx, "dessert", 10)
		assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
	})

	t.Run("global discount only touches undiscounted items", func(t *testing.T) {
		mutator, state, mockStore := newLocalMutator(t, domain.DefaultMenu())
		mockStore.On("SaveSnapshot", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := mutator.ApplyGlobalDiscount(ctx, 95)
		require.NoError(t, err)

		menu := state.Snapshot()
		hot := menu[0]
		assert.Equal(t, 90, hot.Items[hot.ItemIndex("double-espresso")].Discount)
		assert.Equal(t, 10, hot.Items[hot.ItemIndex("cappuccino")].Discount)
	})

	t.Run("clear discounts", func(t *testing.T) {
		mutator, state, mockStore := newLocalMutator(t, domain.DefaultMenu())
		mockStore.On("SaveSnapshot", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := mutator.ClearDiscounts(ctx)
		require.NoError(t, err)
		for _, it := range domain.FlattenItems(state.Snapshot()) {
			assert.Zero(t, it.Discount)
		}

		res, err := mutator.ClearDiscounts(ctx)
		require.NoError(t, err)
		assert.False(t, res.Changed)
	})
}

func TestMutator_SetProductImage(t *testing.T) {
	ctx := context.Background()
	mutator, state, mockStore := newLocalMutator(t, exampleMenu())
	mockStore.On("SaveSnapshot", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := mutator.SetProductImage(ctx, "hot", "a", "data:image/png;base64,AAAA")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAAA", state.Snapshot()[0].Items[0].Img)

	_, err = mutator.SetProductImage(ctx, "hot", "zzz", "data:image/png;base64,AAAA")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
	_, err = mutator.SetProductImage(ctx, "nope", "a", "data:image/png;base64,AAAA")
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
	_, err = mutator.SetProductImage(ctx, "hot", "a", "")
	assert.True(t, domain.IsValidation(err))
}

func TestMutator_RemoteOutcome(t *testing.T) {
	tests := []struct {
		name         string
		credential   string
		writeErr     error
		expected     service.RemoteStatus
		expectWrite  bool
		expectWarned bool
	}{
		{name: "synced", credential: "tok", expected: service.RemoteSynced, expectWrite: true},
		{name: "no credential", credential: "", expected: service.RemoteLocalOnly, expectWarned: true},
		{name: "rejected", credential: "tok", writeErr: fmt.Errorf("%w: 401", domain.ErrUnauthorized), expected: service.RemoteUnauthorized, expectWrite: true, expectWarned: true},
		{name: "conflict", credential: "tok", writeErr: fmt.Errorf("%w: 409", domain.ErrConflict), expected: service.RemoteConflict, expectWrite: true, expectWarned: true},
		{name: "network", credential: "tok", writeErr: domain.ErrTransport, expected: service.RemoteFailed, expectWrite: true, expectWarned: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockStore := mocks.NewStore(t)
			mockRemote := mocks.NewRemoteSource(t)
			state := service.NewMenuState(exampleMenu())
			mutator := service.NewMutator(state, mockStore, mockStore, mockRemote, nil, quietLogger())

			mockStore.On("SaveSnapshot", mock.Anything, mock.Anything).Return(nil).Once()
			mockStore.On("WriteCredential", mock.Anything).Return(testCase.credential, nil).Once()
			if testCase.expectWrite {
				mockRemote.On("Write", mock.Anything, mock.Anything, testCase.credential).Return(testCase.writeErr).Once()
			}

			res, err := mutator.ApplyCategoryDiscount(context.Background(), "hot", 50)
			require.NoError(t, err)
			assert.True(t, res.Changed)
			assert.Equal(t, testCase.expected, res.Remote)
			assert.Equal(t, testCase.expectWarned, res.Warning != "")
			assert.Equal(t, testCase.expectWarned, res.Degraded())

			// local state is kept regardless of the remote outcome
			assert.Equal(t, 50, state.Snapshot()[0].Items[0].Discount)
		})
	}
}

func TestMutator_PublishesEvents(t *testing.T) {
	mockStore := mocks.NewStore(t)
	mockPublisher := mocks.NewMenuPublisher(t)
	state := service.NewMenuState(exampleMenu())
	mutator := service.NewMutator(state, mockStore, mockStore, nil, mockPublisher, quietLogger()).WithOrigin("instance-1")

	mockStore.On("SaveSnapshot", mock.Anything, mock.Anything).Return(nil).Once()
	mockPublisher.On("PublishMenuEvent", mock.Anything, mock.MatchedBy(func(e domain.MenuEvent) bool {
		return e.Type == domain.EventMenuUpdated &&
			e.Origin == "instance-1" &&
			e.Action == "product_removed" &&
			e.CategoryID == "hot" &&
			e.ItemID == "b" &&
			e.Remote == string(service.RemoteLocalOnly) &&
			!e.Timestamp.IsZero()
	})).Return(errors.New("broker down")).Once()

	res, err := mutator.RemoveProduct(context.Background(), "hot", "b")
	require.NoError(t, err, "publishing failures are not surfaced")
	assert.True(t, res.Changed)
	assert.Equal(t, []string{"a"}, itemIDs(state.Snapshot()[0]))
}
