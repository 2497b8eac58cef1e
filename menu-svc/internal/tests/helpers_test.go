package tests

import (
	"cafe-menu/menu-svc/internal/domain"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func quietLogger() *logrus.Logger {
	logger, _ := test.NewNullLogger()
	return logger
}

// exampleMenu is the two-item menu used across the filter and mutator tests.
func exampleMenu() domain.Menu {
	return domain.Menu{
		{
			ID: "hot", Title: "Hot", Icon: "🔥", Tag: "hot",
			Items: []domain.Item{
				{ID: "a", Name: "Espresso", Price: 40000, Ingredients: "coffee", Tags: []string{"hot"}},
				{ID: "b", Name: "Iced Tea", Price: 30000, Discount: 20, Ingredients: "black tea, ice", Tags: []string{"cold"}},
			},
		},
	}
}

func itemIDs(cat domain.Category) []string {
	ids := make([]string, 0, len(cat.Items))
	for _, it := range cat.Items {
		ids = append(ids, it.ID)
	}
	return ids
}
