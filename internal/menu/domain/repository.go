package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	CreateCategory(ctx context.Context, category *Category) error
	ListCategories(ctx context.Context, hotelID snowflake.ID) ([]Category, error)
	FindCategoryByID(ctx context.Context, hotelID, id snowflake.ID) (*Category, error)
	UpdateCategory(ctx context.Context, category *Category) error

	CreateItem(ctx context.Context, item *Item) error
	ListItems(ctx context.Context, hotelID snowflake.ID, filter ListItemsRequest) ([]Item, error)
	FindItemByID(ctx context.Context, hotelID, id snowflake.ID) (*Item, error)
	FindItemsByIDs(ctx context.Context, hotelID snowflake.ID, ids []snowflake.ID) ([]Item, error)
	UpdateItem(ctx context.Context, item *Item) error
	DeleteItem(ctx context.Context, hotelID, id snowflake.ID) error
}
