package commands_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func testItems(t *testing.T, n int) []*order.Item {
	t.Helper()

	items := make([]*order.Item, 0, n)
	for range n {
		item, err := order.NewItem(kernel.NewUUID(), 1, kernel.NewWeight("1kg"))
		require.NoError(t, err)
		items = append(items, item)
	}
	return items
}

func testOrderInStatus(t *testing.T, status order.Status, lines int) *order.Order {
	t.Helper()

	ord, err := order.RestoreOrder(
		kernel.NewUUID(), status,
		"Anna Kuznetsova", "+79990001122", "12 Lesnaya St",
		1500, testItems(t, lines), nil,
	)
	require.NoError(t, err)
	return ord
}
