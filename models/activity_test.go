package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func panelFixture() ActivityPanel {
	return ActivityPanel{
		Tables: []TableActivity{
			{TableNumber: 1, CurrentSession: &Session{
				ID:     "s1",
				Status: SessionStatusOpen,
				Orders: []Order{
					{ID: "o1", Items: []OrderItem{
						{ID: "i1", Status: OrderStatusOrdered},
						{ID: "i2", Status: OrderStatusPreparing},
						{ID: "i3", Status: OrderStatusDelivered},
					}},
				},
			}},
			{TableNumber: 2},
			{TableNumber: 3, CurrentSession: &Session{
				ID:     "s3",
				Status: SessionStatusAwaitingPayment,
				Orders: []Order{
					{ID: "o2", Items: []OrderItem{
						{ID: "i4", Status: OrderStatusOrdered},
						{ID: "i5", Status: OrderStatusCancelled},
					}},
				},
			}},
		},
	}
}

func TestActiveItemsSkipsTerminalAndEmptyTables(t *testing.T) {
	items := panelFixture().ActiveItems()
	assert.Len(t, items, 3)

	ids := make([]string, 0, len(items))
	for _, ai := range items {
		ids = append(ids, ai.Item.ID)
	}
	assert.Equal(t, []string{"i1", "i2", "i4"}, ids)
	assert.Equal(t, 1, items[0].TableNumber)
	assert.Equal(t, "o2", items[2].OrderID)
}

func TestGroupItemsByStatus(t *testing.T) {
	groups := panelFixture().GroupItemsByStatus()
	assert.Len(t, groups[OrderStatusOrdered], 2)
	assert.Len(t, groups[OrderStatusPreparing], 1)
	assert.Empty(t, groups[OrderStatusDelivered])
	assert.Empty(t, groups[OrderStatusCancelled])
}

func TestAssistanceBellColor(t *testing.T) {
	table := TableActivity{TableNumber: 1}
	assert.Equal(t, "white", table.AssistanceBellColor())

	table.CurrentSession = &Session{AssistanceRequests: AssistanceRequests{
		Current: &AssistanceRequest{Status: AssistanceOpen},
	}}
	assert.Equal(t, "error", table.AssistanceBellColor())

	table.CurrentSession.AssistanceRequests.Current.Status = AssistanceHandling
	assert.Equal(t, "secondary", table.AssistanceBellColor())
}

func TestBackgroundColor(t *testing.T) {
	assert.Equal(t, "muted", TableActivity{}.BackgroundColor())
	assert.Equal(t, "default", TableActivity{CurrentSession: &Session{Status: SessionStatusOpen}}.BackgroundColor())
	assert.Equal(t, "highlight", TableActivity{CurrentSession: &Session{Status: SessionStatusAwaitingPayment}}.BackgroundColor())
}
