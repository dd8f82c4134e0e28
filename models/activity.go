package models

// TableActivity pairs a table with its current session, if any. A table with
// no active session renders dimmed and accepts no staff actions.
type TableActivity struct {
	TableNumber    int      `json:"table_number"`
	CurrentSession *Session `json:"current_session"`
}

// ActivityPanel is the staff aggregate of every table's live state.
type ActivityPanel struct {
	Tables []TableActivity `json:"tables"`
}

// AssistanceBellColor is the attention color for a table's assistance state:
// error while a request is unattended, secondary while staff are handling it.
func (t TableActivity) AssistanceBellColor() string {
	if t.CurrentSession == nil || t.CurrentSession.AssistanceRequests.Current == nil {
		return "white"
	}
	switch t.CurrentSession.AssistanceRequests.Current.Status {
	case AssistanceOpen:
		return "error"
	case AssistanceHandling:
		return "secondary"
	}
	return "white"
}

// BackgroundColor follows the session lifecycle so staff can read table
// state at a glance.
func (t TableActivity) BackgroundColor() string {
	if t.CurrentSession == nil {
		return "muted"
	}
	switch t.CurrentSession.Status {
	case SessionStatusAwaitingPayment:
		return "highlight"
	default:
		return "default"
	}
}

// ActiveItems flattens every non-terminal order item across the panel,
// tagged with its table number. The kitchen display feeds from this.
type ActiveItem struct {
	TableNumber int       `json:"table_number"`
	OrderID     string    `json:"order_id"`
	Item        OrderItem `json:"item"`
}

func (p ActivityPanel) ActiveItems() []ActiveItem {
	var out []ActiveItem
	for _, table := range p.Tables {
		if table.CurrentSession == nil {
			continue
		}
		for _, order := range table.CurrentSession.Orders {
			for _, item := range order.Items {
				if item.Status.IsTerminal() {
					continue
				}
				out = append(out, ActiveItem{
					TableNumber: table.TableNumber,
					OrderID:     order.ID,
					Item:        item,
				})
			}
		}
	}
	return out
}

// GroupItemsByStatus buckets active items for the kitchen columns.
func (p ActivityPanel) GroupItemsByStatus() map[OrderStatus][]ActiveItem {
	groups := make(map[OrderStatus][]ActiveItem)
	for _, ai := range p.ActiveItems() {
		groups[ai.Item.Status] = append(groups[ai.Item.Status], ai)
	}
	return groups
}
