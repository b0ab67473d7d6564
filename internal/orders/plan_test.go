package orders

import (
	"errors"
	"testing"
	"time"

	"github.com/ariefcatur/craft-marketplace.git/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var planNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func testOrder(status Status) Order {
	return Order{
		ID:          "11112222-3333-4444-5555-666677778888",
		BuyerID:     "buyer-1",
		ArtisanID:   "artisan-1",
		ProductName: "Clay Vase",
		ArtisanName: "Ravi",
		BuyerName:   "Anita",
		TotalCents:  250000,
		Status:      status,
	}
}

func recipients(p Plan) map[string]bool {
	out := map[string]bool{}
	for _, n := range p.Notifications {
		out[n.TargetRole] = true
	}
	return out
}

func TestPlanRecipientSets(t *testing.T) {
	cases := []struct {
		from, to Status
		buyer    bool
		artisan  bool
	}{
		{StatusPending, StatusConfirmed, true, false},
		{StatusConfirmed, StatusProcessing, true, false},
		{StatusProcessing, StatusShipped, true, false},
		{StatusShipped, StatusDelivered, true, true},
		{StatusPending, StatusCancelled, true, true},
		{StatusConfirmed, StatusCancelled, true, true},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+"_to_"+string(tc.to), func(t *testing.T) {
			p, err := TransitionPlan(testOrder(tc.from), tc.to, planNow)
			require.NoError(t, err)
			assert.False(t, p.NoOp)
			got := recipients(p)
			assert.Equal(t, tc.buyer, got[notify.RoleBuyer], "buyer")
			assert.Equal(t, tc.artisan, got[notify.RoleArtisan], "artisan")
		})
	}
}

func TestPlanNoOpOnSameStatus(t *testing.T) {
	p, err := TransitionPlan(testOrder(StatusShipped), StatusShipped, planNow)
	require.NoError(t, err)
	assert.True(t, p.NoOp)
	assert.Empty(t, p.Notifications)
}

func TestPlanRejectsInvalidTransitions(t *testing.T) {
	for _, from := range allStatuses {
		ok := map[Status]bool{}
		for _, to := range allowed[from] {
			ok[to] = true
		}
		for _, to := range allStatuses {
			if from == to || ok[to] {
				continue
			}
			_, err := TransitionPlan(testOrder(from), to, planNow)
			require.Error(t, err, "%s -> %s", from, to)
			assert.True(t, errors.Is(err, ErrInvalidTransition))
		}
	}
}

func TestPlanCopyContents(t *testing.T) {
	p, err := TransitionPlan(testOrder(StatusShipped), StatusDelivered, planNow)
	require.NoError(t, err)
	require.Len(t, p.Notifications, 2)

	var buyer, artisan notify.Notification
	for _, n := range p.Notifications {
		switch n.TargetRole {
		case notify.RoleBuyer:
			buyer = n
		case notify.RoleArtisan:
			artisan = n
		}
	}

	assert.Equal(t, "buyer-1", buyer.UserID)
	assert.Contains(t, buyer.Message, "11112222") // prefix 8 char order id
	assert.Contains(t, buyer.Message, "Clay Vase")

	assert.Equal(t, "artisan-1", artisan.UserID)
	assert.Contains(t, artisan.Message, "Anita")
	assert.Contains(t, artisan.Message, "₹2500.00")
	assert.Equal(t, notify.TypeOrderUpdate, artisan.Type)
}

func TestPlanSkipsArtisanWithoutID(t *testing.T) {
	o := testOrder(StatusShipped)
	o.ArtisanID = ""
	p, err := TransitionPlan(o, StatusDelivered, planNow)
	require.NoError(t, err)
	got := recipients(p)
	assert.True(t, got[notify.RoleBuyer])
	assert.False(t, got[notify.RoleArtisan])
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "₹2500.00", FormatAmount(250000))
	assert.Equal(t, "₹0.05", FormatAmount(5))
	assert.Equal(t, "₹12.30", FormatAmount(1230))
}
