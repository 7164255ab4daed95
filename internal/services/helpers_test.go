package services

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"orderpulse/internal/dataset"
)

// fixtureCSV is a small but fully-populated orders table used across
// the service tests. Three orders: two estimated for 2018-01-01 and
// one for 2018-01-03, leaving 2018-01-02 as a zero day.
const fixtureCSV = `order_id,customer_id,product_id,review_id,price,review_score,customer_state,customer_city,product_category_name,order_purchase_timestamp,order_approved_at,order_delivered_carrier_date,order_delivered_customer_date,order_estimated_delivery_date,shipping_limit_date,review_creation_date,review_answer_timestamp
o1,c1,p1,r1,10.0,5,SP,sao paulo,toys,2017-12-20 10:00:00,2017-12-20 11:00:00,2017-12-21 08:00:00,2017-12-30 14:00:00,2018-01-01 00:00:00,2017-12-22 23:59:59,2017-12-31 09:00:00,2018-01-01 12:00:00
o2,c1,p2,r2,20.0,5,SP,sao paulo,pet_shop,2017-12-21 10:00:00,2017-12-21 11:00:00,2017-12-22 08:00:00,2017-12-31 14:00:00,2018-01-01 00:00:00,2017-12-23 23:59:59,2018-01-01 09:00:00,2018-01-02 12:00:00
o3,c2,p3,r3,5.0,4,RJ,rio de janeiro,toys,2017-12-28 10:00:00,2017-12-28 11:00:00,2017-12-29 08:00:00,2018-01-02 14:00:00,2018-01-03 00:00:00,2017-12-30 23:59:59,2018-01-03 09:00:00,2018-01-04 12:00:00
`

// writeFixtureCSV writes the fixture table to a temp file and returns
// its path.
func writeFixtureCSV(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main_data.csv")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

// newTestStore loads the fixture table into a fresh store.
func newTestStore(t *testing.T, contents string) *dataset.Store {
	t.Helper()
	return newStoreFromPath(t, writeFixtureCSV(t, contents))
}

// newStoreFromPath loads a store backed by an existing CSV file.
func newStoreFromPath(t *testing.T, path string) *dataset.Store {
	t.Helper()
	store := dataset.NewStore(dataset.NewLoader(path, testLogger()), testLogger())
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("failed to load fixture: %v", err)
	}
	return store
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// recordingNotifier captures data-update notices for assertions.
type recordingNotifier struct {
	updates []notice
}

type notice struct {
	updateType string
	action     string
	payload    interface{}
}

func (n *recordingNotifier) NotifyDataUpdate(updateType, action string, payload interface{}) {
	n.updates = append(n.updates, notice{updateType, action, payload})
}
