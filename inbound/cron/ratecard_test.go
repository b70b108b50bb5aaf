package cron

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/suite"

	"design-folio/common/constant"
	"design-folio/common/vars"
	"design-folio/model"
	"design-folio/outbound/store"
)

type RateCardCronTestSuite struct {
	suite.Suite

	PgxMock   pgxmock.PgxPoolIface
	CacheMock redismock.ClientMock

	Cron RateCardCron
}

func (s *RateCardCronTestSuite) SetupTest() {
	rdb, cacheMock := redismock.NewClientMock()
	s.CacheMock = cacheMock

	pool, err := pgxmock.NewPool()
	if err != nil {
		s.T().Fatalf("failed to create pgxmock pool: %v", err)
	}
	s.PgxMock = pool

	cfg := viper.New()
	cfg.Set("cron.ratecard.refresh.interval", "1m")
	cfg.Set("cron.ratecard.refresh.timeout", "10s")

	s.Cron = RateCardCron{
		Cfg:   cfg,
		Cache: rdb,
		Store: store.New(pool),
	}

	vars.SetRateCards(nil)
}

func (s *RateCardCronTestSuite) TearDownTest() {
	s.PgxMock.Close()
}

func TestRateCardCronTestSuite(t *testing.T) {
	suite.Run(t, new(RateCardCronTestSuite))
}

func (s *RateCardCronTestSuite) TestInitSnapshotPublishesStoreContents() {
	categories := []model.RateCategory{
		{
			ID:      "brand-identity",
			Label:   "Brand Identity",
			Heading: "Brand identity design",
			Tags:    []string{"logo"},
			Plans: []model.RatePlan{
				{ID: "gold", Name: "Gold", Price: 650, Currency: "USD"},
			},
			Deliverables: []model.Deliverable{},
		},
	}

	s.PgxMock.ExpectQuery("SELECT id, label, heading").
		WillReturnRows(pgxmock.
			NewRows([]string{"id", "label", "heading", "description", "tags", "plans", "deliverables"}).
			AddRow("brand-identity", "Brand Identity", "Brand identity design", "",
				[]string{"logo"}, categories[0].Plans, []model.Deliverable{}))

	payload, err := json.Marshal(categories)
	s.Require().NoError(err)

	s.CacheMock.ExpectSet(constant.RateCardSnapshotKey, payload, constant.RateCardSnapshotTTL).
		SetVal("OK")

	s.Require().NoError(s.Cron.InitSnapshot(context.Background()))

	snapshot := vars.GetRateCards()
	s.Require().Len(snapshot, 1)
	s.Equal("brand-identity", snapshot[0].ID)
	s.Equal([]string{"logo"}, snapshot[0].Tags)

	s.NoError(s.PgxMock.ExpectationsWereMet())
	s.NoError(s.CacheMock.ExpectationsWereMet())
}

func (s *RateCardCronTestSuite) TestRefreshKeepsSnapshotOnStoreError() {
	vars.SetRateCards([]model.RateCategory{{ID: "brand-identity"}})

	s.PgxMock.ExpectQuery("SELECT id, label, heading").
		WillReturnError(context.DeadlineExceeded)

	err := s.Cron.refresh(context.Background())
	s.Error(err)

	snapshot := vars.GetRateCards()
	s.Require().Len(snapshot, 1)
	s.Equal("brand-identity", snapshot[0].ID)
}

func (s *RateCardCronTestSuite) TestStartStopsOnContextCancel() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		s.Cron.Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		s.T().Fatal("cron did not stop on context cancel")
	}
}
