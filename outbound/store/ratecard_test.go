package store

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/suite"

	"design-folio/model"
)

type RateCardStoreTestSuite struct {
	suite.Suite

	PgxMock pgxmock.PgxPoolIface
	Store   *Store
}

func (s *RateCardStoreTestSuite) SetupTest() {
	pool, err := pgxmock.NewPool()
	if err != nil {
		s.T().Fatalf("failed to create pgxmock pool: %v", err)
	}

	s.PgxMock = pool
	s.Store = New(pool)
}

func (s *RateCardStoreTestSuite) TearDownTest() {
	s.PgxMock.Close()
}

func TestRateCardStoreTestSuite(t *testing.T) {
	suite.Run(t, new(RateCardStoreTestSuite))
}

func (s *RateCardStoreTestSuite) TestRateCategoryExists() {
	s.PgxMock.ExpectQuery("SELECT EXISTS").
		WithArgs("brand-identity").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := s.Store.RateCategoryExists(context.Background(), "brand-identity")

	s.NoError(err)
	s.True(exists)
	s.NoError(s.PgxMock.ExpectationsWereMet())
}

func (s *RateCardStoreTestSuite) TestGetRateCategory() {
	plans := []model.RatePlan{{ID: "gold", Name: "Gold", Price: 100, Currency: "USD"}}
	deliverables := []model.Deliverable{{ID: "pages", Label: "Pages", Mode: "text", PerPlan: map[string]any{"gold": "5"}}}

	s.PgxMock.ExpectQuery("SELECT id, label, heading").
		WithArgs("brand-identity").
		WillReturnRows(pgxmock.
			NewRows([]string{"id", "label", "heading", "description", "tags", "plans", "deliverables"}).
			AddRow("brand-identity", "Brand Identity", "Brand identity design", "", []string{"logo"}, plans, deliverables))

	cat, err := s.Store.GetRateCategory(context.Background(), "brand-identity")

	s.NoError(err)
	s.Equal("brand-identity", cat.ID)
	s.Equal(plans, cat.Plans)
	s.Equal(deliverables, cat.Deliverables)
	s.NoError(s.PgxMock.ExpectationsWereMet())
}

func (s *RateCardStoreTestSuite) TestInsertRateCategory() {
	cat := model.RateCategory{
		ID:      "brand-identity",
		Label:   "Brand Identity",
		Heading: "Brand identity design",
		Tags:    []string{"logo"},
	}

	s.PgxMock.ExpectExec("INSERT INTO rate_categories").
		WithArgs(cat.ID, cat.Label, cat.Heading, cat.Description, cat.Tags, cat.Plans, cat.Deliverables).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	s.NoError(s.Store.InsertRateCategory(context.Background(), cat))
	s.NoError(s.PgxMock.ExpectationsWereMet())
}

func (s *RateCardStoreTestSuite) TestUpdateRateCategoryReportsMissingRow() {
	cat := model.RateCategory{ID: "brand-identity", Label: "x", Heading: "y"}

	s.PgxMock.ExpectExec("UPDATE rate_categories").
		WithArgs("ghost", cat.ID, cat.Label, cat.Heading, cat.Description, cat.Tags, cat.Plans, cat.Deliverables).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	affected, err := s.Store.UpdateRateCategory(context.Background(), "ghost", cat)

	s.NoError(err)
	s.Zero(affected)
	s.NoError(s.PgxMock.ExpectationsWereMet())
}

func (s *RateCardStoreTestSuite) TestDeleteRateCategory() {
	s.PgxMock.ExpectExec("DELETE FROM rate_categories").
		WithArgs("brand-identity").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	affected, err := s.Store.DeleteRateCategory(context.Background(), "brand-identity")

	s.NoError(err)
	s.EqualValues(1, affected)
	s.NoError(s.PgxMock.ExpectationsWereMet())
}
